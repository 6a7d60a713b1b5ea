// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/healthrec/internal/recommend/relgraph"
	"github.com/tomtom215/healthrec/internal/recommend/textindex"
)

// Catalog is an immutable snapshot of the item and medicine catalog with its
// derived text index and relatedness graph.
//
// Snapshots are built once and published atomically by the Engine. Callers
// that loaded a snapshot may keep using it after a newer one is published.
type Catalog struct {
	// Version is the content fingerprint of the snapshot.
	Version string

	// Items in catalog order. Item ids are unique.
	Items []Item

	// Medicines in source order.
	Medicines []Medicine

	// Index is the TF-IDF index; row i is Items[i].
	Index *textindex.Index

	// Graph links items and medicines to their conditions.
	Graph *relgraph.Graph

	// BuiltAt is when the snapshot was built.
	BuiltAt time.Time

	itemPos     map[int]int
	medicinePos map[int]int
}

// NewCatalog builds a snapshot. Items with a duplicate id keep their first
// occurrence.
//
//nolint:gocritic // rangeValCopy: Item is passed by value in range, acceptable for clarity
func NewCatalog(items []Item, medicines []Medicine) *Catalog {
	c := &Catalog{
		Items:       make([]Item, 0, len(items)),
		Medicines:   make([]Medicine, 0, len(medicines)),
		itemPos:     make(map[int]int, len(items)),
		medicinePos: make(map[int]int, len(medicines)),
		BuiltAt:     time.Now(),
	}
	for _, it := range items {
		if _, dup := c.itemPos[it.ID]; dup {
			continue
		}
		c.itemPos[it.ID] = len(c.Items)
		c.Items = append(c.Items, it)
	}
	for _, m := range medicines {
		if _, dup := c.medicinePos[m.ID]; !dup {
			c.medicinePos[m.ID] = len(c.Medicines)
		}
		c.Medicines = append(c.Medicines, m)
	}

	docs := make([]string, len(c.Items))
	itemLinks := make([]relgraph.Link, len(c.Items))
	for i, it := range c.Items {
		docs[i] = it.Text()
		itemLinks[i] = relgraph.Link{ID: it.ID, Condition: it.Condition}
	}
	medLinks := make([]relgraph.Link, len(c.Medicines))
	for i, m := range c.Medicines {
		medLinks[i] = relgraph.Link{ID: m.ID, Condition: m.ForCondition}
	}

	c.Index = textindex.Build(docs)
	c.Graph = relgraph.Build(itemLinks, medLinks)
	c.Version = Fingerprint(items, medicines)
	return c
}

// Fingerprint returns an FNV-1a hash of the catalog content.
//
//nolint:gocritic // rangeValCopy: Item is passed by value in range, acceptable for clarity
func Fingerprint(items []Item, medicines []Medicine) string {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}
	writeStr := func(s string) {
		writeInt(len(s))
		_, _ = h.Write([]byte(s))
	}

	writeInt(len(items))
	for _, it := range items {
		writeInt(it.ID)
		writeStr(it.Title)
		writeStr(it.Tags)
		writeStr(it.Description)
		writeStr(it.Condition)
		writeStr(it.Timeslot)
		writeInt(it.Popularity)
	}
	writeInt(len(medicines))
	for _, m := range medicines {
		writeInt(m.ID)
		writeStr(m.Name)
		writeStr(m.ForCondition)
		writeStr(m.Contraindications)
		writeStr(m.Description)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.Items)
}

// Position returns the catalog position of an item.
func (c *Catalog) Position(itemID int) (int, bool) {
	pos, ok := c.itemPos[itemID]
	return pos, ok
}

// ItemByID returns the item with the given id.
func (c *Catalog) ItemByID(itemID int) (Item, bool) {
	pos, ok := c.itemPos[itemID]
	if !ok {
		return Item{}, false
	}
	return c.Items[pos], true
}

// MedicineByID returns the first medicine with the given id.
func (c *Catalog) MedicineByID(id int) (Medicine, bool) {
	pos, ok := c.medicinePos[id]
	if !ok {
		return Medicine{}, false
	}
	return c.Medicines[pos], true
}

// VectorOf returns the TF-IDF vector of an item. ok is false when the item is
// not in the catalog.
func (c *Catalog) VectorOf(itemID int) (textindex.Vector, bool) {
	pos, ok := c.itemPos[itemID]
	if !ok {
		return textindex.Vector{}, false
	}
	return c.Index.Row(pos)
}

// Search returns the items whose title, tags or description contain the
// query (case-insensitive), ordered by cosine similarity to the query.
// An empty or whitespace-only query matches nothing.
//
//nolint:gocritic // rangeValCopy: Item is passed by value in range, acceptable for clarity
func (c *Catalog) Search(query string, k int) []ScoredItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || k <= 0 {
		return []ScoredItem{}
	}
	qv := c.Index.QueryVector(q)

	out := make([]ScoredItem, 0)
	for i, it := range c.Items {
		if !strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Tags), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			continue
		}
		out = append(out, ScoredItem{
			Item:   it,
			Score:  c.Index.Score(qv, i),
			Scored: true,
			Reason: "matches search",
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// PopularityRange returns the minimum and maximum popularity of items.
//
//nolint:gocritic // rangeValCopy: ScoredItem is passed by value in range, acceptable for clarity
func PopularityRange(items []ScoredItem) (lo, hi float64) {
	if len(items) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, it := range items {
		p := float64(it.Item.Popularity)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

// DominantCondition returns the most common condition among the liked items
// that are in the catalog. Ties go to the lexicographically smallest name.
// ok is false when no liked item names a condition.
func (c *Catalog) DominantCondition(liked []int) (string, bool) {
	counts := make(map[string]int)
	for _, id := range liked {
		it, ok := c.ItemByID(id)
		if !ok {
			continue
		}
		cond := relgraph.NormalizeCondition(it.Condition)
		if cond == "" {
			continue
		}
		counts[cond]++
	}

	best, bestCount := "", 0
	for cond, n := range counts {
		if n > bestCount || (n == bestCount && cond < best) {
			best, bestCount = cond, n
		}
	}
	return best, bestCount > 0
}
