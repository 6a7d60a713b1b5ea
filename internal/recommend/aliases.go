// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Table is a tabular record set with storage-defined column names.
// Stores and catalog sources hand rows to the core in this shape; the alias
// tables below resolve it into the fixed internal schema.
type Table struct {
	Columns []string
	Rows    [][]any
}

// TableFromRecords builds a Table from keyed records. Columns are the union of
// all keys in sorted order; absent keys become nil cells.
func TableFromRecords(records []map[string]any) Table {
	seen := make(map[string]struct{})
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = rec[col]
		}
		rows[i] = row
	}
	return Table{Columns: columns, Rows: rows}
}

// Alias tables per logical field. Order is priority: when a table carries
// more than one alias of a field, the earliest alias wins.
var (
	ratingUserAliases  = []string{"user_id", "userid", "uid", "user", "id"}
	ratingItemAliases  = []string{"item_id", "itemid", "item", "iid"}
	ratingValueAliases = []string{"rating", "rate", "r", "score"}

	itemIDAliases          = []string{"item_id", "itemid", "iid", "id"}
	itemTitleAliases       = []string{"title", "name"}
	itemTagsAliases        = []string{"tags", "tag", "keywords"}
	itemDescriptionAliases = []string{"description", "desc", "summary"}
	itemConditionAliases   = []string{"condition", "category", "for_condition"}
	itemTimeslotAliases    = []string{"timeslot", "time_slot", "time", "time_of_day"}
	itemPopularityAliases  = []string{"popularity", "pop", "views"}

	medicineIDAliases          = []string{"medicine_id", "med_id", "medicineid", "id"}
	medicineNameAliases        = []string{"name", "medicine", "title"}
	medicineConditionAliases   = []string{"for_condition", "condition", "treats"}
	medicineContraAliases      = []string{"contraindications", "contraindication", "contra"}
	medicineDescriptionAliases = []string{"description", "desc", "summary"}
)

// resolveColumn returns the index of the column matching the highest-priority
// alias, comparing case-insensitively, or -1 when none matches.
func resolveColumn(columns []string, aliases []string) int {
	lower := make(map[string]int, len(columns))
	for i, c := range columns {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := lower[key]; !dup {
			lower[key] = i
		}
	}
	for _, alias := range aliases {
		if idx, ok := lower[alias]; ok {
			return idx
		}
	}
	return -1
}

// NormalizeRatings resolves a ratings table into the fixed Rating schema.
//
// It returns ok=false with no ratings when the user, item or rating field
// cannot be identified. Non-numeric cells coerce to zero. When a (user, item)
// pair appears more than once, the last row wins and keeps the position of
// the first occurrence.
func NormalizeRatings(t Table) ([]Rating, bool) {
	userCol := resolveColumn(t.Columns, ratingUserAliases)
	itemCol := resolveColumn(t.Columns, ratingItemAliases)
	valueCol := resolveColumn(t.Columns, ratingValueAliases)
	if userCol < 0 || itemCol < 0 || valueCol < 0 {
		return nil, false
	}
	// A column can only serve one field.
	if userCol == itemCol || userCol == valueCol || itemCol == valueCol {
		return nil, false
	}

	type pair struct{ user, item int }
	pos := make(map[pair]int, len(t.Rows))
	out := make([]Rating, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := Rating{
			UserID: toInt(cell(row, userCol)),
			ItemID: toInt(cell(row, itemCol)),
			Value:  toFloat(cell(row, valueCol)),
		}
		key := pair{r.UserID, r.ItemID}
		if i, ok := pos[key]; ok {
			out[i] = r
			continue
		}
		pos[key] = len(out)
		out = append(out, r)
	}
	return out, true
}

// ItemsFromTable resolves a catalog table into Items.
// The id column is required; every other field defaults to its zero value.
func ItemsFromTable(t Table) ([]Item, error) {
	idCol := resolveColumn(t.Columns, itemIDAliases)
	if idCol < 0 {
		return nil, fmt.Errorf("items table has no id column (columns: %v)", t.Columns)
	}
	titleCol := resolveColumn(t.Columns, itemTitleAliases)
	tagsCol := resolveColumn(t.Columns, itemTagsAliases)
	descCol := resolveColumn(t.Columns, itemDescriptionAliases)
	condCol := resolveColumn(t.Columns, itemConditionAliases)
	slotCol := resolveColumn(t.Columns, itemTimeslotAliases)
	popCol := resolveColumn(t.Columns, itemPopularityAliases)

	items := make([]Item, 0, len(t.Rows))
	for _, row := range t.Rows {
		pop := toInt(cell(row, popCol))
		if pop < 0 {
			pop = 0
		}
		items = append(items, Item{
			ID:          toInt(cell(row, idCol)),
			Title:       toString(cell(row, titleCol)),
			Tags:        toString(cell(row, tagsCol)),
			Description: toString(cell(row, descCol)),
			Condition:   toString(cell(row, condCol)),
			Timeslot:    toString(cell(row, slotCol)),
			Popularity:  pop,
		})
	}
	return items, nil
}

// MedicinesFromTable resolves a medicine table into Medicines.
func MedicinesFromTable(t Table) ([]Medicine, error) {
	idCol := resolveColumn(t.Columns, medicineIDAliases)
	if idCol < 0 {
		return nil, fmt.Errorf("medicines table has no id column (columns: %v)", t.Columns)
	}
	nameCol := resolveColumn(t.Columns, medicineNameAliases)
	condCol := resolveColumn(t.Columns, medicineConditionAliases)
	contraCol := resolveColumn(t.Columns, medicineContraAliases)
	descCol := resolveColumn(t.Columns, medicineDescriptionAliases)

	meds := make([]Medicine, 0, len(t.Rows))
	for _, row := range t.Rows {
		meds = append(meds, Medicine{
			ID:                toInt(cell(row, idCol)),
			Name:              toString(cell(row, nameCol)),
			ForCondition:      toString(cell(row, condCol)),
			Contraindications: toString(cell(row, contraCol)),
			Description:       toString(cell(row, descCol)),
		})
	}
	return meds, nil
}

// Column returns the index of the column matching the highest-priority
// alias, or -1. Tables from outside the recommendation schema resolve their
// own fields through it.
func (t Table) Column(aliases ...string) int {
	return resolveColumn(t.Columns, aliases)
}

// FloatAt coerces the cell at col with the same rules as rating values.
// A missing column reads as 0.
func FloatAt(row []any, col int) float64 {
	return toFloat(cell(row, col))
}

// StringAt returns the cell at col as text. A missing column reads as "".
func StringAt(row []any, col int) string {
	return toString(cell(row, col))
}

func cell(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// toFloat coerces a cell to float64. Unparseable values and NaN become 0.
func toFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case []byte:
		return toFloat(string(x))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return toFloat(fmt.Sprint(x))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toInt coerces a cell to int, truncating fractional values.
func toInt(v any) int {
	return int(toFloat(v))
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
