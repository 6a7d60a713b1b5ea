// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package relgraph implements the condition relatedness graph.
//
// The graph is undirected and bipartite around conditions: every item and
// every medicine is linked to the condition it belongs to. Nodes are keyed
// as "cond:<name>", "item:<id>" and "med:<id>". Condition names are matched
// case-insensitively with surrounding whitespace removed.
//
// A Graph is immutable after Build and safe for concurrent use.
package relgraph

import (
	"sort"
	"strconv"
	"strings"
)

// Kind classifies a graph node.
type Kind int

const (
	// KindItem is a catalog item node.
	KindItem Kind = iota
	// KindMedicine is a medicine node.
	KindMedicine
	// KindCondition is a condition node.
	KindCondition
)

// String returns the node key prefix of the kind.
func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindMedicine:
		return "med"
	case KindCondition:
		return "cond"
	default:
		return "unknown"
	}
}

// Link attaches an item or medicine id to a condition.
type Link struct {
	ID        int
	Condition string
}

// Node is a neighbor of a condition with its degree.
type Node struct {
	Kind   Kind
	ID     int
	Degree int
}

// Key returns the node key, e.g. "item:3".
func (n Node) Key() string {
	return n.Kind.String() + ":" + strconv.Itoa(n.ID)
}

type nodeRef struct {
	kind Kind
	id   int
}

// Graph is the condition relatedness graph.
type Graph struct {
	// condition -> linked item and medicine nodes
	conditions map[string]map[nodeRef]struct{}
	// item or medicine node -> linked conditions
	degree map[nodeRef]map[string]struct{}
}

// NormalizeCondition returns the lookup form of a condition name.
func NormalizeCondition(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Build links items and medicines to their conditions.
// Links with an empty condition are skipped.
func Build(items, medicines []Link) *Graph {
	g := &Graph{
		conditions: make(map[string]map[nodeRef]struct{}),
		degree:     make(map[nodeRef]map[string]struct{}),
	}
	for _, l := range items {
		g.addEdge(nodeRef{KindItem, l.ID}, l.Condition)
	}
	for _, l := range medicines {
		g.addEdge(nodeRef{KindMedicine, l.ID}, l.Condition)
	}
	return g
}

func (g *Graph) addEdge(n nodeRef, condition string) {
	cond := NormalizeCondition(condition)
	if cond == "" {
		return
	}
	if g.conditions[cond] == nil {
		g.conditions[cond] = make(map[nodeRef]struct{})
	}
	g.conditions[cond][n] = struct{}{}
	if g.degree[n] == nil {
		g.degree[n] = make(map[string]struct{})
	}
	g.degree[n][cond] = struct{}{}
}

// Conditions returns the known condition names in ascending order.
func (g *Graph) Conditions() []string {
	out := make([]string, 0, len(g.conditions))
	for c := range g.conditions {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// HasCondition reports whether the condition has a node in the graph.
func (g *Graph) HasCondition(condition string) bool {
	_, ok := g.conditions[NormalizeCondition(condition)]
	return ok
}

// Degree returns the number of edges of an item or medicine node.
func (g *Graph) Degree(kind Kind, id int) int {
	return len(g.degree[nodeRef{kind, id}])
}

// Neighbors returns the nodes linked to a condition ordered by degree
// descending, then kind (items before medicines), then id ascending.
// An unknown condition has no neighbors.
func (g *Graph) Neighbors(condition string) []Node {
	linked := g.conditions[NormalizeCondition(condition)]
	out := make([]Node, 0, len(linked))
	for n := range linked {
		out = append(out, Node{Kind: n.kind, ID: n.id, Degree: len(g.degree[n])})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Degree != b.Degree {
			return a.Degree > b.Degree
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID < b.ID
	})
	return out
}

// Related splits the neighbors of a condition into items and medicines,
// each truncated to k.
func (g *Graph) Related(condition string, k int) (items, medicines []Node) {
	items = []Node{}
	medicines = []Node{}
	if k <= 0 {
		return items, medicines
	}
	for _, n := range g.Neighbors(condition) {
		switch n.Kind {
		case KindItem:
			if len(items) < k {
				items = append(items, n)
			}
		case KindMedicine:
			if len(medicines) < k {
				medicines = append(medicines, n)
			}
		}
	}
	return items, medicines
}

// Stats returns node and edge counts.
func (g *Graph) Stats() (nodes, edges int) {
	nodes = len(g.conditions) + len(g.degree)
	for _, conds := range g.degree {
		edges += len(conds)
	}
	return nodes, edges
}
