// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package textindex implements a TF-IDF document index with cosine similarity.
//
// Documents are tokenized by lower-casing and splitting on runs of two or more
// word characters (letters, digits, underscore), with English stop words
// removed. Term weights are raw counts multiplied by the smoothed inverse
// document frequency
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and every document row is L2-normalized, so cosine similarity reduces to a
// dot product.
//
// An Index is immutable after Build and safe for concurrent use.
package textindex

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector is a sparse term-weight vector with terms in ascending vocabulary
// order.
type Vector struct {
	Terms   []int
	Weights []float64
}

// Len returns the number of non-zero terms.
func (v Vector) Len() int {
	return len(v.Terms)
}

// Dot returns the dot product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Terms) && j < len(o.Terms) {
		switch {
		case v.Terms[i] == o.Terms[j]:
			sum += v.Weights[i] * o.Weights[j]
			i++
			j++
		case v.Terms[i] < o.Terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Index is a TF-IDF index over an ordered document set.
type Index struct {
	vocab map[string]int
	idf   []float64
	rows  []Vector
}

// Tokenize splits text into lower-cased tokens of at least two word
// characters, dropping stop words.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	var tokens []string
	var b strings.Builder
	runes := 0
	flush := func() {
		if runes >= 2 {
			tok := b.String()
			if !IsStopWord(tok) {
				tokens = append(tokens, tok)
			}
		}
		b.Reset()
		runes = 0
	}
	for _, r := range lower {
		if isWordRune(r) {
			b.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Build indexes the documents. Document i becomes row i.
func Build(docs []string) *Index {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		toks := Tokenize(doc)
		tokenized[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	idx := &Index{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
		rows:  make([]Vector, len(docs)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		idx.vocab[t] = i
		idx.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	for i, toks := range tokenized {
		idx.rows[i] = idx.weigh(toks)
	}
	return idx
}

// weigh turns tokens into an L2-normalized TF-IDF vector. Tokens outside the
// vocabulary are ignored.
func (idx *Index) weigh(tokens []string) Vector {
	counts := make(map[int]float64)
	for _, t := range tokens {
		if term, ok := idx.vocab[t]; ok {
			counts[term]++
		}
	}
	v := Vector{
		Terms:   make([]int, 0, len(counts)),
		Weights: make([]float64, len(counts)),
	}
	for term := range counts {
		v.Terms = append(v.Terms, term)
	}
	sort.Ints(v.Terms)
	for i, term := range v.Terms {
		v.Weights[i] = counts[term] * idx.idf[term]
	}
	if norm := v.Norm(); norm > 0 {
		for i := range v.Weights {
			v.Weights[i] /= norm
		}
	}
	return v
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.rows)
}

// VocabularySize returns the number of distinct indexed terms.
func (idx *Index) VocabularySize() int {
	return len(idx.vocab)
}

// Row returns the vector of document i. The returned vector must not be
// modified. ok is false when i is out of range.
func (idx *Index) Row(i int) (Vector, bool) {
	if i < 0 || i >= len(idx.rows) {
		return Vector{}, false
	}
	return idx.rows[i], true
}

// Similarity returns the cosine similarity of documents i and j in [0, 1].
func (idx *Index) Similarity(i, j int) float64 {
	a, okA := idx.Row(i)
	b, okB := idx.Row(j)
	if !okA || !okB {
		return 0
	}
	return clamp(a.Dot(b))
}

// SimilarityRow returns the similarity of document i to every document.
func (idx *Index) SimilarityRow(i int) []float64 {
	out := make([]float64, len(idx.rows))
	a, ok := idx.Row(i)
	if !ok {
		return out
	}
	for j, b := range idx.rows {
		out[j] = clamp(a.Dot(b))
	}
	return out
}

// QueryVector projects free text into the index vector space.
func (idx *Index) QueryVector(text string) Vector {
	return idx.weigh(Tokenize(text))
}

// Score returns the cosine similarity of a query vector and document i.
func (idx *Index) Score(q Vector, i int) float64 {
	row, ok := idx.Row(i)
	if !ok {
		return 0
	}
	return clamp(q.Dot(row))
}

// clamp absorbs floating-point overshoot above 1.
func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < 0 {
		return 0
	}
	return x
}
