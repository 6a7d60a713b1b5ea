// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package diagnosis

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// numFeatures is the length of a feature vector.
const numFeatures = 4

// minScale replaces the standard deviation of a constant feature.
const minScale = 1e-12

var (
	// ErrNoRecords means no labeled record was available for training.
	ErrNoRecords = errors.New("diagnosis: no labeled records")

	// ErrMissingColumn means a records table lacks a required field.
	ErrMissingColumn = errors.New("diagnosis: records table is missing a column")
)

// Vitals are the measurements a diagnosis is predicted from. The bounds
// match the accepted input ranges of the prediction form.
type Vitals struct {
	Age           float64 `json:"age" validate:"gte=1,lte=120"`
	BloodPressure float64 `json:"blood_pressure" validate:"gte=80,lte=220"`
	Glucose       float64 `json:"glucose_level" validate:"gte=50,lte=400"`
	HeartRate     float64 `json:"heart_rate" validate:"gte=40,lte=200"`
}

func (v Vitals) features() [numFeatures]float64 {
	return [numFeatures]float64{v.Age, v.BloodPressure, v.Glucose, v.HeartRate}
}

// Record is one labeled training row.
type Record struct {
	Vitals
	Diagnosis string `json:"diagnosis"`
}

// Column aliases of a medical records table, highest priority first.
var (
	ageAliases       = []string{"age"}
	pressureAliases  = []string{"blood_pressure", "bp", "systolic"}
	glucoseAliases   = []string{"glucose_level", "glucose"}
	heartRateAliases = []string{"heart_rate", "hr", "pulse"}
	diagnosisAliases = []string{"diagnosis", "disease", "label"}
)

// RecordsFromTable resolves a medical records table. Every field is
// required. Rows with a blank diagnosis are skipped; non-numeric vitals
// coerce to 0.
func RecordsFromTable(t recommend.Table) ([]Record, error) {
	cols := [...]struct {
		name    string
		aliases []string
		idx     int
	}{
		{"age", ageAliases, -1},
		{"blood_pressure", pressureAliases, -1},
		{"glucose_level", glucoseAliases, -1},
		{"heart_rate", heartRateAliases, -1},
		{"diagnosis", diagnosisAliases, -1},
	}
	for i := range cols {
		cols[i].idx = t.Column(cols[i].aliases...)
		if cols[i].idx < 0 {
			return nil, fmt.Errorf("%w: %s (columns: %v)", ErrMissingColumn, cols[i].name, t.Columns)
		}
	}

	out := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		label := strings.TrimSpace(recommend.StringAt(row, cols[4].idx))
		if label == "" {
			continue
		}
		out = append(out, Record{
			Vitals: Vitals{
				Age:           recommend.FloatAt(row, cols[0].idx),
				BloodPressure: recommend.FloatAt(row, cols[1].idx),
				Glucose:       recommend.FloatAt(row, cols[2].idx),
				HeartRate:     recommend.FloatAt(row, cols[3].idx),
			},
			Diagnosis: label,
		})
	}
	return out, nil
}

// Model is a nearest-centroid classifier over standardized vitals. Each
// feature is scaled to zero mean and unit variance over the training set;
// a prediction is the label whose class mean is closest in that space.
//
// A Model is immutable after Fit and safe for concurrent use.
type Model struct {
	mean      [numFeatures]float64
	scale     [numFeatures]float64
	labels    []string
	centroids [][numFeatures]float64
	support   []int
}

// Prediction is the result of Model.Predict.
type Prediction struct {
	Diagnosis string `json:"diagnosis"`

	// Distances maps every known label to the euclidean distance between
	// the scaled input and that label's centroid.
	Distances map[string]float64 `json:"distances"`
}

// Fit trains a model. Labels are compared after trimming whitespace.
func Fit(records []Record) (*Model, error) {
	labeled := make([]Record, 0, len(records))
	for _, r := range records {
		r.Diagnosis = strings.TrimSpace(r.Diagnosis)
		if r.Diagnosis != "" {
			labeled = append(labeled, r)
		}
	}
	if len(labeled) == 0 {
		return nil, ErrNoRecords
	}

	m := &Model{}
	n := float64(len(labeled))
	for _, r := range labeled {
		f := r.features()
		for j := range f {
			m.mean[j] += f[j] / n
		}
	}
	for _, r := range labeled {
		f := r.features()
		for j := range f {
			d := f[j] - m.mean[j]
			m.scale[j] += d * d / n
		}
	}
	for j := range m.scale {
		m.scale[j] = math.Sqrt(m.scale[j])
		if m.scale[j] < minScale {
			m.scale[j] = 1
		}
	}

	groups := make(map[string][][numFeatures]float64)
	for _, r := range labeled {
		groups[r.Diagnosis] = append(groups[r.Diagnosis], m.standardize(r.Vitals))
	}
	m.labels = make([]string, 0, len(groups))
	for label := range groups {
		m.labels = append(m.labels, label)
	}
	sort.Strings(m.labels)

	m.centroids = make([][numFeatures]float64, len(m.labels))
	m.support = make([]int, len(m.labels))
	for i, label := range m.labels {
		rows := groups[label]
		for _, x := range rows {
			for j := range x {
				m.centroids[i][j] += x[j] / float64(len(rows))
			}
		}
		m.support[i] = len(rows)
	}
	return m, nil
}

func (m *Model) standardize(v Vitals) [numFeatures]float64 {
	f := v.features()
	for j := range f {
		f[j] = (f[j] - m.mean[j]) / m.scale[j]
	}
	return f
}

// Predict returns the nearest label. Ties go to the lexicographically
// smallest label.
func (m *Model) Predict(v Vitals) Prediction {
	x := m.standardize(v)
	p := Prediction{Distances: make(map[string]float64, len(m.labels))}
	best := math.Inf(1)
	for i, c := range m.centroids {
		var sq float64
		for j := range x {
			d := x[j] - c[j]
			sq += d * d
		}
		dist := math.Sqrt(sq)
		p.Distances[m.labels[i]] = dist
		if dist < best {
			best = dist
			p.Diagnosis = m.labels[i]
		}
	}
	return p
}

// Labels returns the known diagnoses in sorted order.
func (m *Model) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Support returns the number of training records per label.
func (m *Model) Support() map[string]int {
	out := make(map[string]int, len(m.labels))
	for i, label := range m.labels {
		out[label] = m.support[i]
	}
	return out
}

// Accuracy returns the share of records whose diagnosis m predicts
// correctly. It returns 0 for an empty set.
func (m *Model) Accuracy(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var hits int
	for _, r := range records {
		if m.Predict(r.Vitals).Diagnosis == strings.TrimSpace(r.Diagnosis) {
			hits++
		}
	}
	return float64(hits) / float64(len(records))
}

// Split partitions records into a training and a test set, stratified by
// diagnosis. Each label contributes round(n*testFraction) rows to the test
// set but always keeps at least one row for training. The shuffle is
// seeded, so the same input and seed give the same split.
func Split(records []Record, testFraction float64, seed int64) (train, test []Record) {
	groups := make(map[string][]Record)
	var labels []string
	for _, r := range records {
		label := strings.TrimSpace(r.Diagnosis)
		if label == "" {
			continue
		}
		if _, ok := groups[label]; !ok {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], r)
	}
	sort.Strings(labels)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split, not security sensitive
	for _, label := range labels {
		rows := append([]Record(nil), groups[label]...)
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

		n := int(math.Round(float64(len(rows)) * testFraction))
		if n >= len(rows) {
			n = len(rows) - 1
		}
		if n < 0 {
			n = 0
		}
		test = append(test, rows[:n]...)
		train = append(train, rows[n:]...)
	}
	return train, test
}
