// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/healthrec/internal/diagnosis"
)

// clinicSource serves a small labeled record set.
type clinicSource struct{ err error }

func (s clinicSource) Records(context.Context) ([]diagnosis.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	rows := []struct {
		age, bp, glucose, hr float64
		label                string
	}{
		{28, 112, 88, 68, "healthy"}, {34, 118, 92, 72, "healthy"}, {31, 115, 90, 70, "healthy"},
		{52, 128, 215, 80, "diabetes"}, {58, 132, 230, 82, "diabetes"}, {55, 130, 220, 79, "diabetes"},
		{63, 172, 102, 86, "hypertension"}, {59, 168, 98, 84, "hypertension"}, {66, 178, 105, 88, "hypertension"},
	}
	out := make([]diagnosis.Record, len(rows))
	for i, r := range rows {
		out[i] = diagnosis.Record{
			Vitals:    diagnosis.Vitals{Age: r.age, BloodPressure: r.bp, Glucose: r.glucose, HeartRate: r.hr},
			Diagnosis: r.label,
		}
	}
	return out, nil
}

func newPredictServer(t *testing.T, src diagnosis.RecordSource) *testServer {
	t.Helper()
	s := newTestServer(t, true, nil)
	if src == nil {
		return s
	}
	p, err := diagnosis.NewPredictor(src, diagnosis.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}
	s.api.SetPredictor(p)
	return s
}

func TestPredict(t *testing.T) {
	s := newPredictServer(t, clinicSource{})

	tests := []struct {
		name   string
		query  string
		status int
		code   string
		want   string
	}{
		{"healthy", "age=30&blood_pressure=116&glucose_level=91&heart_rate=70", http.StatusOK, "", "healthy"},
		{"diabetes", "age=57&blood_pressure=131&glucose_level=225&heart_rate=81", http.StatusOK, "", "diabetes"},
		{"hypertension", "age=62&blood_pressure=171&glucose_level=100&heart_rate=85", http.StatusOK, "", "hypertension"},
		{"missing vitals", "age=40", http.StatusBadRequest, ErrCodeValidation, ""},
		{"not a number", "age=old&blood_pressure=120&glucose_level=90&heart_rate=70", http.StatusBadRequest, ErrCodeValidation, ""},
		{"out of range", "age=40&blood_pressure=300&glucose_level=90&heart_rate=70", http.StatusBadRequest, ErrCodeValidation, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodGet, "/api/v1/predict?"+tt.query, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.code != "" {
				if env.Error == nil || env.Error.Code != tt.code {
					t.Errorf("error = %+v, want %s", env.Error, tt.code)
				}
				return
			}
			var got predictResponse
			decodeData(t, env, &got)
			if got.Diagnosis != tt.want {
				t.Errorf("diagnosis = %q, want %q", got.Diagnosis, tt.want)
			}
			if len(got.Distances) != 3 {
				t.Errorf("distances = %v, want 3 labels", got.Distances)
			}
		})
	}
}

func TestTrainPredictor(t *testing.T) {
	s := newPredictServer(t, clinicSource{})
	rec, env := s.do(t, http.MethodPost, "/api/v1/predict/train", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var res diagnosis.TrainResult
	decodeData(t, env, &res)
	if res.Records != 9 || res.TestSize != 3 || res.Accuracy != 1 {
		t.Errorf("train result = %+v, want 9 records, 3 held out, accuracy 1", res)
	}
}

func TestPredictUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		src    diagnosis.RecordSource
		method string
		path   string
		status int
		code   string
	}{
		{"disabled predict", nil, http.MethodGet, "/api/v1/predict?age=40&blood_pressure=120&glucose_level=90&heart_rate=70", http.StatusServiceUnavailable, ErrCodeNotReady},
		{"disabled train", nil, http.MethodPost, "/api/v1/predict/train", http.StatusServiceUnavailable, ErrCodeNotReady},
		{"read failure", clinicSource{err: errors.New("file not found")}, http.MethodPost, "/api/v1/predict/train", http.StatusInternalServerError, ErrCodeStore},
		{"missing column", clinicSource{err: diagnosis.ErrMissingColumn}, http.MethodGet, "/api/v1/predict?age=40&blood_pressure=120&glucose_level=90&heart_rate=70", http.StatusServiceUnavailable, ErrCodeNotReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPredictServer(t, tt.src)
			rec, env := s.do(t, tt.method, tt.path, nil)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want %s", env.Error, tt.code)
			}
		})
	}
}
