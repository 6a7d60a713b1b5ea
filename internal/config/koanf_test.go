// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 10s", cfg.Server.RequestTimeout)
	}
	if cfg.Recommend.Alpha != 0.6 || cfg.Recommend.Epsilon != 0.2 {
		t.Errorf("alpha, epsilon = %v, %v, want 0.6, 0.2", cfg.Recommend.Alpha, cfg.Recommend.Epsilon)
	}
	if cfg.Recommend.DefaultCondition != "hypertension" {
		t.Errorf("DefaultCondition = %q, want hypertension", cfg.Recommend.DefaultCondition)
	}
	if cfg.Storage.Counters != "memory" {
		t.Errorf("Storage.Counters = %q, want memory", cfg.Storage.Counters)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
catalog:
  source: csv
  items_csv: data/items.csv
storage:
  backend: sqlite
  counters: badger
recommend:
  alpha: 0.4
  default_k: 3
`)
	t.Setenv("RECOMMEND_EPSILON", "0.1")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SEARCH_CACHE_TTL", "30s")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"env overrides file", cfg.Server.Port, 9100},
		{"file overrides default", cfg.Recommend.Alpha, 0.4},
		{"env only", cfg.Recommend.Epsilon, 0.1},
		{"default kept", cfg.Recommend.MaxK, 100},
		{"file default_k", cfg.Recommend.DefaultK, 3},
		{"catalog source", cfg.Catalog.Source, "csv"},
		{"counters", cfg.Storage.Counters, "badger"},
		{"duration from env", cfg.Recommend.SearchCacheTTL, 30 * time.Second},
		{"cors count", len(cfg.Server.CORSOrigins), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
	if cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins[1] = %q, want https://b.example", cfg.Server.CORSOrigins[1])
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "alpha out of range", body: "recommend:\n  alpha: 1.5\n", wantErr: recommend.ErrInvalidAlpha},
		{name: "epsilon out of range", body: "recommend:\n  epsilon: -0.1\n", wantErr: recommend.ErrInvalidEpsilon},
		{name: "redis without addr", body: "storage:\n  counters: redis\n  redis_addr: \"\"\n", wantErr: ErrMissingSetting},
		{name: "unknown backend", body: "storage:\n  backend: postgres\n"},
		{name: "bad cron", body: "catalog:\n  refresh_spec: sometimes\n"},
		{name: "unknown exploit", body: "recommend:\n  exploit: random\n"},
		{name: "csv without items", body: "catalog:\n  source: csv\n"},
		{name: "holdout of one", body: "diagnosis:\n  test_fraction: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadFrom() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "HEALTHREC_TEST_DOTENV"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("%s = %q, want from-file", key, got)
	}

	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("loadDotEnv(missing) error = %v, want nil", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"COUNTERS_BACKEND", "storage.counters"},
		{"recommend_alpha", "recommend.alpha"},
		{"DIAGNOSIS_RECORDS_CSV", "diagnosis.records_csv"},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
