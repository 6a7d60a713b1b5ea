// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	tests := []struct {
		name     string
		cfg      Config
		contains string
	}{
		{name: "json", cfg: Config{Level: "info", Format: "json"}, contains: `"message":"catalog loaded"`},
		{name: "console", cfg: Config{Level: "info", Format: "console"}, contains: "catalog loaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			Init(tt.cfg)
			Info().Msg("catalog loaded")
			Debug().Msg("hidden")
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output = %q, want it to contain %q", out, tt.contains)
			}
			if strings.Contains(out, "hidden") {
				t.Errorf("output = %q, debug line should be filtered", out)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	logger := WithComponent("bandit")
	logger.Info().Msg("update")

	if !strings.Contains(buf.String(), `"component":"bandit"`) {
		t.Errorf("output = %q, want component field", buf.String())
	}
}
