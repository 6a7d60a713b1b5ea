// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package validation

import (
	"strings"
	"testing"
)

type feedbackBody struct {
	ItemID   int    `json:"item_id" validate:"gt=0"`
	Action   string `json:"action" validate:"required,oneof=like skip view"`
	Strategy string `json:"strategy" validate:"omitempty,strategy"`
}

type scheduleConfig struct {
	Refresh string `koanf:"refresh" validate:"omitempty,cronspec"`
	Name    string `validate:"min=3"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:  "valid feedback",
			input: &feedbackBody{ItemID: 1, Action: "like", Strategy: "collab"},
		},
		{
			name:      "item id must be positive",
			input:     &feedbackBody{ItemID: 0, Action: "like"},
			wantField: "item_id",
			wantTag:   "gt",
			wantMsg:   "item_id must be greater than 0",
		},
		{
			name:      "unknown action",
			input:     &feedbackBody{ItemID: 1, Action: "share"},
			wantField: "action",
			wantTag:   "oneof",
			wantMsg:   "action must be one of: like skip view",
		},
		{
			name:      "unknown strategy",
			input:     &feedbackBody{ItemID: 1, Action: "view", Strategy: "random"},
			wantField: "strategy",
			wantTag:   "strategy",
		},
		{
			name:  "valid cron descriptor",
			input: &scheduleConfig{Refresh: "@every 5m", Name: "catalog"},
		},
		{
			name:      "bad cron",
			input:     &scheduleConfig{Refresh: "every now and then", Name: "catalog"},
			wantField: "refresh",
			wantTag:   "cronspec",
		},
		{
			name:      "string min adds characters",
			input:     &scheduleConfig{Refresh: "*/5 * * * *", Name: "ab"},
			wantField: "Name",
			wantTag:   "min",
			wantMsg:   "Name must be at least 3 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("ValidateStruct() = %v, want one error", errs)
			}
			if errs[0].Field != tt.wantField || errs[0].Tag != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field, errs[0].Tag, tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && errs.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorsDetails(t *testing.T) {
	errs := ValidateStruct(&feedbackBody{ItemID: -1, Action: ""})
	if len(errs) != 2 {
		t.Fatalf("ValidateStruct() = %v, want two errors", errs)
	}
	fields, ok := errs.Details()["fields"].([]map[string]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("Details() = %v, want two fields", errs.Details())
	}
	if !strings.Contains(errs.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", errs.Error())
	}

	single := Errors{{Field: "k", Tag: "lte", Message: "k must be less than or equal to 100"}}
	if got := single.Details()["field"]; got != "k" {
		t.Errorf("Details()[field] = %v, want k", got)
	}
}
