// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package validation provides struct validation using go-playground/validator v10.
//
// A singleton validator caches struct metadata and carries two custom tags:
//
//   - strategy: a recommendation strategy name accepted by recommend.ParseStrategy
//   - cronspec: a five-field cron expression or descriptor (robfig/cron syntax)
//
// Errors name fields by their json or koanf tag, so messages read the same as
// the request body or config key the user wrote:
//
//	type FeedbackRequest struct {
//	    ItemID int    `json:"item_id" validate:"gt=0"`
//	    Action string `json:"action" validate:"required,oneof=like skip view"`
//	}
//
//	if errs := validation.ValidateStruct(&req); errs != nil {
//	    // errs.Error() == "action must be one of: like skip view"
//	}
package validation
