// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package eventprocessor

import (
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/metrics"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Handler names, used for router registration and metrics.
const (
	HandlerActivityLog = "activity_log"
	HandlerServedAudit = "served_audit"
	HandlerPoisonAudit = "poison_audit"
)

// ActivityHandler appends feedback events to the activity log.
type ActivityHandler struct {
	log recommend.ActivityLog

	appended  atomic.Int64
	malformed atomic.Int64
}

// NewActivityHandler creates the feedback consumer.
func NewActivityHandler(log recommend.ActivityLog) (*ActivityHandler, error) {
	if log == nil {
		return nil, ErrNilActivityLog
	}
	return &ActivityHandler{log: log}, nil
}

// Handle decodes a feedback.recorded message and appends it. Malformed
// payloads are acknowledged and dropped since a retry cannot fix them; store
// errors are returned so the router retries.
func (h *ActivityHandler) Handle(msg *message.Message) error {
	var event recommend.FeedbackEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.malformed.Add(1)
		metrics.RecordEventProcessed(HandlerActivityLog, err)
		logging.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed feedback event")
		return nil
	}

	err := h.log.Append(msg.Context(), event.Activity())
	metrics.RecordEventProcessed(HandlerActivityLog, err)
	if err != nil {
		return err
	}
	h.appended.Add(1)
	return nil
}

// Appended returns the number of activities written.
func (h *ActivityHandler) Appended() int64 {
	return h.appended.Load()
}

// Malformed returns the number of dropped payloads.
func (h *ActivityHandler) Malformed() int64 {
	return h.malformed.Load()
}

// servedAudit logs served recommendation lists at debug level.
func servedAudit(msg *message.Message) error {
	var event recommend.ServedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		metrics.RecordEventProcessed(HandlerServedAudit, err)
		return nil
	}
	logging.Debug().
		Str("request_id", middleware.MessageCorrelationID(msg)).
		Int("user_id", event.UserID).
		Str("strategy", string(event.Strategy)).
		Bool("explored", event.Explored).
		Ints("item_ids", event.ItemIDs).
		Msg("Recommendation served")
	metrics.RecordEventProcessed(HandlerServedAudit, nil)
	return nil
}

// poisonAudit logs messages that exhausted their retries.
func poisonAudit(msg *message.Message) error {
	logging.Error().
		Str("message_uuid", msg.UUID).
		Str("event_type", msg.Metadata.Get(MetadataEventType)).
		Str("handler", msg.Metadata.Get(middleware.PoisonedHandlerKey)).
		Str("reason", msg.Metadata.Get(middleware.ReasonForPoisonedKey)).
		Msg("Event moved to poison queue")
	metrics.RecordEventProcessed(HandlerPoisonAudit, nil)
	return nil
}
