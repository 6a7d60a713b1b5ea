// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/healthrec/internal/metrics"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Message metadata keys.
const (
	MetadataEventType = "event_type"
	MetadataUserID    = "user_id"
)

// Publisher publishes engine events as JSON Watermill messages.
// It implements recommend.EventPublisher.
type Publisher struct {
	pub message.Publisher
}

// NewPublisher wraps a Watermill publisher.
func NewPublisher(pub message.Publisher) (*Publisher, error) {
	if pub == nil {
		return nil, ErrNilPublisher
	}
	return &Publisher{pub: pub}, nil
}

// PublishServed publishes a recommendation.served event. The request ID is
// carried as the message correlation ID.
func (p *Publisher) PublishServed(ctx context.Context, e recommend.ServedEvent) error {
	return p.publish(ctx, recommend.TopicServed, e.EventID, e.RequestID, e.UserID, e)
}

// PublishFeedback publishes a feedback.recorded event.
func (p *Publisher) PublishFeedback(ctx context.Context, e recommend.FeedbackEvent) error {
	return p.publish(ctx, recommend.TopicFeedback, e.EventID, "", e.UserID, e)
}

func (p *Publisher) publish(ctx context.Context, topic, eventID, correlationID string, userID int, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		metrics.RecordEventPublished(topic, err)
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	if eventID == "" {
		eventID = watermill.NewUUID()
	}
	msg := message.NewMessage(eventID, data)
	msg.Metadata.Set(MetadataEventType, topic)
	msg.Metadata.Set(MetadataUserID, fmt.Sprint(userID))
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}

	err = p.pub.Publish(topic, msg)
	metrics.RecordEventPublished(topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

var _ recommend.EventPublisher = (*Publisher)(nil)
