// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package eventprocessor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func TestNewPublisher_Nil(t *testing.T) {
	if _, err := NewPublisher(nil); !errors.Is(err, ErrNilPublisher) {
		t.Errorf("NewPublisher(nil) error = %v, want ErrNilPublisher", err)
	}
}

func receiveOne(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestPublisher_PublishServed(t *testing.T) {
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer ps.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := ps.Subscribe(ctx, recommend.TopicServed)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, err := NewPublisher(ps)
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	event := recommend.ServedEvent{
		EventID:   "evt-1",
		RequestID: "req-1",
		UserID:    7,
		Strategy:  recommend.StrategyHybrid,
		ItemIDs:   []int{3, 1},
		Timestamp: time.Now().UTC(),
	}
	if err := pub.PublishServed(ctx, event); err != nil {
		t.Fatalf("PublishServed() error = %v", err)
	}

	msg := receiveOne(t, ch)
	if msg.UUID != "evt-1" {
		t.Errorf("UUID = %q, want %q", msg.UUID, "evt-1")
	}
	if got := middleware.MessageCorrelationID(msg); got != "req-1" {
		t.Errorf("correlation ID = %q, want %q", got, "req-1")
	}
	if got := msg.Metadata.Get(MetadataEventType); got != recommend.TopicServed {
		t.Errorf("event_type = %q, want %q", got, recommend.TopicServed)
	}
	if got := msg.Metadata.Get(MetadataUserID); got != "7" {
		t.Errorf("user_id = %q, want %q", got, "7")
	}

	var decoded recommend.ServedEvent
	if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Strategy != recommend.StrategyHybrid || len(decoded.ItemIDs) != 2 {
		t.Errorf("decoded = %+v, want hybrid with 2 items", decoded)
	}
}

func TestPublisher_PublishFeedbackGeneratesID(t *testing.T) {
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer ps.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := ps.Subscribe(ctx, recommend.TopicFeedback)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, _ := NewPublisher(ps)
	if err := pub.PublishFeedback(ctx, recommend.FeedbackEvent{UserID: 1, ItemID: 2, Action: recommend.ActivityLike}); err != nil {
		t.Fatalf("PublishFeedback() error = %v", err)
	}

	msg := receiveOne(t, ch)
	if msg.UUID == "" {
		t.Error("UUID is empty, want generated ID")
	}
}

func TestPublisher_CanceledContext(t *testing.T) {
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer ps.Close()
	pub, _ := NewPublisher(ps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.PublishFeedback(ctx, recommend.FeedbackEvent{UserID: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PublishFeedback() error = %v, want context.Canceled", err)
	}
}
