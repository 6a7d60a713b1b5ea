// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Pipeline connects the engine's events to their consumers over an
// in-process Watermill pub/sub. The pub/sub outlives router restarts; each
// Serve call builds a fresh router.
type Pipeline struct {
	cfg       RouterConfig
	logger    watermill.LoggerAdapter
	pubsub    *gochannel.GoChannel
	publisher *Publisher
	activity  *ActivityHandler

	startedOnce sync.Once
	started     chan struct{}
}

// NewPipeline creates the pub/sub, the publisher and the activity consumer.
func NewPipeline(cfg RouterConfig, log recommend.ActivityLog) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	activity, err := NewActivityHandler(log)
	if err != nil {
		return nil, err
	}

	logger := watermill.NewSlogLogger(logging.NewSlogLogger("eventprocessor"))
	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.BufferSize}, logger)
	pub, err := NewPublisher(ps)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		pubsub:    ps,
		publisher: pub,
		activity:  activity,
		started:   make(chan struct{}),
	}, nil
}

// Publisher returns the engine-facing publisher.
func (p *Pipeline) Publisher() *Publisher {
	return p.publisher
}

// Activity returns the feedback consumer.
func (p *Pipeline) Activity() *ActivityHandler {
	return p.activity
}

// Started closes once the first router has subscribed all handlers.
// Events published earlier have no subscriber and are dropped.
func (p *Pipeline) Started() <-chan struct{} {
	return p.started
}

// Serve runs a router until ctx is canceled. It implements suture.Service.
func (p *Pipeline) Serve(ctx context.Context) error {
	routes := []route{
		{HandlerActivityLog, recommend.TopicFeedback, p.activity.Handle},
		{HandlerServedAudit, recommend.TopicServed, servedAudit},
	}
	if p.cfg.PoisonQueueTopic != "" {
		routes = append(routes, route{HandlerPoisonAudit, p.cfg.PoisonQueueTopic, poisonAudit})
	}
	router, err := buildRouter(p.cfg, p.pubsub, p.pubsub, p.logger, routes)
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-router.Running():
			p.startedOnce.Do(func() { close(p.started) })
			logging.Info().Strs("handlers", routeNames(routes)).Msg("Event router running")
		case <-ctx.Done():
		}
	}()

	err = router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		return errors.New("event router stopped unexpectedly")
	}
	return fmt.Errorf("event router: %w", err)
}

// String names the service in supervisor logs.
func (p *Pipeline) String() string {
	return "event-router"
}

// Close shuts down the pub/sub. Call it after the supervisor has stopped Serve.
func (p *Pipeline) Close() error {
	return p.pubsub.Close()
}
