// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// route binds a consumer to a topic.
type route struct {
	name   string
	topic  string
	handle message.NoPublishHandlerFunc
}

// buildRouter creates a Watermill router with the routes mounted on sub.
// Failed messages are retried with exponential backoff, then forwarded to
// the poison topic when one is configured. Panics become errors.
func buildRouter(cfg RouterConfig, sub message.Subscriber, poison message.Publisher, logger watermill.LoggerAdapter, routes []route) (*message.Router, error) {
	r, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	if cfg.PoisonQueueTopic != "" && poison != nil {
		pq, err := middleware.PoisonQueue(poison, cfg.PoisonQueueTopic)
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		r.AddMiddleware(pq)
	}
	r.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      cfg.RetryMaxRetries,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     cfg.RetryMaxInterval,
			Multiplier:      cfg.RetryMultiplier,
			Logger:          logger,
		}.Middleware,
	)

	for _, rt := range routes {
		r.AddConsumerHandler(rt.name, rt.topic, sub, rt.handle)
	}
	return r, nil
}

func routeNames(routes []route) []string {
	names := make([]string, len(routes))
	for i, rt := range routes {
		names[i] = rt.name
	}
	return names
}
