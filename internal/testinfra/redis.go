// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// RedisImage is the Redis image used by integration tests.
	RedisImage = "redis:7-alpine"

	redisPort = "6379/tcp"
)

// Redis is a running Redis container.
type Redis struct {
	Container testcontainers.Container

	// Addr is the host:port clients connect to.
	Addr string
}

// RedisOption configures StartRedis.
type RedisOption func(*redisOptions)

type redisOptions struct {
	image        string
	startTimeout time.Duration
}

// WithRedisImage overrides RedisImage.
func WithRedisImage(image string) RedisOption {
	return func(o *redisOptions) { o.image = image }
}

// WithRedisStartTimeout bounds the wait for the server to accept connections.
func WithRedisStartTimeout(d time.Duration) RedisOption {
	return func(o *redisOptions) { o.startTimeout = d }
}

// StartRedis starts a Redis container for the lifetime of the test. The test
// is skipped when no container provider (Docker) is reachable.
func StartRedis(t *testing.T, opts ...RedisOption) *Redis {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	o := redisOptions{image: RedisImage, startTimeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*o.startTimeout)
	defer cancel()

	r, err := startRedis(ctx, o)
	if r != nil {
		testcontainers.CleanupContainer(t, r.Container)
	}
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	return r
}

func startRedis(ctx context.Context, o redisOptions) (*Redis, error) {
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        o.image,
			ExposedPorts: []string{redisPort},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(redisPort),
				wait.ForLog("Ready to accept connections"),
			).WithStartupTimeout(o.startTimeout),
		},
		Started: true,
	})
	if err != nil {
		if ctr == nil {
			return nil, fmt.Errorf("create container: %w", err)
		}
		return &Redis{Container: ctr}, fmt.Errorf("create container: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return &Redis{Container: ctr}, fmt.Errorf("container host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, redisPort)
	if err != nil {
		return &Redis{Container: ctr}, fmt.Errorf("mapped port: %w", err)
	}
	return &Redis{Container: ctr, Addr: net.JoinHostPort(host, port.Port())}, nil
}
