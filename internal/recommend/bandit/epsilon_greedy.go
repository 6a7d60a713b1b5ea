// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package bandit implements online strategy selection.
//
// EpsilonGreedy serves a fixed exploit strategy and, with probability
// epsilon, explores one of the other strategies uniformly at random. Play
// and win counters are kept in an injected recommend.CounterStore whose
// Increment is the only mutation.
//
// The exploit branch does not consult the counters: it always returns the
// configured exploit strategy. Counters are still recorded so the win rates
// are observable through Stats.
package bandit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// defaultSeed seeds the exploration RNG when the configuration leaves it zero.
const defaultSeed = 42

// EpsilonGreedy is an epsilon-greedy strategy selector. It is safe for
// concurrent use.
type EpsilonGreedy struct {
	epsilon float64
	exploit recommend.Strategy
	explore []recommend.Strategy
	store   recommend.CounterStore

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEpsilonGreedy creates a selector over the fixed strategy set.
func NewEpsilonGreedy(cfg recommend.BanditConfig, store recommend.CounterStore) (*EpsilonGreedy, error) {
	if cfg.Epsilon < 0 || cfg.Epsilon > 1 {
		return nil, fmt.Errorf("%w: got %f", recommend.ErrInvalidEpsilon, cfg.Epsilon)
	}
	exploit, err := recommend.ParseStrategy(string(cfg.Exploit))
	if err != nil {
		return nil, fmt.Errorf("exploit strategy: %w", err)
	}
	if store == nil {
		return nil, errors.New("bandit: counter store is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	var explore []recommend.Strategy
	for _, s := range recommend.Strategies() {
		if s != exploit {
			explore = append(explore, s)
		}
	}

	return &EpsilonGreedy{
		epsilon: cfg.Epsilon,
		exploit: exploit,
		explore: explore,
		store:   store,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for strategy exploration
	}, nil
}

// Choose returns the strategy for the next request.
func (b *EpsilonGreedy) Choose() recommend.Strategy {
	s, _ := b.ChooseExplained()
	return s
}

// ChooseExplained returns the strategy for the next request and whether it
// was an exploration draw.
func (b *EpsilonGreedy) ChooseExplained() (recommend.Strategy, bool) {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()

	if len(b.explore) > 0 && b.rng.Float64() < b.epsilon {
		return b.explore[b.rng.Intn(len(b.explore))], true
	}
	return b.exploit, false
}

// Exploit returns the exploit strategy.
func (b *EpsilonGreedy) Exploit() recommend.Strategy {
	return b.exploit
}

// Update records one play of the strategy, and a win when won is true.
func (b *EpsilonGreedy) Update(ctx context.Context, s recommend.Strategy, won bool) error {
	strategy, err := recommend.ParseStrategy(string(s))
	if err != nil {
		return err
	}
	if err := b.store.Increment(ctx, string(strategy), won); err != nil {
		return fmt.Errorf("increment %s: %w", strategy, err)
	}
	return nil
}

// Stats returns plays, wins and win rate for every strategy in the fixed
// order of recommend.Strategies. Unplayed strategies report zeros.
func (b *EpsilonGreedy) Stats(ctx context.Context) ([]recommend.StrategyStats, error) {
	counters, err := b.store.Counters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load counters: %w", err)
	}

	all := recommend.Strategies()
	out := make([]recommend.StrategyStats, 0, len(all))
	for _, s := range all {
		c := counters[string(s)]
		out = append(out, recommend.StrategyStats{
			Strategy: s,
			Plays:    c.Plays,
			Wins:     c.Wins,
			WinRate:  c.WinRate(),
		})
	}
	return out, nil
}

// Ensure EpsilonGreedy implements the interface.
var _ recommend.StrategySelector = (*EpsilonGreedy)(nil)
