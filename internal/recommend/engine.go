// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/healthrec/internal/cache"
)

// Note: This package has no dependencies on the storage or transport packages.
// Rankers, the strategy selector and the stores are injected, which keeps
// algorithms and adapters free to import this package.

// Observer receives engine measurements. The metrics package implements it.
type Observer interface {
	ObserveRecommendation(strategy string, explored bool, d time.Duration)
	ObserveFeedback(strategy string, won bool)
	ObserveReload(result string, items int)
}

// Engine serves recommendations from the published catalog snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Published catalog snapshot
	catalog  atomic.Pointer[Catalog]
	reloadMu sync.Mutex

	// Registered rankers and rerankers
	rankers   map[Strategy]Ranker
	rerankers []Reranker
	algMu     sync.RWMutex

	// Collaborators
	selector  StrategySelector
	catalogs  CatalogProvider
	ratings   RatingsProvider
	writer    RatingsWriter
	publisher EventPublisher
	observer  Observer

	searchCache *cache.LRU[string, []ScoredItem]

	// Metrics
	requestCount atomic.Int64
	errorCount   atomic.Int64
	reloadCount  atomic.Int64
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests          int64  `json:"requests"`
	Errors            int64  `json:"errors"`
	Reloads           int64  `json:"reloads"`
	SearchCacheHits   int64  `json:"search_cache_hits"`
	SearchCacheMisses int64  `json:"search_cache_misses"`
	CatalogVersion    string `json:"catalog_version"`
	CatalogItems      int    `json:"catalog_items"`
	CatalogMedicines  int    `json:"catalog_medicines"`
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		rankers: make(map[Strategy]Ranker),
	}
	if cfg.Search.CacheSize > 0 {
		e.searchCache = cache.NewLRU[string, []ScoredItem](cfg.Search.CacheSize, cfg.Search.CacheTTL)
	}
	return e, nil
}

// SetCatalogProvider sets the catalog source used by Reload.
func (e *Engine) SetCatalogProvider(p CatalogProvider) {
	e.catalogs = p
}

// SetRatingsProvider sets the ratings source used by RecommendForUser.
func (e *Engine) SetRatingsProvider(p RatingsProvider) {
	e.ratings = p
}

// SetRatingsWriter sets the ratings sink used by SubmitFeedback.
func (e *Engine) SetRatingsWriter(w RatingsWriter) {
	e.writer = w
}

// SetSelector sets the strategy selector.
func (e *Engine) SetSelector(s StrategySelector) {
	e.selector = s
}

// SetPublisher sets the event publisher.
func (e *Engine) SetPublisher(p EventPublisher) {
	e.publisher = p
}

// SetObserver sets the metrics observer.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// RegisterRanker binds a ranker to a strategy.
func (e *Engine) RegisterRanker(s Strategy, r Ranker) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.rankers[s] = r
	e.logger.Info().
		Str("strategy", string(s)).
		Str("ranker", r.Name()).
		Msg("registered ranker")
}

// RegisterReranker adds a reranker to the post-processing pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Catalog returns the published snapshot, or nil before the first publish.
func (e *Engine) Catalog() *Catalog {
	return e.catalog.Load()
}

// Ready reports whether a catalog snapshot has been published.
func (e *Engine) Ready() bool {
	return e.catalog.Load() != nil
}

// Publish swaps in a new catalog snapshot. A snapshot with the same version
// as the current one is skipped and Publish returns false. Concurrent calls
// with equal versions publish exactly once.
func (e *Engine) Publish(cat *Catalog) bool {
	if cat == nil {
		return false
	}
	for {
		cur := e.catalog.Load()
		if cur != nil && cur.Version == cat.Version {
			return false
		}
		if e.catalog.CompareAndSwap(cur, cat) {
			break
		}
	}
	e.logger.Info().
		Str("version", cat.Version).
		Int("items", len(cat.Items)).
		Int("medicines", len(cat.Medicines)).
		Int("vocabulary", cat.Index.VocabularySize()).
		Msg("catalog published")
	return true
}

// Reload fetches the catalog from the provider and publishes it when its
// content changed. It reports whether a new snapshot was published.
func (e *Engine) Reload(ctx context.Context) (bool, error) {
	if e.catalogs == nil {
		return false, fmt.Errorf("catalog: %w", ErrNoProvider)
	}

	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	items, err := e.catalogs.Items(ctx)
	if err != nil {
		e.observeReload("error", 0)
		return false, fmt.Errorf("load items: %w", err)
	}
	meds, err := e.catalogs.Medicines(ctx)
	if err != nil {
		e.observeReload("error", 0)
		return false, fmt.Errorf("load medicines: %w", err)
	}

	if cur := e.catalog.Load(); cur != nil && cur.Version == Fingerprint(items, meds) {
		e.logger.Debug().Str("version", cur.Version).Msg("catalog unchanged, reload skipped")
		e.observeReload("unchanged", len(cur.Items))
		return false, nil
	}

	cat := NewCatalog(items, meds)
	published := e.Publish(cat)
	if published {
		e.reloadCount.Add(1)
		e.observeReload("published", len(cat.Items))
	}
	return published, nil
}

func (e *Engine) observeReload(result string, items int) {
	if e.observer != nil {
		e.observer.ObserveReload(result, items)
	}
}

// snapshot returns the published catalog or ErrNoCatalog.
func (e *Engine) snapshot() (*Catalog, error) {
	cat := e.catalog.Load()
	if cat == nil {
		return nil, ErrNoCatalog
	}
	return cat, nil
}

// resolveK applies the default and the cap to k.
func (e *Engine) resolveK(k int) (int, error) {
	if k < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if k == 0 {
		k = e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		k = e.config.Limits.MaxK
	}
	return k, nil
}

// ListCatalog returns the items of the published snapshot in catalog order.
func (e *Engine) ListCatalog(_ context.Context) []Item {
	cat := e.catalog.Load()
	if cat == nil {
		return []Item{}
	}
	out := make([]Item, len(cat.Items))
	copy(out, cat.Items)
	return out
}

// SearchCatalog returns at most topK items matching the query.
func (e *Engine) SearchCatalog(_ context.Context, query string, topK int) ([]ScoredItem, error) {
	k, err := e.resolveK(topK)
	if err != nil {
		return nil, err
	}
	cat, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []ScoredItem{}, nil
	}

	key := cat.Version + "|" + q + "|" + strconv.Itoa(k)
	if e.searchCache != nil {
		if hit, ok := e.searchCache.Get(key); ok {
			return copyScored(hit), nil
		}
	}

	results := cat.Search(q, k)
	if e.searchCache != nil {
		e.searchCache.Add(key, copyScored(results))
	}
	return results, nil
}

func copyScored(items []ScoredItem) []ScoredItem {
	out := make([]ScoredItem, len(items))
	copy(out, items)
	return out
}

// similarRanker is implemented by rankers that can rank neighbors of one item.
type similarRanker interface {
	Similar(cat *Catalog, itemID, k int) []ScoredItem
}

// SimilarItems returns at most topK items similar to itemID.
func (e *Engine) SimilarItems(_ context.Context, itemID, topK int) ([]ScoredItem, error) {
	k, err := e.resolveK(topK)
	if err != nil {
		return nil, err
	}
	cat, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	r, ok := e.ranker(StrategyContent).(similarRanker)
	if !ok {
		return nil, fmt.Errorf("%w: %s ranker not registered", ErrUnknownStrategy, StrategyContent)
	}
	return r.Similar(cat, itemID, k), nil
}

func (e *Engine) ranker(s Strategy) Ranker {
	e.algMu.RLock()
	defer e.algMu.RUnlock()
	return e.rankers[s]
}

func (e *Engine) getRerankers() []Reranker {
	e.algMu.RLock()
	defer e.algMu.RUnlock()
	out := make([]Reranker, len(e.rerankers))
	copy(out, e.rerankers)
	return out
}

// explainedChooser is implemented by selectors that report exploration.
type explainedChooser interface {
	ChooseExplained() (Strategy, bool)
}

// chooseStrategy resolves the strategy for a request.
func (e *Engine) chooseStrategy(pinned Strategy) (Strategy, bool, error) {
	if pinned != "" {
		s, err := ParseStrategy(string(pinned))
		return s, false, err
	}
	switch sel := e.selector.(type) {
	case nil:
		return e.config.Bandit.Exploit, false, nil
	case explainedChooser:
		s, explored := sel.ChooseExplained()
		return s, explored, nil
	default:
		s := sel.Choose()
		return s, s != e.config.Bandit.Exploit, nil
	}
}

// Recommend serves a recommendation request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	resp, err := e.recommend(ctx, req, start)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, start time.Time) (*Response, error) {
	k, err := e.resolveK(req.K)
	if err != nil {
		return nil, err
	}
	cat, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if strings.TrimSpace(req.TimeOfDay) == "" {
		req.TimeOfDay = TimeslotAny
	}

	strategy, explored, err := e.chooseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}
	ranker := e.ranker(strategy)
	if ranker == nil {
		return nil, fmt.Errorf("%w: no ranker registered for %s", ErrUnknownStrategy, strategy)
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("strategy", string(strategy)).
		Bool("explored", explored).
		Logger()

	rankReq := RankRequest{
		UserID:  req.UserID,
		Liked:   req.LikedItems,
		Ratings: req.Ratings,
		K:       k,
	}
	if strategy == StrategyGraph {
		rankReq.Condition = e.conditionFor(cat, req.LikedItems)
	}

	res, err := ranker.Rank(ctx, cat, rankReq)
	if err != nil {
		return nil, fmt.Errorf("rank %s: %w", strategy, err)
	}

	items := res.Items
	rc := RequestContext{TimeOfDay: req.TimeOfDay}
	for _, rr := range e.getRerankers() {
		items = rr.Rerank(ctx, items, rc)
	}
	if len(items) > k {
		items = items[:k]
	}
	if items == nil {
		items = []ScoredItem{}
	}

	resp := &Response{
		Strategy:  strategy,
		Items:     items,
		Medicines: res.Medicines,
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			UserID:         req.UserID,
			Explored:       explored,
			Condition:      rankReq.Condition,
			CatalogVersion: cat.Version,
			LatencyMS:      time.Since(start).Milliseconds(),
			Timestamp:      time.Now(),
		},
	}

	e.publishServed(ctx, resp, logger)
	if e.observer != nil {
		e.observer.ObserveRecommendation(string(strategy), explored, time.Since(start))
	}

	logger.Debug().
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

// conditionFor picks the graph condition for a liked set.
func (e *Engine) conditionFor(cat *Catalog, liked []int) string {
	if cond, ok := cat.DominantCondition(liked); ok {
		return cond
	}
	return e.config.Graph.DefaultCondition
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) publishServed(ctx context.Context, resp *Response, logger zerolog.Logger) {
	if e.publisher == nil {
		return
	}
	ids := make([]int, len(resp.Items))
	for i := range resp.Items {
		ids[i] = resp.Items[i].Item.ID
	}
	err := e.publisher.PublishServed(ctx, ServedEvent{
		EventID:   uuid.NewString(),
		RequestID: resp.Metadata.RequestID,
		UserID:    resp.Metadata.UserID,
		Strategy:  resp.Strategy,
		Explored:  resp.Metadata.Explored,
		ItemIDs:   ids,
		Timestamp: resp.Metadata.Timestamp,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to publish served event")
	}
}

// RecommendForUser recommends for a stored user. Liked items are the user's
// positively rated items from the ratings store.
func (e *Engine) RecommendForUser(ctx context.Context, userID, k int, timeOfDay string, strategy Strategy) (*Response, error) {
	var ratings []Rating
	if e.ratings != nil {
		var err error
		ratings, err = e.ratings.AllRatings(ctx)
		if err != nil {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("load ratings: %w", err)
		}
	}

	return e.Recommend(ctx, Request{
		UserID:     userID,
		LikedItems: LikedItems(ratings, userID),
		Ratings:    ratings,
		K:          k,
		TimeOfDay:  timeOfDay,
		Strategy:   strategy,
	})
}

// LikedItems returns the items the user rated positively, in log order.
func LikedItems(ratings []Rating, userID int) []int {
	liked := make([]int, 0)
	for _, r := range ratings {
		if r.UserID == userID && r.Value > 0 {
			liked = append(liked, r.ItemID)
		}
	}
	return liked
}

// RecordFeedback records one play of a strategy, and a win when positive.
func (e *Engine) RecordFeedback(ctx context.Context, strategy Strategy, positive bool) error {
	if e.selector == nil {
		return fmt.Errorf("strategy selector: %w", ErrNoProvider)
	}
	s, err := ParseStrategy(string(strategy))
	if err != nil {
		return err
	}
	if err := e.selector.Update(ctx, s, positive); err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	if e.observer != nil {
		e.observer.ObserveFeedback(string(s), positive)
	}
	return nil
}

// SubmitFeedback applies a user action to a served item.
//
// A like rates the item 1 and records a win for the serving strategy; a skip
// rates it -1 and records a loss. A view is only logged. Every action is
// published as a feedback event.
func (e *Engine) SubmitFeedback(ctx context.Context, fb Feedback) error {
	action, err := ParseActivityType(string(fb.Action))
	if err != nil {
		return err
	}
	var strategy Strategy
	if fb.Strategy != "" {
		if strategy, err = ParseStrategy(string(fb.Strategy)); err != nil {
			return err
		}
	}

	if action == ActivityLike || action == ActivitySkip {
		if e.writer == nil {
			return fmt.Errorf("ratings writer: %w", ErrNoProvider)
		}
		value := 1.0
		if action == ActivitySkip {
			value = -1
		}
		if err := e.writer.Rate(ctx, fb.UserID, fb.ItemID, value); err != nil {
			return fmt.Errorf("rate item: %w", err)
		}
		if strategy != "" {
			if err := e.RecordFeedback(ctx, strategy, action == ActivityLike); err != nil {
				return err
			}
		}
	}

	if e.publisher != nil {
		err := e.publisher.PublishFeedback(ctx, FeedbackEvent{
			EventID:   uuid.NewString(),
			UserID:    fb.UserID,
			ItemID:    fb.ItemID,
			Strategy:  strategy,
			Action:    action,
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			e.logger.Warn().Err(err).Int("user_id", fb.UserID).Msg("failed to publish feedback event")
		}
	}
	return nil
}

// graphRelated is implemented by rankers that expose condition neighbors.
type graphRelated interface {
	Related(cat *Catalog, condition string, k int) ([]ScoredItem, []Medicine)
}

// GraphRecommend returns at most topK items and topK medicines linked to the
// condition. An empty condition selects the configured default.
func (e *Engine) GraphRecommend(_ context.Context, condition string, topK int) ([]ScoredItem, []Medicine, error) {
	k, err := e.resolveK(topK)
	if err != nil {
		return nil, nil, err
	}
	cat, err := e.snapshot()
	if err != nil {
		return nil, nil, err
	}
	g, ok := e.ranker(StrategyGraph).(graphRelated)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s ranker not registered", ErrUnknownStrategy, StrategyGraph)
	}
	if strings.TrimSpace(condition) == "" {
		condition = e.config.Graph.DefaultCondition
	}
	items, meds := g.Related(cat, condition, k)
	return items, meds, nil
}

// RecommendMedicines returns the medicines for a condition that are not
// contraindicated by any of the allergies.
func (e *Engine) RecommendMedicines(_ context.Context, condition string, allergies []string) ([]Medicine, error) {
	cat, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return FilterMedicines(cat.Medicines, condition, allergies), nil
}

// BanditStats returns the strategy counters with win rates.
func (e *Engine) BanditStats(ctx context.Context) ([]StrategyStats, error) {
	if e.selector == nil {
		return nil, fmt.Errorf("strategy selector: %w", ErrNoProvider)
	}
	return e.selector.Stats(ctx)
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
		Reloads:  e.reloadCount.Load(),
	}
	if e.searchCache != nil {
		m.SearchCacheHits, m.SearchCacheMisses, _ = e.searchCache.Stats()
	}
	if cat := e.catalog.Load(); cat != nil {
		m.CatalogVersion = cat.Version
		m.CatalogItems = len(cat.Items)
		m.CatalogMedicines = len(cat.Medicines)
	}
	return m
}
