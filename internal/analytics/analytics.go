// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package analytics computes engagement KPIs and per-item rating performance
// from the ratings store and the activity log.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/healthrec/internal/models"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// KPIs summarizes the ratings log and the activity log.
//
// Active days and months count distinct UTC calendar dates of activity
// timestamps; zero timestamps are ignored. Unique users come from the ratings
// when there are any, otherwise from the activity log.
//
//nolint:gocritic // rangeValCopy: Activity passed by value in range, acceptable for clarity
func KPIs(ratings []recommend.Rating, activities []recommend.Activity) models.KPISummary {
	days := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, a := range activities {
		if a.Timestamp.IsZero() {
			continue
		}
		ts := a.Timestamp.UTC()
		days[ts.Format("2006-01-02")] = struct{}{}
		months[ts.Format("2006-01")] = struct{}{}
	}

	positive := 0
	users := make(map[int]struct{})
	for _, r := range ratings {
		if r.Value > 0 {
			positive++
		}
		users[r.UserID] = struct{}{}
	}
	if len(ratings) == 0 {
		for _, a := range activities {
			users[a.UserID] = struct{}{}
		}
	}

	var rate float64
	if len(ratings) > 0 {
		rate = round2(float64(positive) / float64(len(ratings)) * 100)
	}

	return models.KPISummary{
		ActiveDays:         len(days),
		ActiveMonths:       len(months),
		EventsLogged:       len(activities),
		RatingsCount:       len(ratings),
		PositiveRatingRate: rate,
		UniqueUsers:        len(users),
	}
}

// ItemPerformance returns impressions, positives and CTR per rated item,
// ordered by item id.
func ItemPerformance(ratings []recommend.Rating) []models.ItemPerformance {
	byItem := make(map[int]*models.ItemPerformance)
	for _, r := range ratings {
		p, ok := byItem[r.ItemID]
		if !ok {
			p = &models.ItemPerformance{ItemID: r.ItemID}
			byItem[r.ItemID] = p
		}
		p.Impressions++
		if r.Value > 0 {
			p.Positive++
		}
	}

	out := make([]models.ItemPerformance, 0, len(byItem))
	for _, p := range byItem {
		p.CTR = round2(float64(p.Positive) / float64(p.Impressions) * 100)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Service loads the logs from the stores and computes analytics over them.
type Service struct {
	ratings    recommend.RatingsProvider
	activities recommend.ActivityLog
}

// NewService creates an analytics service. Either source may be nil and is
// then treated as empty.
func NewService(ratings recommend.RatingsProvider, activities recommend.ActivityLog) *Service {
	return &Service{ratings: ratings, activities: activities}
}

// KPIs computes the KPI summary over the full logs.
func (s *Service) KPIs(ctx context.Context) (models.KPISummary, error) {
	ratings, err := s.loadRatings(ctx)
	if err != nil {
		return models.KPISummary{}, err
	}
	var acts []recommend.Activity
	if s.activities != nil {
		acts, err = s.activities.Recent(ctx, 0)
		if err != nil {
			return models.KPISummary{}, fmt.Errorf("load activities: %w", err)
		}
	}
	return KPIs(ratings, acts), nil
}

// Items computes per-item performance over the ratings log.
func (s *Service) Items(ctx context.Context) ([]models.ItemPerformance, error) {
	ratings, err := s.loadRatings(ctx)
	if err != nil {
		return nil, err
	}
	return ItemPerformance(ratings), nil
}

func (s *Service) loadRatings(ctx context.Context) ([]recommend.Rating, error) {
	if s.ratings == nil {
		return nil, nil
	}
	ratings, err := s.ratings.AllRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	return ratings, nil
}
