// analytics.go
//
// Storefront data service for the bakery brand site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of bakery-api.
// bakery-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// bakery-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with bakery-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/localnerve/bakery-api/internal/metrics"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/types"
	"go.uber.org/zap"
)

// AnalyticsSummary is the analytics document plus simple aggregates
type AnalyticsSummary struct {
	Pageviews  []models.AnalyticsRecord `json:"pageviews"`
	Events     []models.AnalyticsRecord `json:"events"`
	Totals     AnalyticsTotals          `json:"totals"`
	TopPages   map[string]int           `json:"topPages"`
	EventTypes map[string]int           `json:"eventTypes"`
}

// AnalyticsTotals counts the records in each list
type AnalyticsTotals struct {
	Pageviews int `json:"pageviews"`
	Events    int `json:"events"`
}

// AnalyticsService appends pageviews and events to the analytics document
type AnalyticsService struct {
	store storage.Store
	lists map[string]*Collection[models.AnalyticsRecord, *models.AnalyticsRecord]
	now   func() time.Time
}

// NewAnalyticsService creates the analytics service; maxRecords of 0 keeps every record
func NewAnalyticsService(store storage.Store, log *zap.Logger, maxRecords int) *AnalyticsService {
	list := func(field string) *Collection[models.AnalyticsRecord, *models.AnalyticsRecord] {
		return NewCollection[models.AnalyticsRecord](store, log, CollectionOptions[models.AnalyticsRecord]{
			Document: "analytics",
			Field:    field,
			MaxLen:   maxRecords,
		})
	}
	return &AnalyticsService{
		store: store,
		lists: map[string]*Collection[models.AnalyticsRecord, *models.AnalyticsRecord]{
			models.AnalyticsPageviews: list(models.AnalyticsPageviews),
			models.AnalyticsEvents:    list(models.AnalyticsEvents),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Record turns a tracked payload into a record. "type" selects the list,
// the remaining keys become the record's data. Client ids and timestamps are ignored.
func Record(payload map[string]any) (models.AnalyticsRecord, error) {
	kind, _ := payload["type"].(string)
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return models.AnalyticsRecord{}, types.NewValidationError("type", "type is required")
	}

	data := make(map[string]any, len(payload))
	for k, v := range payload {
		switch k {
		case "type", "id", "timestamp":
			continue
		}
		data[k] = v
	}
	if len(data) == 0 {
		data = nil
	}

	return models.AnalyticsRecord{Type: kind, Data: data}, nil
}

// Track validates, stamps and appends a batch of records.
// The whole batch is one write of the analytics document, so it is stored entirely or not at all.
func (s *AnalyticsService) Track(ctx context.Context, payloads []map[string]any) ([]models.AnalyticsRecord, error) {
	if len(payloads) == 0 {
		return nil, types.NewValidationError("", "at least one record is required")
	}

	now := s.now()
	grouped := map[string][]models.AnalyticsRecord{}
	order := []string{}
	recorded := make([]models.AnalyticsRecord, 0, len(payloads))

	for _, payload := range payloads {
		rec, err := Record(payload)
		if err != nil {
			return nil, err
		}
		rec.ID = NewID()
		rec.Timestamp = now
		if err := Validate(&rec); err != nil {
			return nil, err
		}

		name := rec.ListName()
		if _, ok := grouped[name]; !ok {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], rec)
		recorded = append(recorded, rec)
	}

	if err := s.appendAll(ctx, order, grouped); err != nil {
		return nil, err
	}
	return recorded, nil
}

// appendAll appends each group to its list inside a single document update
func (s *AnalyticsService) appendAll(ctx context.Context, order []string, grouped map[string][]models.AnalyticsRecord) error {
	err := s.store.Update(ctx, "analytics", func(current []byte, found bool) ([]byte, error) {
		doc, present := current, found
		for _, name := range order {
			list := s.lists[name]
			items, ok, err := list.decode(doc, present)
			if err != nil {
				return nil, types.Unavailable("decode "+list.Name(), err)
			}
			if !ok {
				items = list.defaults()
			}
			items = list.trim(append(items, grouped[name]...))

			doc, err = list.encode(doc, present, items)
			if err != nil {
				return nil, err
			}
			present = true
		}
		return doc, nil
	})
	if errors.Is(err, types.ErrConflict) {
		return err
	}
	if err != nil {
		return s.lists[order[0]].degraded("track", err)
	}

	for _, name := range order {
		metrics.Mutations.WithLabelValues(s.lists[name].Name(), "track").Inc()
	}
	return nil
}

// Summary returns both lists with their counts
func (s *AnalyticsService) Summary(ctx context.Context) (AnalyticsSummary, error) {
	pageviews, err := s.lists[models.AnalyticsPageviews].List(ctx)
	if err != nil {
		return AnalyticsSummary{}, err
	}
	events, err := s.lists[models.AnalyticsEvents].List(ctx)
	if err != nil {
		return AnalyticsSummary{}, err
	}

	summary := AnalyticsSummary{
		Pageviews:  pageviews,
		Events:     events,
		Totals:     AnalyticsTotals{Pageviews: len(pageviews), Events: len(events)},
		TopPages:   map[string]int{},
		EventTypes: map[string]int{},
	}
	for _, pv := range pageviews {
		if page := pagePath(pv.Data); page != "" {
			summary.TopPages[page]++
		}
	}
	for _, ev := range events {
		name, _ := ev.Data["event"].(string)
		if name == "" {
			name = ev.Type
		}
		summary.EventTypes[name]++
	}

	return summary, nil
}

func pagePath(data map[string]any) string {
	for _, key := range []string{"page", "path", "url"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
