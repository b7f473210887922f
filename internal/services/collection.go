// collection.go
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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/bakery-api/internal/metrics"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CollectionOptions describes where a collection lives and how it grows.
type CollectionOptions[T any] struct {
	// Document is the storage key holding the collection
	Document string
	// Field names the list inside a keyed document; empty means the document is a bare array
	Field string
	// IDField is the JSON name of the identifying field, "id" when empty
	IDField string
	// Protected JSON fields are never changed by Update
	Protected []string
	// Seed returns the defaults written when the collection is absent
	Seed func() []T
	// Clean normalises free text on create and after every update merge
	Clean func(*T)
	// Prepend stores new records first
	Prepend bool
	// MaxLen trims the oldest records beyond this length, 0 keeps everything
	MaxLen int
}

// Collection is an ordered list of records persisted as one document.
// Every change is a single atomic Store.Update.
type Collection[T any, PT interface {
	*T
	models.Identifiable
}] struct {
	store storage.Store
	opts  CollectionOptions[T]
	log   *zap.Logger
	loads singleflight.Group
}

// NewCollection creates a collection over store
func NewCollection[T any, PT interface {
	*T
	models.Identifiable
}](store storage.Store, log *zap.Logger, opts CollectionOptions[T]) *Collection[T, PT] {
	if opts.IDField == "" {
		opts.IDField = "id"
	}
	return &Collection[T, PT]{
		store: store,
		opts:  opts,
		log:   log.With(zap.String("collection", collectionName(opts.Document, opts.Field))),
	}
}

func collectionName(document, field string) string {
	if field == "" {
		return document
	}
	return document + "." + field
}

// Name identifies the collection in logs and metrics
func (c *Collection[T, PT]) Name() string {
	return collectionName(c.opts.Document, c.opts.Field)
}

// List returns the collection, seeding it with defaults when absent.
// A backend or parse failure returns an error matching types.ErrUnavailable.
func (c *Collection[T, PT]) List(ctx context.Context) ([]T, error) {
	v, err, _ := c.loads.Do("list", func() (any, error) {
		// the load is shared, one caller going away must not fail the others
		return c.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	// callers share the loaded slice, hand each its own copy
	items := v.([]T)
	out := make([]T, len(items))
	copy(out, items)
	return out, nil
}

func (c *Collection[T, PT]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.opts.Document)
	found := true
	if errors.Is(err, types.ErrNotFound) {
		found = false
	} else if err != nil {
		return nil, c.degraded("read", err)
	}

	items, present, err := c.decode(raw, found)
	if err != nil {
		return nil, c.degraded("decode", err)
	}
	if present {
		return items, nil
	}

	return c.seed(ctx)
}

// seed persists the defaults unless another writer got there first
func (c *Collection[T, PT]) seed(ctx context.Context) ([]T, error) {
	var (
		seeded []T
		wrote  bool
	)
	err := c.store.Update(ctx, c.opts.Document, func(current []byte, found bool) ([]byte, error) {
		items, present, err := c.decode(current, found)
		if err != nil {
			return nil, types.Unavailable("decode "+c.Name(), err)
		}
		if present {
			seeded, wrote = items, false
			return nil, storage.ErrNoChange
		}
		seeded, wrote = c.defaults(), true
		return c.encode(current, found, seeded)
	})
	if err != nil {
		if errors.Is(err, types.ErrUnavailable) {
			return nil, c.degraded("seed", err)
		}
		// the read itself succeeded, serve the defaults and retry the write next time
		c.log.Warn("failed to persist default collection", zap.Error(err))
		return c.defaults(), nil
	}

	if wrote {
		metrics.Seeds.WithLabelValues(c.Name()).Inc()
		c.log.Info("seeded collection with defaults", zap.Int("count", len(seeded)))
	}
	return seeded, nil
}

func (c *Collection[T, PT]) defaults() []T {
	if c.opts.Seed == nil {
		return []T{}
	}
	items := c.opts.Seed()
	if items == nil {
		return []T{}
	}
	return items
}

// Get returns the record with id or types.ErrNotFound
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.List(ctx)
	if err != nil {
		return zero, err
	}
	if i := c.indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, types.ErrNotFound
}

// Mutate applies fn to the current records and persists the result atomically.
// fn may run more than once, so it must not have side effects outside the slice.
func (c *Collection[T, PT]) Mutate(ctx context.Context, op string, fn func(items []T) ([]T, error)) ([]T, error) {
	var (
		result []T
		fnErr  error
	)
	err := c.store.Update(ctx, c.opts.Document, func(current []byte, found bool) ([]byte, error) {
		fnErr = nil
		items, present, err := c.decode(current, found)
		if err != nil {
			fnErr = types.Unavailable("decode "+c.Name(), err)
			return nil, fnErr
		}
		if !present {
			items = c.defaults()
		}

		next, err := fn(items)
		if err != nil {
			fnErr = err
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		next = c.trim(next)

		encoded, err := c.encode(current, found, next)
		if err != nil {
			fnErr = err
			return nil, err
		}
		result = next
		return encoded, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, types.ErrUnavailable):
		return nil, c.degraded(op, err)
	case fnErr != nil, errors.Is(err, types.ErrConflict):
		return nil, err
	default:
		// the store failed before or while writing
		return nil, c.degraded(op, err)
	}

	metrics.Mutations.WithLabelValues(c.Name(), op).Inc()
	return result, nil
}

// Create validates item, assigns an id when it has none and stores it
func (c *Collection[T, PT]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	c.clean(&item)
	p := PT(&item)
	if err := Validate(p); err != nil {
		return zero, err
	}
	if p.GetID() == "" {
		p.SetID(NewID())
	}

	_, err := c.Mutate(ctx, "create", func(items []T) ([]T, error) {
		if c.opts.Prepend {
			return append([]T{item}, items...), nil
		}
		return append(items, item), nil
	})
	if err != nil {
		return zero, err
	}
	return item, nil
}

// Update shallow-merges patch into the record with id and re-validates it.
// The identifying field and protected fields are ignored in patch.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (T, error) {
	var updated T
	_, err := c.Mutate(ctx, "update", func(items []T) ([]T, error) {
		i := c.indexOf(items, id)
		if i < 0 {
			return nil, types.ErrNotFound
		}

		merged, err := c.merge(items[i], patch)
		if err != nil {
			return nil, err
		}
		PT(&merged).SetID(id)
		c.clean(&merged)
		if err := Validate(PT(&merged)); err != nil {
			return nil, err
		}

		items[i] = merged
		updated = merged
		return items, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes every record with id and reports how many went.
// The collection is written even when nothing matched.
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) (int, error) {
	var removed int
	_, err := c.Mutate(ctx, "delete", func(items []T) ([]T, error) {
		removed = 0
		kept := items[:0]
		for _, item := range items {
			if PT(&item).GetID() == id {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (c *Collection[T, PT]) indexOf(items []T, id string) int {
	for i := range items {
		if PT(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, PT]) merge(record T, patch map[string]json.RawMessage) (T, error) {
	var merged T

	base, err := json.Marshal(record)
	if err != nil {
		return merged, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return merged, err
	}

	for name, value := range patch {
		if c.immutable(name) {
			continue
		}
		fields[name] = value
	}

	combined, err := json.Marshal(fields)
	if err != nil {
		return merged, err
	}
	if err := json.Unmarshal(combined, &merged); err != nil {
		return merged, invalidField(err)
	}
	return merged, nil
}

func (c *Collection[T, PT]) clean(item *T) {
	if c.opts.Clean != nil {
		c.opts.Clean(item)
	}
}

func (c *Collection[T, PT]) immutable(name string) bool {
	if name == c.opts.IDField {
		return true
	}
	for _, p := range c.opts.Protected {
		if p == name {
			return true
		}
	}
	return false
}

func (c *Collection[T, PT]) trim(items []T) []T {
	if c.opts.MaxLen <= 0 || len(items) <= c.opts.MaxLen {
		return items
	}
	if c.opts.Prepend {
		return items[:c.opts.MaxLen]
	}
	return items[len(items)-c.opts.MaxLen:]
}

// decode reports present=false when the collection has never been written
func (c *Collection[T, PT]) decode(raw []byte, found bool) ([]T, bool, error) {
	if !found {
		return nil, false, nil
	}

	list := raw
	if c.opts.Field != "" {
		doc := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, false, err
		}
		value, ok := doc[c.opts.Field]
		if !ok {
			return nil, false, nil
		}
		list = value
	}

	if strings.TrimSpace(string(list)) == "null" {
		return nil, false, nil
	}

	var items []T
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, false, err
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

// encode writes items back, keeping sibling lists of a keyed document
func (c *Collection[T, PT]) encode(current []byte, found bool, items []T) ([]byte, error) {
	list, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	if c.opts.Field == "" {
		return list, nil
	}

	doc := map[string]json.RawMessage{}
	if found {
		if err := json.Unmarshal(current, &doc); err != nil {
			return nil, types.Unavailable("decode "+c.opts.Document, err)
		}
	}
	doc[c.opts.Field] = list
	return json.Marshal(doc)
}

func (c *Collection[T, PT]) degraded(op string, err error) error {
	metrics.DegradedReads.WithLabelValues(c.Name()).Inc()
	c.log.Error("collection unavailable", zap.String("op", op), zap.Error(err))
	if errors.Is(err, types.ErrUnavailable) {
		return err
	}
	return types.Unavailable(op+" "+c.Name(), err)
}

// NewID returns a time-ordered unique identifier
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func invalidField(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return types.NewValidationError(typeErr.Field, fmt.Sprintf("%s has an invalid value", typeErr.Field))
	}
	return types.NewValidationError("", "invalid field value")
}
