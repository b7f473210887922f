// redis.go
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

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/bakery-api/internal/types"
	"github.com/redis/go-redis/v9"
)

const redisMaxRetries = 16

// RedisStore keeps documents as string values and blobs as hashes in a hosted key-value service.
// Update uses WATCH/MULTI so a concurrent writer forces a retry instead of a lost update.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects with a redis:// or rediss:// URL; token, when set, is the password.
func NewRedisStore(ctx context.Context, rawURL, token, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid KV_URL: %w", err)
	}
	if token != "" {
		opts.Password = token
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach key-value service: %w", err)
	}

	return NewRedisStoreFromClient(client, prefix), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Name() string { return "kv" }

func (s *RedisStore) documentKey(key string) string { return s.prefix + "doc:" + key }
func (s *RedisStore) blobKey(key string) string     { return s.prefix + "blob:" + key }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.documentKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrNotFound
	}
	return data, err
}

func (s *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	k := s.documentKey(key)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			found = false
			current = nil
		} else if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		switch {
		case err == nil, errors.Is(err, ErrNoChange):
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return err
		}
	}

	return types.ErrConflict
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) PutBlob(ctx context.Context, key, contentType string, data []byte) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	return s.client.HSet(ctx, s.blobKey(key), "content_type", contentType, "data", data).Err()
}

func (s *RedisStore) GetBlob(ctx context.Context, key string) (*Blob, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}

	fields, err := s.client.HGetAll(ctx, s.blobKey(key)).Result()
	if err != nil {
		return nil, err
	}
	data, ok := fields["data"]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &Blob{ContentType: fields["content_type"], Data: []byte(data)}, nil
}

func (s *RedisStore) DeleteBlob(ctx context.Context, key string) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	return s.client.Del(ctx, s.blobKey(key)).Err()
}
