// suite.go
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

// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a backend against the storage contract.
func Run(t *testing.T, backend storage.Backend) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := backend.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("UpdateCreatesThenReplaces", func(t *testing.T) {
		ctx := context.Background()
		err := backend.Update(ctx, "roundtrip", func(current []byte, found bool) ([]byte, error) {
			assert.False(t, found)
			return []byte(`[{"id":"1"}]`), nil
		})
		require.NoError(t, err)

		err = backend.Update(ctx, "roundtrip", func(current []byte, found bool) ([]byte, error) {
			assert.True(t, found)
			assert.JSONEq(t, `[{"id":"1"}]`, string(current))
			return []byte(`[{"id":"1"},{"id":"2"}]`), nil
		})
		require.NoError(t, err)

		got, err := backend.Get(ctx, "roundtrip")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1"},{"id":"2"}]`, string(got))
	})

	t.Run("UpdateNoChange", func(t *testing.T) {
		ctx := context.Background()
		err := backend.Update(ctx, "untouched", func([]byte, bool) ([]byte, error) {
			return nil, storage.ErrNoChange
		})
		require.NoError(t, err)

		_, err = backend.Get(ctx, "untouched")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("UpdateErrorLeavesDocument", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, backend.Update(ctx, "kept", func([]byte, bool) ([]byte, error) {
			return []byte(`["a"]`), nil
		}))

		boom := errors.New("boom")
		err := backend.Update(ctx, "kept", func([]byte, bool) ([]byte, error) {
			return []byte(`["b"]`), boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := backend.Get(ctx, "kept")
		require.NoError(t, err)
		assert.JSONEq(t, `["a"]`, string(got))
	})

	t.Run("ConcurrentUpdatesAreNotLost", func(t *testing.T) {
		ctx := context.Background()
		const writers = 8

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				errs <- backend.Update(ctx, "counter", func(current []byte, found bool) ([]byte, error) {
					count := 0
					if found {
						if _, err := fmt.Sscanf(string(current), "%d", &count); err != nil {
							return nil, err
						}
					}
					return []byte(fmt.Sprintf("%d", count+1)), nil
				})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := backend.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d", writers), string(got))
	})

	t.Run("InvalidKey", func(t *testing.T) {
		_, err := backend.Get(context.Background(), "../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("Blobs", func(t *testing.T) {
		ctx := context.Background()
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

		_, err := backend.GetBlob(ctx, "img-1")
		assert.ErrorIs(t, err, types.ErrNotFound)

		require.NoError(t, backend.PutBlob(ctx, "img-1", "image/png", png))
		blob, err := backend.GetBlob(ctx, "img-1")
		require.NoError(t, err)
		assert.Equal(t, png, blob.Data)
		assert.Equal(t, "image/png", blob.ContentType)

		require.NoError(t, backend.DeleteBlob(ctx, "img-1"))
		require.NoError(t, backend.DeleteBlob(ctx, "img-1"))
		_, err = backend.GetBlob(ctx, "img-1")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, backend.Ping(context.Background()))
	})
}
