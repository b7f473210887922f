package services

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// the geolocation client keeps an idle connection reaper per host
		goleak.IgnoreAnyFunction("github.com/valyala/fasthttp.(*HostClient).connsCleaner"),
	)
}

func newTestBackend(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

var errBackendDown = errors.New("backend down")

// brokenStore fails every operation
type brokenStore struct{}

func (brokenStore) Name() string { return "broken" }
func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errBackendDown
}
func (brokenStore) Update(context.Context, string, storage.UpdateFunc) error {
	return errBackendDown
}
func (brokenStore) Ping(context.Context) error { return errBackendDown }
func (brokenStore) Close() error               { return nil }
func (brokenStore) PutBlob(context.Context, string, string, []byte) error {
	return errBackendDown
}
func (brokenStore) GetBlob(context.Context, string) (*storage.Blob, error) {
	return nil, errBackendDown
}
func (brokenStore) DeleteBlob(context.Context, string) error { return errBackendDown }

// corrupt writes raw bytes as a document
func corrupt(t *testing.T, store storage.Store, document, raw string) {
	t.Helper()
	require.NoError(t, store.Update(context.Background(), document, func([]byte, bool) ([]byte, error) {
		return []byte(raw), nil
	}))
}

// failingWrites runs every update function against the real store but drops
// the write from the given update onwards, counting how many updates arrive
type failingWrites struct {
	storage.Backend
	failFrom int
	updates  int
}

func (s *failingWrites) Update(ctx context.Context, key string, fn storage.UpdateFunc) error {
	s.updates++
	if s.failFrom > 0 && s.updates >= s.failFrom {
		current, err := s.Backend.Get(ctx, key)
		found := err == nil
		if _, err := fn(current, found); err != nil {
			return err
		}
		return errBackendDown
	}
	return s.Backend.Update(ctx, key, fn)
}

// contextStore fails reads whose context is already done, like the network backends
type contextStore struct {
	storage.Backend
}

func (s contextStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Backend.Get(ctx, key)
}

func (s contextStore) Update(ctx context.Context, key string, fn storage.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Backend.Update(ctx, key, fn)
}
