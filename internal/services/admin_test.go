package services

import (
	"context"
	"testing"

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedWritesEveryCollection(t *testing.T) {
	backend := newTestBackend(t)
	svc := New(backend, testLogger(), Options{ContactPersist: true})

	require.NoError(t, svc.Seed(context.Background()))

	docs, err := Export(context.Background(), backend)
	require.NoError(t, err)
	for _, name := range Documents {
		assert.Contains(t, docs, name)
	}
	assert.JSONEq(t, `{"pageviews":[],"events":[]}`, string(docs["analytics"]))
}

func TestExportSkipsMissingAndRejectsCorrupt(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	docs, err := Export(ctx, backend)
	require.NoError(t, err)
	assert.Empty(t, docs)

	corrupt(t, backend, "reviews", "{oops")
	_, err = Export(ctx, backend)
	assert.ErrorIs(t, err, types.ErrUnavailable)
}

func TestMigrateCopiesDocumentsAndImages(t *testing.T) {
	ctx := context.Background()
	src := newTestBackend(t)
	dst := newTestBackend(t)

	from := New(src, testLogger(), Options{ContactPersist: true})
	require.NoError(t, from.Seed(ctx))
	uploaded, err := from.Gallery.Upload(ctx, Upload{Data: pngPixel, Alt: "pixel"})
	require.NoError(t, err)
	_, err = from.Reviews.Create(ctx, models.Review{Name: "Ro", Rating: 4, Comment: "Crusty"})
	require.NoError(t, err)

	report, err := Migrate(ctx, src, dst, testLogger())
	require.NoError(t, err)
	assert.Equal(t, len(Documents), report.Documents)
	assert.Equal(t, 1, report.Blobs)

	to := New(dst, testLogger(), Options{})
	reviews, err := to.Reviews.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Crusty", reviews[0].Comment)

	blob, err := to.Gallery.Image(ctx, uploaded.ID)
	require.NoError(t, err)
	assert.Equal(t, pngPixel, blob.Data)
}
