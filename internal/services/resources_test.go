package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestReviewCreateIsNewestFirstAndUnverified(t *testing.T) {
	svc := NewReviewService(newTestBackend(t), testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Review{
		Name:     "<b>Jo</b>",
		Rating:   3,
		Comment:  "Great <script>alert(1)</script>rolls & buns",
		Verified: true,
	})
	require.NoError(t, err)
	assert.False(t, created.Verified)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Jo", created.Name)
	assert.Equal(t, "Great rolls & buns", created.Comment)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, items[0].ID)
}

func TestReviewRatingBounds(t *testing.T) {
	svc := NewReviewService(newTestBackend(t), testLogger())
	ctx := context.Background()

	for _, rating := range []types.FlexInt{0, 6} {
		_, err := svc.Create(ctx, models.Review{Name: "A", Rating: rating, Comment: "ok"})
		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "rating", verr.Field)
	}
}

func TestGalleryUploadStoresBlobAndRecord(t *testing.T) {
	backend := newTestBackend(t)
	svc := NewGalleryService(backend, testLogger(), 1<<20)
	ctx := context.Background()

	img, err := svc.Upload(ctx, Upload{Data: pngPixel, Alt: "A pixel"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ImageURL(img.ID), img.URL)
	assert.Equal(t, defaultUploadedBy, img.UploadedBy)
	assert.Equal(t, int64(len(pngPixel)), img.Size)

	blob, err := svc.Image(ctx, img.ID)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(pngPixel, blob.Data))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, img.ID, items[len(items)-1].ID)

	removed, err := svc.Delete(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = svc.Image(ctx, img.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGalleryUploadRejects(t *testing.T) {
	svc := NewGalleryService(newTestBackend(t), testLogger(), 32)
	ctx := context.Background()

	cases := map[string][]byte{
		"empty":    nil,
		"not image": []byte("just some text, not a picture"),
		"too large": bytes.Repeat([]byte{0}, 64),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(ctx, Upload{Data: data})
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "image", verr.Field)
		})
	}
}

func TestGalleryImageUnknownIsNotFound(t *testing.T) {
	svc := NewGalleryService(newTestBackend(t), testLogger(), 0)

	_, err := svc.Image(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = svc.Image(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []models.ContactSubmission
	err  error
}

func (m *recordingMailer) SendContact(_ context.Context, sub models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sub)
	return nil
}

func TestContactSubmitPersistsAndMails(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewContactService(newTestBackend(t), testLogger(), mailer, true)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, models.ContactSubmission{
		Name:    "Sam",
		Email:   " sam@example.com ",
		Message: "Do you bake <i>wedding</i> cakes?",
		Status:  models.ContactStatusArchived,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusNew, sub.Status)
	assert.Equal(t, "Do you bake wedding cakes?", sub.Message)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sub.ID, mailer.sent[0].ID)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, sub.ID, items[0].ID)
}

func TestContactSubmitTransient(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewContactService(newTestBackend(t), testLogger(), mailer, false)
	ctx := context.Background()

	_, err := svc.Submit(ctx, models.ContactSubmission{Name: "Sam", Email: "sam@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 1)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestContactSubmitValidatesBeforeAnything(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewContactService(newTestBackend(t), testLogger(), mailer, true)

	_, err := svc.Submit(context.Background(), models.ContactSubmission{Name: "Sam", Email: "nope", Message: "hi"})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Empty(t, mailer.sent)
}

func TestContactDeliveryFailureKeepsRecord(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("relay refused")}
	svc := NewContactService(newTestBackend(t), testLogger(), mailer, true)
	ctx := context.Background()

	_, err := svc.Submit(ctx, models.ContactSubmission{Name: "Sam", Email: "sam@example.com", Message: "hi"})
	assert.ErrorIs(t, err, ErrDelivery)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAnalyticsTrackSplitsLists(t *testing.T) {
	svc := NewAnalyticsService(newTestBackend(t), testLogger(), 0)
	ctx := context.Background()

	recorded, err := svc.Track(ctx, []map[string]any{
		{"type": "pageview", "page": "/menu", "timestamp": "1999-01-01"},
		{"type": "event", "event": "order_click"},
		{"type": "pageview", "page": "/menu"},
	})
	require.NoError(t, err)
	require.Len(t, recorded, 3)
	assert.NotContains(t, recorded[0].Data, "timestamp")
	assert.NotEqual(t, 1999, recorded[0].Timestamp.Year())

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, AnalyticsTotals{Pageviews: 2, Events: 1}, summary.Totals)
	assert.Equal(t, 2, summary.TopPages["/menu"])
	assert.Equal(t, 1, summary.EventTypes["order_click"])
}

func TestUpdatesStripMarkup(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	products := NewProductService(backend, testLogger())
	list, err := products.List(ctx)
	require.NoError(t, err)
	id := list[0].ID

	updated, err := products.Update(ctx, id, map[string]json.RawMessage{
		"name":        json.RawMessage(`"<script>x()</script>Sourdough"`),
		"description": json.RawMessage(`"<b>Slow</b> proved"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", updated.Name)
	assert.Equal(t, "Slow proved", updated.Description)

	stored, err := products.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", stored.Name)

	contact := NewContactService(backend, testLogger(), nil, true)
	sub, err := contact.Submit(ctx, models.ContactSubmission{
		Name: "Jo", Email: "jo@example.com", Message: "Do you bake rye?",
	})
	require.NoError(t, err)

	changed, err := contact.Update(ctx, sub.ID, map[string]json.RawMessage{
		"message": json.RawMessage(`"<img src=x onerror=alert(1)>Still hungry"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Still hungry", changed.Message)
	assert.Equal(t, "Jo", changed.Name)
}

func TestAnalyticsTrackWritesBatchOnce(t *testing.T) {
	store := &failingWrites{Backend: newTestBackend(t)}
	svc := NewAnalyticsService(store, testLogger(), 0)

	_, err := svc.Track(context.Background(), []map[string]any{
		{"type": "pageview", "page": "/"},
		{"type": "event", "event": "call_click"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.updates)
}

func TestAnalyticsTrackFailedWriteStoresNothing(t *testing.T) {
	backend := newTestBackend(t)
	svc := NewAnalyticsService(backend, testLogger(), 0)
	ctx := context.Background()

	_, err := svc.Track(ctx, []map[string]any{{"type": "pageview", "page": "/"}})
	require.NoError(t, err)

	failing := NewAnalyticsService(&failingWrites{Backend: backend, failFrom: 1}, testLogger(), 0)
	_, err = failing.Track(ctx, []map[string]any{
		{"type": "pageview", "page": "/menu"},
		{"type": "event", "event": "order_click"},
	})
	require.ErrorIs(t, err, types.ErrUnavailable)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, AnalyticsTotals{Pageviews: 1, Events: 0}, summary.Totals)
}

func TestAnalyticsTrackRequiresType(t *testing.T) {
	svc := NewAnalyticsService(newTestBackend(t), testLogger(), 0)

	_, err := svc.Track(context.Background(), []map[string]any{{"page": "/"}})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)

	_, err = svc.Track(context.Background(), nil)
	require.ErrorAs(t, err, &verr)
}

func TestAnalyticsMaxRecords(t *testing.T) {
	svc := NewAnalyticsService(newTestBackend(t), testLogger(), 2)
	ctx := context.Background()

	for _, page := range []string{"/a", "/b", "/c"} {
		_, err := svc.Track(ctx, []map[string]any{{"type": "pageview", "page": page}})
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Pageviews, 2)
	assert.Equal(t, "/b", summary.Pageviews[0].Data["page"])
	assert.Equal(t, "/c", summary.Pageviews[1].Data["page"])
}

type fixedLocator struct {
	location string
	err      error
}

func (l fixedLocator) Locate(context.Context, string) (string, error) {
	return l.location, l.err
}

func TestUserRecordUpsertsByEmail(t *testing.T) {
	svc := NewUserService(newTestBackend(t), testLogger(), fixedLocator{location: "Portland, Oregon, United States"})
	ctx := context.Background()

	first, created, err := svc.Record(ctx, Session{Email: "Pat@Example.com", Name: "Pat"}, "8.8.8.8")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "pat@example.com", first.Email)
	assert.Equal(t, "Portland, Oregon, United States", first.Location)

	second, created, err := svc.Record(ctx, Session{Email: "pat@example.com"}, "8.8.8.8")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Pat", second.Name)
	assert.Equal(t, first.FirstSeen, second.FirstSeen)
	assert.False(t, second.LastSeen.Before(first.LastSeen))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRecordGeolocationFailureIsUnknown(t *testing.T) {
	svc := NewUserService(newTestBackend(t), testLogger(), fixedLocator{err: errors.New("timeout")})

	user, _, err := svc.Record(context.Background(), Session{Email: "a@example.com"}, "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, UnknownLocation, user.Location)
}

func TestUserRecordRequiresEmail(t *testing.T) {
	svc := NewUserService(newTestBackend(t), testLogger(), nil)

	_, _, err := svc.Record(context.Background(), Session{Name: "x"}, "")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}
