package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPAPILocator(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/8.8.8.8/json/":
			_, _ = w.Write([]byte(`{"city":"Mountain View","region":"California","country_name":"United States"}`))
		case "/1.1.1.1/json/":
			_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	locator := &IPAPILocator{URLTemplate: srv.URL + "/%s/json/", Timeout: 2 * time.Second}
	ctx := context.Background()

	location, err := locator.Locate(ctx, "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "Mountain View, California, United States", location)

	location, err = locator.Locate(ctx, "1.1.1.1")
	assert.Error(t, err)
	assert.Equal(t, UnknownLocation, location)

	location, err = locator.Locate(ctx, "9.9.9.9")
	assert.Error(t, err)
	assert.Equal(t, UnknownLocation, location)

	before := calls.Load()
	for _, ip := range []string{"127.0.0.1", "10.0.0.8", "192.168.1.4", "::1", "fe80::1", "not-an-ip", ""} {
		location, err := locator.Locate(ctx, ip)
		assert.NoError(t, err, ip)
		assert.Equal(t, UnknownLocation, location, ip)
	}
	assert.Equal(t, before, calls.Load(), "private addresses are never looked up")
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Oslo, Norway", formatLocation("Oslo", " ", "Norway"))
	assert.Equal(t, UnknownLocation, formatLocation("", ""))
}
