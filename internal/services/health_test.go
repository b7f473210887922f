package services

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHealthy(t *testing.T) {
	result := HealthCheck(context.Background(), &config.Config{}, newTestBackend(t), testLogger())
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Storage)
	assert.Equal(t, "disabled", result.Mail)
	assert.Equal(t, "file", result.Details["backend"])
}

func TestHealthCheckReportsFailures(t *testing.T) {
	// a listener that is closed straight away leaves a port nobody answers on
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := &config.Config{SMTPHost: "127.0.0.1", SMTPPort: port, ContactTo: "owner@example.com"}
	result := HealthCheck(context.Background(), cfg, brokenStore{}, testLogger())

	assert.False(t, result.Healthy())
	assert.Equal(t, "unreachable", result.Storage)
	assert.Equal(t, "unreachable", result.Mail)
	assert.Contains(t, result.ErrorMessage, "Storage ping failed")
	assert.Contains(t, result.ErrorMessage, "SMTP ping failed")
	assert.Contains(t, result.Details["smtp_error"], strconv.Itoa(port))
}

func TestHealthCheckIPv6MailHost(t *testing.T) {
	ln, err := net.Listen("tcp", "[::1]:0")
	if err != nil {
		t.Skip("IPv6 loopback is not available")
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	cfg := &config.Config{SMTPHost: "::1", SMTPPort: port, ContactTo: "owner@example.com"}
	result := HealthCheck(context.Background(), cfg, newTestBackend(t), testLogger())

	assert.True(t, result.Healthy(), result.ErrorMessage)
	assert.Equal(t, "ok", result.Mail)
}
