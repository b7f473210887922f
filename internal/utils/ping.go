package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingService checks if a service is reachable at the given URL
func PingService(ctx context.Context, serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		case "smtp":
			port = "25"
		case "redis", "rediss":
			port = "6379"
		default:
			port = "80"
		}
	}

	return PingAddress(ctx, net.JoinHostPort(host, port), timeout)
}

// PingAddress checks that a TCP connection to host:port can be opened
func PingAddress(ctx context.Context, address string, timeout time.Duration) error {
	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingSMTP checks if the mail relay is reachable
func PingSMTP(ctx context.Context, address string) error {
	return PingAddress(ctx, address, 1500*time.Millisecond)
}
