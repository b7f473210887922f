package services

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Storage      string            `json:"storage"`
	Mail         string            `json:"mail"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the storage backend and the mail relay concurrently
func HealthCheck(ctx context.Context, cfg *config.Config, store storage.Store, log *zap.Logger) HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var storageErr, mailErr error
	var g errgroup.Group

	g.Go(func() error {
		storageErr = store.Ping(ctx)
		return nil
	})
	if cfg.MailEnabled() {
		g.Go(func() error {
			mailErr = utils.PingSMTP(ctx, net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)))
			return nil
		})
	}
	_ = g.Wait()

	result := HealthCheckResult{
		Status:  "healthy",
		Storage: "ok",
		Mail:    "disabled",
		Details: map[string]string{"backend": store.Name()},
	}
	var problems []string

	if storageErr != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.Details["storage_error"] = storageErr.Error()
		problems = append(problems, fmt.Sprintf("Storage ping failed: %v", storageErr))
		log.Warn("health check failed - storage ping", zap.Error(storageErr))
	}

	if cfg.MailEnabled() {
		result.Mail = "ok"
		result.Details["smtp_host"] = cfg.SMTPHost
		if mailErr != nil {
			result.Status = "unhealthy"
			result.Mail = "unreachable"
			result.Details["smtp_error"] = mailErr.Error()
			problems = append(problems, fmt.Sprintf("SMTP ping failed: %v", mailErr))
			log.Warn("health check failed - smtp ping", zap.Error(mailErr))
		}
	}

	result.ErrorMessage = strings.Join(problems, "; ")
	if result.Healthy() {
		log.Debug("health check passed")
	}

	return result
}
