package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/types"
	"go.uber.org/zap"
)

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// ValidationErrorResponse sends a 400 naming the invalid field
func ValidationErrorResponse(c *fiber.Ctx, verr *types.ValidationError, errorType string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponseStruct{
		Status:    fiber.StatusBadRequest,
		Message:   verr.Message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
		Field:     verr.Field,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "notFound")
}

// VersionErrorResponse sends a conflict when a write kept losing to concurrent writers
func VersionErrorResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResponseStruct{
		Status:       fiber.StatusConflict,
		Message:      "E_VERSION - The data changed while saving, retry the request.",
		Ok:           false,
		VersionError: true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		URL:          c.OriginalURL(),
		Type:         "version",
	})
}

// ServiceError maps a service failure onto the HTTP error envelope.
// Internal causes are logged, never sent to the client.
func ServiceError(c *fiber.Ctx, log *zap.Logger, err error, errorType string) error {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		return ValidationErrorResponse(c, verr, errorType)

	case errors.Is(err, types.ErrNotFound):
		return NotFoundResponse(c, "Resource not found")

	case errors.Is(err, types.ErrConflict):
		log.Warn("write conflict", zap.String("type", errorType), zap.Error(err))
		return VersionErrorResponse(c)

	case errors.Is(err, types.ErrUnavailable):
		log.Error("storage unavailable", zap.String("type", errorType), zap.String("url", c.OriginalURL()), zap.Error(err))
		return ErrorResponse(c, "Service temporarily unavailable", fiber.StatusServiceUnavailable, errorType)

	default:
		log.Error("request failed", zap.String("type", errorType), zap.String("url", c.OriginalURL()), zap.Error(err))
		return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
	}
}

// MutationSuccessResponse sends a success response for mutations (PUT/DELETE)
func MutationSuccessResponse(c *fiber.Ctx, message string, affectedRows int) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:      message,
		Ok:           true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		AffectedRows: affectedRows,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	URL          string `json:"url"`
	Type         string `json:"type,omitempty"`
	Field        string `json:"field,omitempty"`
	VersionError bool   `json:"versionError,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int    `json:"affectedRows"`
}
