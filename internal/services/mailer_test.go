package services

import (
	"strings"
	"testing"
	"time"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestContactMessageHeaders(t *testing.T) {
	sub := models.ContactSubmission{
		Name:      "Eve\r\nBcc: victim@example.com",
		Email:     "eve@example.com",
		Phone:     "555-0100",
		Message:   "line one\nline two",
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	msg := string(contactMessage("shop@example.com", "owner@example.com", sub))
	head, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)

	assert.Contains(t, head, "From: shop@example.com\r\n")
	assert.Contains(t, head, "To: owner@example.com\r\n")
	assert.Contains(t, head, "Reply-To: eve@example.com\r\n")
	assert.NotContains(t, head, "\r\nBcc:", "submitted text cannot add headers")
	assert.Contains(t, body, "Phone: 555-0100\r\n")
	assert.Contains(t, msg, "line one\r\nline two\r\n")
}

func TestNewSMTPMailer(t *testing.T) {
	assert.Nil(t, NewSMTPMailer(&config.Config{}))

	m := NewSMTPMailer(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "robot@example.com",
		ContactTo:    "owner@example.com",
	})
	if assert.NotNil(t, m) {
		assert.Equal(t, "smtp.example.com:587", m.Address())
		assert.Equal(t, "robot@example.com", m.from)
	}
}
