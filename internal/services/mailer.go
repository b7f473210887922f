// mailer.go
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

package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/models"
)

const smtpTimeout = 10 * time.Second

// Mailer delivers contact form submissions to the bakery
type Mailer interface {
	SendContact(ctx context.Context, sub models.ContactSubmission) error
}

// SMTPMailer sends mail through an SMTP relay, upgrading to TLS when offered
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// NewSMTPMailer creates a mailer from configuration, or nil when mail is disabled
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if !cfg.MailEnabled() {
		return nil
	}
	from := cfg.ContactFrom
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     from,
		to:       cfg.ContactTo,
	}
}

// Address is the relay's host:port
func (m *SMTPMailer) Address() string {
	return net.JoinHostPort(m.host, strconv.Itoa(m.port))
}

// SendContact emails one submission to the configured recipient
func (m *SMTPMailer) SendContact(ctx context.Context, sub models.ContactSubmission) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(smtpTimeout)
	}

	dialer := &net.Dialer{Timeout: smtpTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", m.Address())
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(m.to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(contactMessage(m.from, m.to, sub)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}

	return client.Quit()
}

// contactMessage renders the RFC 5322 message for a submission
func contactMessage(from, to string, sub models.ContactSubmission) []byte {
	var b bytes.Buffer

	header := func(name, value string) {
		fmt.Fprintf(&b, "%s: %s\r\n", name, headerValue(value))
	}
	header("From", from)
	header("To", to)
	header("Reply-To", sub.Email)
	header("Subject", "New contact message from "+sub.Name)
	header("Date", sub.Timestamp.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Name: %s\r\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", sub.Email)
	if sub.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\r\n", sub.Phone)
	}
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(sub.Message, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")

	return b.Bytes()
}

// headerValue keeps submitted text from starting new header lines
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
