// contact.go
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
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/localnerve/bakery-api/internal/metrics"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// ErrDelivery is returned when a contact message could not be emailed
var ErrDelivery = errors.New("failed to deliver message")

// ContactService stores contact submissions and emails them to the bakery
type ContactService struct {
	items   *Collection[models.ContactSubmission, *models.ContactSubmission]
	mailer  Mailer
	persist bool
	log     *zap.Logger
	now     func() time.Time
}

// NewContactService creates the contact service. A nil mailer disables email;
// persist=false keeps submissions transient.
func NewContactService(store storage.Store, log *zap.Logger, mailer Mailer, persist bool) *ContactService {
	return &ContactService{
		items: NewCollection[models.ContactSubmission](store, log, CollectionOptions[models.ContactSubmission]{
			Document:  "contact",
			Protected: []string{"timestamp"},
			Clean:     cleanContact,
		}),
		mailer:  mailer,
		persist: persist,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns the stored submissions in arrival order
func (s *ContactService) List(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.items.List(ctx)
}

// Submit validates a submission, stores it when persistence is on, then emails it.
// A stored submission stays stored when delivery fails.
func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	sub.ID = ""
	cleanContact(&sub)
	sub.Status = models.ContactStatusNew
	sub.Timestamp = s.now()

	if err := Validate(&sub); err != nil {
		return sub, err
	}
	sub.ID = NewID()

	if s.persist {
		created, err := s.items.Create(ctx, sub)
		if err != nil {
			return sub, err
		}
		sub = created
	}

	if s.mailer == nil {
		if !s.persist {
			s.log.Warn("contact submission dropped, neither mail nor persistence is enabled", zap.String("id", sub.ID))
		}
		return sub, nil
	}

	if err := s.mailer.SendContact(ctx, sub); err != nil {
		metrics.Emails.WithLabelValues("error").Inc()
		s.log.Error("failed to send contact email", zap.String("id", sub.ID), zap.Error(err))
		return sub, errors.Join(ErrDelivery, err)
	}
	metrics.Emails.WithLabelValues("sent").Inc()

	return sub, nil
}

// Update changes the status or details of a stored submission
func (s *ContactService) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (models.ContactSubmission, error) {
	return s.items.Update(ctx, id, patch)
}

func cleanContact(sub *models.ContactSubmission) {
	sub.Name = plainText(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = plainText(sub.Phone)
	sub.Message = plainText(sub.Message)
}

// Delete removes a stored submission
func (s *ContactService) Delete(ctx context.Context, id string) (int, error) {
	return s.items.Delete(ctx, id)
}
