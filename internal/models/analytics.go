// analytics.go
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

package models

import "time"

// Analytics lists inside the analytics document
const (
	AnalyticsPageviews = "pageviews"
	AnalyticsEvents    = "events"
)

// AnalyticsRecord is one tracked pageview or event
type AnalyticsRecord struct {
	ID        string         `json:"id"`
	Type      string         `json:"type" validate:"required,max=64"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (a *AnalyticsRecord) GetID() string   { return a.ID }
func (a *AnalyticsRecord) SetID(id string) { a.ID = id }

// ListName returns the analytics list a record of this type is appended to.
func (a *AnalyticsRecord) ListName() string {
	if a.Type == "pageview" {
		return AnalyticsPageviews
	}
	return AnalyticsEvents
}
