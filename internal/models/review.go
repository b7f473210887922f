// review.go
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

import (
	"time"

	"github.com/localnerve/bakery-api/internal/types"
)

// Review is a customer testimonial. Verified is never set by the service.
type Review struct {
	ID        string        `json:"id"`
	Name      string        `json:"name" validate:"required,max=100"`
	Email     string        `json:"email,omitempty" validate:"omitempty,email"`
	Rating    types.FlexInt `json:"rating" validate:"min=1,max=5"`
	Comment   string        `json:"comment" validate:"required,max=2000"`
	CreatedAt time.Time     `json:"createdAt"`
	Verified  bool          `json:"verified"`
}

func (r *Review) GetID() string   { return r.ID }
func (r *Review) SetID(id string) { r.ID = id }
