// product.go
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
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/shopspring/decimal"
)

func init() {
	// The front end reads prices as numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a bakery item on the products page
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description,omitempty" validate:"max=4000"`
	Images      []string         `json:"images,omitempty" validate:"max=20"`
	Ingredients []string         `json:"ingredients,omitempty" validate:"max=100"`
	Weight      string           `json:"weight,omitempty" validate:"max=64"`
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"taxRate,omitempty"`
}

func (p *Product) GetID() string   { return p.ID }
func (p *Product) SetID(id string) { p.ID = id }

// Check validates the decimal fields.
func (p *Product) Check() error {
	if p.Price == nil {
		return types.NewValidationError("price", "price is required")
	}
	if p.Price.IsNegative() {
		return types.NewValidationError("price", "price cannot be negative")
	}
	if p.TaxRate != nil && (p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1))) {
		return types.NewValidationError("taxRate", "taxRate must be between 0 and 1")
	}
	return nil
}

// GrossPrice is the price including tax, rounded to cents.
func (p *Product) GrossPrice() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	if p.TaxRate == nil {
		return p.Price.Round(2)
	}
	return p.Price.Mul(decimal.NewFromInt(1).Add(*p.TaxRate)).Round(2)
}
