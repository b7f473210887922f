// products.go
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

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// ProductService manages the products collection
type ProductService struct {
	items *Collection[models.Product, *models.Product]
}

// NewProductService creates the products service
func NewProductService(store storage.Store, log *zap.Logger) *ProductService {
	return &ProductService{
		items: NewCollection[models.Product](store, log, CollectionOptions[models.Product]{
			Document: "products",
			Seed:     seedFrom[models.Product]("products"),
			Clean:    cleanProduct,
		}),
	}
}

// List returns every product in catalogue order
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.items.List(ctx)
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	return s.items.Get(ctx, id)
}

// Create adds a product to the end of the catalogue
func (s *ProductService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	return s.items.Create(ctx, p)
}

// Update merges the supplied fields into an existing product
func (s *ProductService) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (models.Product, error) {
	return s.items.Update(ctx, id, patch)
}

func cleanProduct(p *models.Product) {
	p.Name = plainText(p.Name)
	p.Description = plainText(p.Description)
	p.Weight = plainText(p.Weight)
	p.Ingredients = plainList(p.Ingredients)
}

// Delete removes a product, reporting how many records matched
func (s *ProductService) Delete(ctx context.Context, id string) (int, error) {
	return s.items.Delete(ctx, id)
}
