// data.go
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

package helpers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/localnerve/bakery-api/internal/storage"
)

// PutDocument replaces a stored document with the JSON encoding of v
func PutDocument(t *testing.T, store storage.Store, name string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode %s: %v", name, err)
	}
	err = store.Update(context.Background(), name, func([]byte, bool) ([]byte, error) {
		return raw, nil
	})
	if err != nil {
		t.Fatalf("Failed to store %s: %v", name, err)
	}
}

// GetDocument decodes a stored document into target
func GetDocument(t *testing.T, store storage.Store, name string, target any) {
	t.Helper()
	raw, err := store.Get(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("Failed to decode %s: %v. Body: %s", name, err, string(raw))
	}
}

// EnvGetter adapts a settings map for config.LoadFrom
func EnvGetter(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}
