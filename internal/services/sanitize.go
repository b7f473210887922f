// sanitize.go
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
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// plainText strips markup from free text and trims it. Cleaning clean text
// returns it unchanged, so records can be cleaned again on every update.
func plainText(s string) string {
	// the strict policy escapes what it keeps, the stored value is plain text;
	// unescaping can reveal encoded markup, so repeat until nothing changes
	for i := 0; i < 8; i++ {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// plainList cleans each entry and drops the empty ones.
func plainList(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = plainText(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
