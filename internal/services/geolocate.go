// geolocate.go
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
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UnknownLocation is recorded when an address cannot be located
const UnknownLocation = "Unknown"

// Geolocator resolves a client IP to a human readable place
type Geolocator interface {
	Locate(ctx context.Context, ip string) (string, error)
}

// IPAPILocator looks addresses up in an ipapi.co compatible JSON service.
// The URL template takes the address as its only verb.
type IPAPILocator struct {
	URLTemplate string
	Timeout     time.Duration
}

type ipapiResponse struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country_name"`
	Error   bool   `json:"error"`
	Reason  string `json:"reason"`
}

// Locate returns "City, Region, Country" for a public address.
// Private, loopback and malformed addresses are UnknownLocation without a lookup.
func (l *IPAPILocator) Locate(ctx context.Context, ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !publicAddr(addr) {
		return UnknownLocation, nil
	}
	if err := ctx.Err(); err != nil {
		return UnknownLocation, err
	}

	agent := fiber.Get(fmt.Sprintf(l.URLTemplate, addr.Unmap().String()))
	agent.Timeout(l.Timeout)

	var out ipapiResponse
	code, _, errs := agent.Struct(&out)
	if len(errs) > 0 {
		return UnknownLocation, fmt.Errorf("geolocate %s: %w", addr, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return UnknownLocation, fmt.Errorf("geolocate %s: status %d", addr, code)
	}
	if out.Error {
		return UnknownLocation, fmt.Errorf("geolocate %s: %s", addr, out.Reason)
	}

	return formatLocation(out.City, out.Region, out.Country), nil
}

func publicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsValid() &&
		addr.IsGlobalUnicast() &&
		!addr.IsPrivate() &&
		!addr.IsLoopback() &&
		!addr.IsLinkLocalUnicast()
}

func formatLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return UnknownLocation
	}
	return strings.Join(kept, ", ")
}
