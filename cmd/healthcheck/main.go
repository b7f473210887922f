// main.go
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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/logging"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/storage"
)

func main() {
	envFile := flag.String("f", "", "path to a .env file")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment file: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// errors only, stdout carries the JSON result
	log := logging.New("error")
	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}

	// Perform health check
	result := services.HealthCheck(ctx, cfg, backend, log)
	_ = backend.Close()

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal health check result: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if !result.Healthy() {
		os.Exit(1)
	}
}
