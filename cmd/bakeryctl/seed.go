// seed.go
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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/localnerve/bakery-api/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default collections that are not stored yet",
	Long: `Reads every collection once. Collections that have never been written are
seeded with their defaults; existing data is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, backend, log, err := openBackend(ctx, os.Getenv)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer func() { _ = log.Sync() }()

	svc := services.New(backend, log, services.OptionsFromConfig(cfg))
	if err := svc.Seed(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s storage\n", backend.Name())
	return nil
}
