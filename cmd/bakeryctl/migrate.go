// migrate.go
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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/localnerve/bakery-api/internal/services"
)

var targetEnv string

var migrateCmd = &cobra.Command{
	Use:   "migrate --to-env <file>",
	Short: "Copy all data to the backend configured in another .env file",
	Long: `Copies every document and every uploaded gallery image from the configured
backend to the backend described by --to-env. Documents already present in the
target are replaced.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&targetEnv, "to-env", "", "path to the .env file of the target backend")
	_ = migrateCmd.MarkFlagRequired("to-env")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target, err := godotenv.Read(targetEnv)
	if err != nil {
		return fmt.Errorf("read %s: %w", targetEnv, err)
	}

	_, src, log, err := openBackend(ctx, os.Getenv)
	if err != nil {
		return err
	}
	defer src.Close()
	defer func() { _ = log.Sync() }()

	_, dst, _, err := openBackend(ctx, func(key string) string { return target[key] })
	if err != nil {
		return err
	}
	defer dst.Close()

	report, err := services.Migrate(ctx, src, dst, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d documents, %d images, %d skipped\n",
		src.Name(), dst.Name(), report.Documents, report.Blobs, report.Skipped)
	return nil
}
