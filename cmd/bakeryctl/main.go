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

// Command bakeryctl administers the stored site data: seeding defaults,
// exporting documents and migrating between storage backends.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/logging"
	"github.com/localnerve/bakery-api/internal/storage"
)

var (
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "bakeryctl",
	Short: "Administer bakery site data",
	Long: `bakeryctl works directly against the storage backend configured in the
environment (or the .env file given with -f), without a running server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "f", "", "path to a .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(seedCmd, exportCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openBackend loads configuration and opens its backend
func openBackend(ctx context.Context, getenv func(string) string) (*config.Config, storage.Backend, *zap.Logger, error) {
	cfg, err := config.LoadFrom(getenv)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("configuration: %w", err)
	}
	log := logging.New(logLevel)

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	return cfg, backend, log, nil
}
