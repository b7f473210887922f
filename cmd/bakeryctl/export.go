// export.go
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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/localnerve/bakery-api/internal/services"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every stored document as JSON",
	Long: `Writes each stored document to <dir>/<document>.json, the same layout the
file backend uses, so an export can serve as a DATA_DIR. Without --out the
documents are printed as one JSON object.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "directory to write documents into")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, backend, log, err := openBackend(ctx, os.Getenv)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer func() { _ = log.Sync() }()

	docs, err := services.Export(ctx, backend)
	if err != nil {
		return err
	}

	if exportDir == "" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return err
	}
	for name, raw := range docs {
		path := filepath.Join(exportDir, name+".json")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}
