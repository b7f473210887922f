package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func useFileStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("DATA_DIR", dir)
	return dir
}

func TestSeedAndExport(t *testing.T) {
	dataDir := useFileStore(t)

	out := execute(t, "seed")
	assert.Contains(t, out, "seeded file storage")
	assert.FileExists(t, filepath.Join(dataDir, "products.json"))

	exportTo := t.TempDir()
	execute(t, "export", "--out", exportTo)
	exportDir = ""

	want, err := os.ReadFile(filepath.Join(dataDir, "reviews.json"))
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(exportTo, "reviews.json"))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestMigrateToAnotherDataDir(t *testing.T) {
	useFileStore(t)
	execute(t, "seed")

	targetDir := t.TempDir()
	envPath := filepath.Join(t.TempDir(), "target.env")
	require.NoError(t, os.WriteFile(envPath,
		[]byte("STORAGE_BACKEND=file\nDATA_DIR="+targetDir+"\n"), 0o600))

	out := execute(t, "migrate", "--to-env", envPath)
	assert.Contains(t, out, "file -> file: 6 documents")
	assert.FileExists(t, filepath.Join(targetDir, "gallery.json"))
}
