package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles creates files under dir from slash-separated relative paths,
// creating parent directories as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// WriteProject creates a small project tree and returns its item paths in
// listing order.
func WriteProject(t *testing.T, dir string) []string {
	t.Helper()
	files := map[string]string{
		"go.mod":             "module example\n",
		"cmd/app/main.go":    "package main\n\nfunc main() {}\n",
		"internal/db/db.go":  "package db\n",
		"docs/guide.md":      "# Guide\n",
		".env":               "TOKEN=secret\n",
		"config/prod.env":    "MODE=prod\n",
		"tests/app_test.go":  "package tests\n",
		"static/favicon.ico": "\x00\x00\x01\x00",
	}
	WriteFiles(t, dir, files)
	return []string{
		"go.mod",
		"cmd/app/main.go",
		"internal/db/db.go",
		"docs/guide.md",
		".env",
		"config/prod.env",
		"tests/app_test.go",
		"static/favicon.ico",
	}
}
