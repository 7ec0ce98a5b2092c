package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/asafar/dockb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDataFile seeds a data file the way a refresh would have left it.
func writeDataFile(t *testing.T, dir string) string {
	t.Helper()

	records := map[string]dockb.MethodRecord{
		"/access/general/open-door": {
			Key:         "/access/general/open-door",
			Name:        "Open Door",
			HTTPMethod:  "GET",
			Endpoint:    "/access/general/open-door",
			Description: "Opens the entrance door.",
			Parameters:  []dockb.Parameter{},
		},
		"/device/status": {
			Key:         "/device/status",
			Name:        "Device Status",
			HTTPMethod:  "GET",
			Endpoint:    "/device/status",
			Description: "Returns device status.",
			Parameters:  []dockb.Parameter{},
		},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// run executes the CLI against a seeded temp directory.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	dataFile := writeDataFile(t, dir)
	base := []string{
		"--data-file", dataFile,
		"--report-file", filepath.Join(dir, "report.md"),
		"--db", filepath.Join(dir, "runs.db"),
	}

	var stdout, stderr bytes.Buffer
	m := NewMain()
	err := m.Run(context.Background(), append(args, base...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("global flags before the subcommand still wire the pipeline", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/documentation" {
				fmt.Fprint(w, "<html><body><p>Returns the current device status fields.</p><p>GET /device/status</p></body></html>")
				return
			}
			http.NotFound(w, r)
		}))
		defer srv.Close()

		stdout, _, err := run(t, t.TempDir(), "--max-pages=1", "--base-url", srv.URL, "refresh")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Refreshed: 1 methods")
	})
}

func TestMain_Search(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, t.TempDir(), "search", "door")
	require.NoError(t, err)
	assert.Contains(t, stdout, "/access/general/open-door")
	assert.NotContains(t, stdout, "/device/status")
	assert.Contains(t, stdout, "Found 1 API methods")
	assert.NotContains(t, stdout, "more results")
}

func TestMain_Details(t *testing.T) {
	t.Parallel()

	t.Run("exact key", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, t.TempDir(), "details", "/device/status")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Device Status")
	})

	t.Run("single fuzzy match resolves", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, t.TempDir(), "details", "open-door")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Open Door")
	})

	t.Run("unknown key fails", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, t.TempDir(), "details", "no-such-method")
		require.Error(t, err)
		assert.Equal(t, dockb.ENOTFOUND, dockb.ErrorCode(err))
	})
}

func TestMain_List(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "/access/general/open-door")
	assert.Contains(t, stdout, "/device/status")
}

func TestMain_Status(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, t.TempDir(), "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2")
}

func TestMain_Report(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stdout, _, err := run(t, dir, "report")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report written")

	data, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "/device/status")
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()
	err := m.Run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
