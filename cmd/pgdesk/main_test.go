package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `{
  "payments": [
    {"id": "p1", "tenantName": "John Doe", "roomNumber": "101", "amount": 15000,
     "type": "rent", "status": "pending", "dueDate": "2020-01-05", "paidDate": null},
    {"id": "p2", "tenantName": "Jane Smith", "roomNumber": "102", "amount": 12000,
     "type": "rent", "status": "paid", "dueDate": "2020-01-05", "paidDate": "2020-01-03"}
  ]
}`

func setupEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o644))

	t.Setenv("SEED_FILE", "")
	t.Setenv("EXPORT_BACKEND", "memory")
	t.Setenv("AMQP_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("PORT", "8081")
	t.Setenv("TRAILING_MONTHS", "6")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestSweepCommand(t *testing.T) {
	seed := setupEnv(t)

	out, err := run(t, "sweep", "--seed", seed)
	require.NoError(t, err)
	assert.Equal(t, "1 payment(s) marked overdue\n", out)
}

func TestReportCommand_JSON(t *testing.T) {
	seed := setupEnv(t)

	out, err := run(t, "report", "--seed", seed, "--months", "3", "--format", "json")
	require.NoError(t, err)

	var view struct {
		Months int `json:"months"`
		Series []struct {
			Month string `json:"month"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 3, view.Months)
	assert.Len(t, view.Series, 3)
}

func TestReportCommand_TextToFile(t *testing.T) {
	seed := setupEnv(t)
	path := filepath.Join(t.TempDir(), "report.txt")

	out, err := run(t, "report", "--seed", seed, "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Financial report as of")
	assert.Contains(t, string(data), "Total")
	assert.Contains(t, string(data), "Profit margin:")
}

func TestReportCommand_UnknownFormat(t *testing.T) {
	seed := setupEnv(t)

	_, err := run(t, "report", "--seed", seed, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExportCommand_Memory(t *testing.T) {
	seed := setupEnv(t)

	out, err := run(t, "export", "--seed", seed)
	require.NoError(t, err)
	assert.Equal(t, "mem:report:1\n", out)
}

func TestInvalidConfigFails(t *testing.T) {
	setupEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := run(t, "sweep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestMissingSeedFails(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "sweep", "--seed", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
