package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/horizon/internal/horizon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
	assert.Equal(t, DefaultAddr, cfg.ListenAddr())
}

func TestLoad_Full(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "horizon.yml", `
records: data/records.json
maxAncestorLevel: 2
maxDescendantLevel: 4
strictParents: true
buildWorkers: 8
addr: ":9000"
logLevel: debug
`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data/records.json"), cfg.Records)
	assert.Equal(t, ":9000", cfg.ListenAddr())
	assert.Equal(t, horizon.Options{
		StrictParents:      true,
		Workers:            8,
		MaxAncestorLevel:   2,
		MaxDescendantLevel: 4,
	}, cfg.IndexOptions())
}

func TestLoad_YAMLExtension(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "horizon.yaml", "records: /abs/records.json\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/abs/records.json", cfg.Records)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "records: [\n"},
		{name: "negative ancestor level", body: "maxAncestorLevel: -1\n"},
		{name: "negative descendant level", body: "maxDescendantLevel: -2\n"},
		{name: "negative workers", body: "buildWorkers: -1\n"},
		{name: "unknown log level", body: "logLevel: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "horizon.yml", tt.body)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "horizon.yml")
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
