package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenticnodes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFileEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := NewParser().LoadFromFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, 5*time.Minute, cfg.JobTimeout.Std())
	assert.Equal(t, domain.DefaultBuyerLocation, cfg.DefaultBuyerLocation)
	assert.False(t, cfg.SimulateDisruptions)
}

func TestLoadFromFileOverrides(t *testing.T) {
	path := writeConfig(t, `
server_url: https://sim.example.com
job_timeout: 90s
default_buyer_location: Detroit
simulate_disruptions: true
log_file: /tmp/agenticnodes.log
`)
	cfg, err := NewParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://sim.example.com", cfg.ServerURL)
	assert.Equal(t, 90*time.Second, cfg.JobTimeout.Std())
	assert.Equal(t, "Detroit", cfg.DefaultBuyerLocation)
	assert.True(t, cfg.SimulateDisruptions)
	assert.Equal(t, "/tmp/agenticnodes.log", cfg.LogFile)
}

func TestLoadFromFilePartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "server_url: http://10.0.0.5:8000\n")
	cfg, err := NewParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.ServerURL)
	assert.Equal(t, DefaultJobTimeout, cfg.JobTimeout.Std())
	assert.Equal(t, domain.DefaultBuyerLocation, cfg.DefaultBuyerLocation)
}

func TestLoadFromFileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"bad scheme", "server_url: ftp://sim.example.com\n"},
		{"bad duration", "job_timeout:300000\n"},
		{"not yaml", "{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().LoadFromFile(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFileMissingFile(t *testing.T) {
	_, err := NewParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
