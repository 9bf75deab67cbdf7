package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 7*24*time.Hour, cfg.Share.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
server:
  port: 8080
  public_url: https://viewer.example.com
openai:
  model: gpt-4o
database:
  url: postgres://localhost/viewer
share:
  secret: from-file
  ttl: 1h
log:
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	t.Setenv("PORT", "9000")
	t.Setenv("SHARE_SECRET", "from-env")
	t.Setenv("OPENAI_API_KEY", " sk-env ")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://viewer.example.com", cfg.Server.PublicURL)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "postgres://localhost/viewer", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.Share.Secret)
	assert.Equal(t, time.Hour, cfg.Share.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands:\n  service_url: http://commands:3001\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://commands:3001", cfg.Commands.ServiceURL)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("server: [1, 2"), 0o600))

	tests := []struct {
		name    string
		path    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.yaml"), wantErr: "failed to read config file"},
		{name: "bad yaml", path: badYAML, wantErr: "failed to parse config file"},
		{name: "bad port", env: map[string]string{"PORT": "http"}, wantErr: "invalid PORT"},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantErr: "server.port out of range"},
		{name: "bad ttl", env: map[string]string{"SHARE_TTL": "soon"}, wantErr: "invalid SHARE_TTL"},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}, wantErr: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
