package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json_format: true
vul:
  binary_path: /usr/local/bin/vul
  minimum_reported_severity: high
  secret_scanning: true
  jobs: 2
  server:
    enable: true
    url: http://localhost:4954
`)
	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.True(t, GetBoolValue(cfg, "Logger.DisableTime", true))
	assert.Equal(t, "/usr/local/bin/vul", GetBinaryPath(cfg))
	assert.True(t, cfg.Vul.SecretScanning)
	assert.Equal(t, 2, GetJobs(cfg))
	assert.True(t, cfg.Vul.Server.Enable)
}

func TestLoadConfigMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yml")

	cfg, err := LoadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	_, err = LoadConfig(missing, true)
	assert.Error(t, err)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	for _, explicit := range []bool{false, true} {
		cfg, err := LoadConfig(path, explicit)
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	results := filepath.Join(t.TempDir(), "results")
	t.Setenv("VULX_RESULTS_FOLDER", "")

	tests := []struct {
		name    string
		vul     Vul
		wantErr string
	}{
		{name: "defaults", vul: Vul{ResultsFolder: results}},
		{name: "bad severity", vul: Vul{ResultsFolder: results, MinimumReportedSeverity: "urgent"}, wantErr: "minimum_reported_severity"},
		{name: "too many jobs", vul: Vul{ResultsFolder: results, Jobs: 64}, wantErr: "jobs must be between"},
		{name: "server without url", vul: Vul{ResultsFolder: results, Server: Server{Enable: true}}, wantErr: "server.url"},
		{name: "relative server url", vul: Vul{ResultsFolder: results, Server: Server{Enable: true, URL: "localhost"}}, wantErr: "must be absolute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Vul: tt.vul}
			err := ValidateConfig(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "UNKNOWN", cfg.Vul.MinimumReportedSeverity)
			assert.Equal(t, 1, cfg.Vul.Jobs)
			assert.DirExists(t, results)
		})
	}
}

func TestValidateConfigResultsFolderFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "from-env")
	t.Setenv("VULX_RESULTS_FOLDER", dir)

	cfg := &Config{}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, dir, cfg.Vul.ResultsFolder)
	assert.DirExists(t, dir)
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "vul", SetThen("", "vul"))
	assert.Equal(t, "trivy", SetThen("trivy", "vul"))
	assert.Equal(t, 3, SetThen(3, 1))
	assert.Equal(t, "vul", GetBinaryPath(nil))
}
