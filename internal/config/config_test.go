package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pccui/commerce-sdk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "renderedTemplates", cfg.RenderDir)
	assert.Equal(t, "dist", cfg.BuildDir)
	assert.Equal(t, "apis", cfg.InputDir)
	assert.Equal(t, "api-config.json", cfg.APIConfigFile)
	assert.Equal(t, "CC API Family", cfg.APIFamily)
	assert.Equal(t, "ts", cfg.Extension)
	assert.Equal(t, 0, cfg.Jobs)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdkgen.toml")
	content := `
render_dir = "out"
input_dir = "descriptors"
api_family = "Type"
jobs = 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SDKGEN_INPUT_DIR", "from-env")
	t.Setenv("SDKGEN_JOBS", "2")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.RenderDir)
	assert.Equal(t, "from-env", cfg.InputDir)
	assert.Equal(t, "Type", cfg.APIFamily)
	assert.Equal(t, 2, cfg.Jobs)
	// untouched keys keep their defaults
	assert.Equal(t, "dist", cfg.BuildDir)
	assert.Equal(t, "api-config.json", cfg.APIConfigFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty render dir", func(c *config.Config) { c.RenderDir = "" }},
		{"blank input dir", func(c *config.Config) { c.InputDir = "  " }},
		{"empty dimension", func(c *config.Config) { c.APIFamily = "" }},
		{"dotted extension", func(c *config.Config) { c.Extension = ".ts" }},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }},
		{"unknown log level", func(c *config.Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, filepath.Join("apis", "api-config.json"), cfg.GroupingPath())
	assert.Equal(t, filepath.Join("renderedTemplates", "operationList.yaml"), cfg.ManifestPath())
}
