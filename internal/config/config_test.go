package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Swissfort Mfg.")
	cfg.Display.HideZero = true
	cfg.Validation.Strict = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.Equal(t, cfg.MasterFile, got.MasterFile)
	assert.True(t, got.Display.HideZero)
	assert.True(t, got.Validation.Strict)
	assert.Equal(t, 5, got.Table.PageSize)
	assert.Equal(t, ":8080", got.Server.Addr)
	assert.Equal(t, cfg.Forms, got.Forms)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Mill")

	assert.Equal(t, "My Mill", cfg.Business.Name)
	assert.False(t, cfg.Display.HideZero)
	assert.False(t, cfg.Validation.Strict)
	require.Len(t, cfg.Forms, 3)
	assert.NoError(t, cfg.Validate())

	specs := cfg.FormSpecs()
	assert.Equal(t, model.FormFabricEntry, specs[0].Kind)
	assert.Equal(t, 'F', specs[0].Shortcut)
	assert.Equal(t, 'C', specs[1].Shortcut)
	assert.Equal(t, 'W', specs[2].Shortcut)
	assert.Equal(t, "Meter", specs[0].QuantityLabel)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Swissfort Mfg.")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Swissfort Mfg.")
	assert.Contains(t, contents, "hide_zero: false")
	assert.Contains(t, contents, "page_size: 5")
	assert.Contains(t, contents, "kind: FabricEntry")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no forms", func(c *Config) { c.Forms = nil }},
		{"negative page size", func(c *Config) { c.Table.PageSize = -1 }},
		{"missing kind", func(c *Config) { c.Forms[0].Kind = "" }},
		{"duplicate kind", func(c *Config) { c.Forms[1].Kind = c.Forms[0].Kind }},
		{"long shortcut", func(c *Config) { c.Forms[0].Shortcut = "FX" }},
		{"duplicate shortcut", func(c *Config) { c.Forms[1].Shortcut = "f" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("x")
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPageSize(t *testing.T) {
	cfg := Default("x")
	cfg.Table.PageSize = 0
	assert.Equal(t, 5, cfg.PageSize())
	cfg.Table.PageSize = 20
	assert.Equal(t, 20, cfg.PageSize())
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default("x")
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvAddr:     "127.0.0.1:9000",
		EnvHideZero: "true",
		EnvStrict:   "1",
		EnvPageSize: "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.True(t, cfg.Display.HideZero)
	assert.True(t, cfg.Validation.Strict)
	assert.Equal(t, 10, cfg.Table.PageSize)
}

func TestApplyEnv_Errors(t *testing.T) {
	for _, env := range []map[string]string{
		{EnvHideZero: "maybe"},
		{EnvStrict: "perhaps"},
		{EnvPageSize: "0"},
		{EnvPageSize: "ten"},
	} {
		assert.Error(t, Default("x").ApplyEnv(envMap(env)), "env %v", env)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENTRYDESK_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("ENTRYDESK_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("ENTRYDESK_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("ENTRYDESK_TEST_DOTENV"))
}
