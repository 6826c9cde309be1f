package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points XDG and the working directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range []string{"SHOPCFG_ENDPOINT", "SHOPCFG_STORE", "SHOPCFG_REVIEW_LIMIT", "SHOPCFG_SUBMIT_TIMEOUT"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	require.Equal(t, "/custom/config/shopcfg/shopcfg.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	require.True(t, filepath.IsAbs(got), "GlobalPath should be absolute, got %s", got)
	require.Equal(t, "shopcfg.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	require.Equal(t, "shopcfg.yml", ProjectPath())
}

func TestExists(t *testing.T) {
	isolate(t)

	require.False(t, Exists())

	require.NoError(t, WriteProject(Default()))
	require.True(t, Exists())
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	def := Default()
	require.Equal(t, def.DataDir, cfg.DataDir)
	require.Equal(t, StoreFile, cfg.Store)
	require.Equal(t, "upbSelections", cfg.StoreKey)
	require.Equal(t, 2, cfg.ReviewLimit)
	require.Equal(t, 15*time.Second, cfg.SubmitTimeout)
	require.Equal(t, "de", cfg.Locale)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Default()
	global.Endpoint = "http://global.example/api/save_selection"
	global.ReviewLimit = 3
	require.NoError(t, WriteGlobal(global))

	project := Default()
	project.Endpoint = "http://project.example/api/save_selection"
	project.ReviewLimit = 3
	project.SubmitTimeout = 2 * time.Second
	require.NoError(t, WriteProject(project))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://project.example/api/save_selection", cfg.Endpoint)
	require.Equal(t, 3, cfg.ReviewLimit)
	require.Equal(t, 2*time.Second, cfg.SubmitTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	require.NoError(t, WriteProject(Default()))

	t.Setenv("SHOPCFG_STORE", "nats")
	t.Setenv("SHOPCFG_SUBMIT_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreNATS, cfg.Store)
	require.Equal(t, 750*time.Millisecond, cfg.SubmitTimeout)
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Catalog = "catalog.yml"
	require.NoError(t, WriteProject(cfg))

	data, err := os.ReadFile(ProjectPath())
	require.NoError(t, err)
	content := string(data)
	for _, field := range []string{
		"catalog: catalog.yml",
		"store: file",
		"store_key: upbSelections",
		"review_limit: 2",
		"submit_timeout: 15s",
		"locale: de",
	} {
		require.Contains(t, content, field)
	}
}

func TestValidate_ReviewLimitErrorNamesTwoUp(t *testing.T) {
	cfg := Default()
	cfg.ReviewLimit = 0
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "two-up")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "memory store without data dir", mutate: func(c *Config) { c.Store = StoreMemory; c.DataDir = "" }},
		{name: "unknown store", mutate: func(c *Config) { c.Store = "redis" }, wantErr: true},
		{name: "empty key", mutate: func(c *Config) { c.StoreKey = "" }, wantErr: true},
		{name: "dotted key", mutate: func(c *Config) { c.StoreKey = "shop.upbSelections" }},
		{name: "key escaping data dir", mutate: func(c *Config) { c.StoreKey = "../x" }, wantErr: true},
		{name: "key with path separator", mutate: func(c *Config) { c.StoreKey = "a/b" }, wantErr: true},
		{name: "key with space", mutate: func(c *Config) { c.StoreKey = "upb selections" }, wantErr: true},
		{name: "key with wildcard", mutate: func(c *Config) { c.StoreKey = "upb*" }, wantErr: true},
		{name: "key with leading dot", mutate: func(c *Config) { c.StoreKey = ".upb" }, wantErr: true},
		{name: "review limit above two", mutate: func(c *Config) { c.ReviewLimit = 3 }},
		{name: "empty endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.SubmitTimeout = 0 }, wantErr: true},
		{name: "zero review limit", mutate: func(c *Config) { c.ReviewLimit = 0 }, wantErr: true},
		{name: "file store without data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
