package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.CurrentContext = "prod"
	cfg.Contexts = []Context{
		{
			Name:     "prod",
			Server:   "https://versionlog.example.com",
			Username: "alice",
			Session:  "7f2c9a31",
		},
	}

	require.NoError(t, Save(path, &cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.CurrentContext, loaded.CurrentContext)
	require.Len(t, loaded.Contexts, 1)
	require.Equal(t, cfg.Contexts[0].Server, loaded.Contexts[0].Server)
	require.Equal(t, cfg.Contexts[0].Session, loaded.Contexts[0].Session)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestUpsertContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UpsertContext(Context{Name: "dev", Server: "http://localhost:8080"})
	cfg.UpsertContext(Context{Name: "prod", Server: "https://versionlog.example.com"})
	require.Len(t, cfg.Contexts, 2)

	cfg.UpsertContext(Context{Name: "dev", Server: "http://localhost:9090"})
	require.Len(t, cfg.Contexts, 2)
	ctx, err := cfg.FindContext("dev")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9090", ctx.Server)
}

func TestCurrentContextOrDefault(t *testing.T) {
	cfg := DefaultConfig()
	require.Empty(t, cfg.CurrentContextOrDefault())

	cfg.Contexts = []Context{{Name: "first", Server: "http://localhost:8080"}}
	require.Equal(t, "first", cfg.CurrentContextOrDefault())

	cfg.CurrentContext = "other"
	require.Equal(t, "other", cfg.CurrentContextOrDefault())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Contexts = []Context{{Name: "dev", Server: "http://localhost:8080"}}
	require.NoError(t, cfg.Validate())

	cfg.Contexts = append(cfg.Contexts, Context{Name: "  ", Server: "http://localhost"})
	require.Error(t, cfg.Validate())

	cfg.Contexts = []Context{{Name: "dev"}}
	require.Error(t, cfg.Validate())
}

func TestDefaultConfigPathEnvOverride(t *testing.T) {
	t.Setenv("VLOGCTL_CONFIG", "/tmp/custom/config.yaml")
	require.Equal(t, "/tmp/custom/config.yaml", DefaultConfigPath())
}
