package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := AppFs
	fs := afero.NewMemMapFs()
	AppFs = fs
	t.Cleanup(func() { AppFs = prev })
	return fs
}

func TestLoadDefaults(t *testing.T) {
	withFs(t)
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, &Config{
		ModelPath:  "model.yaml",
		Target:     "postgres",
		ListenAddr: ":8080",
	}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	fs := withFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/tables.yaml", []byte(
		"model_path: school.yaml\ntarget: sqlite\noutput_dir: out\ndebug: true\n"), 0644))

	cfg, err := Load(Options{ConfigFile: "/etc/tables.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "school.yaml", cfg.ModelPath)
	assert.Equal(t, "sqlite", cfg.Target)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	withFs(t)

	_, err := Load(Options{ConfigFile: "/nope/tables.yaml"})
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoadPrecedence(t *testing.T) {
	fs := withFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/tables.yaml", []byte(
		"target: sqlite\nlisten_addr: :9000\nmodel_path: file.yaml\n"), 0644))
	t.Setenv("TABLES_TARGET", "mysql")
	t.Setenv("TABLES_LISTEN_ADDR", ":7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "postgres", "")
	flags.String("addr", ":8080", "")
	flags.String("model", "model.yaml", "")
	require.NoError(t, flags.Parse([]string{"--target", "prisma"}))

	cfg, err := Load(Options{ConfigFile: "/etc/tables.yaml", Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "prisma", cfg.Target, "changed flag beats env")
	assert.Equal(t, ":7000", cfg.ListenAddr, "env beats file")
	assert.Equal(t, "file.yaml", cfg.ModelPath, "file beats flag default")
}
