package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigDir(t *testing.T, yaml string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mdhl.yaml"), []byte(yaml), 0o644))
	}
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitDefaults(t *testing.T) {
	withConfigDir(t, "")
	require.NoError(t, Init())

	assert.Equal(t, "print", GetOutput())
	assert.Equal(t, "ansi", GetFormat())
	assert.True(t, GetLineNumbers())
	assert.Equal(t, slog.LevelWarn, GetLogLevel())
	assert.Equal(t, "81", GetColor("class-name"))
	assert.Empty(t, GetDefines())
}

func TestInitFromFile(t *testing.T) {
	withConfigDir(t, `
format: html
log_level: debug
line_numbers: false
colors:
  class-name: "33"
cpp:
  defines: [DEBUG, USE_SIMD]
  classes: [Handle]
`)
	require.NoError(t, Init())

	assert.Equal(t, "html", GetFormat())
	assert.Equal(t, slog.LevelDebug, GetLogLevel())
	assert.False(t, GetLineNumbers())
	assert.Equal(t, "33", GetColor("class-name"))
	assert.Equal(t, "170", GetColor("keyword"), "unset colors keep their default")
	assert.Equal(t, []string{"DEBUG", "USE_SIMD"}, GetDefines())
	assert.Equal(t, []string{"Handle"}, C.CPP.Classes)
}

func TestEnvOverrides(t *testing.T) {
	withConfigDir(t, "")
	t.Setenv("MDHL_FORMAT", "html")
	require.NoError(t, Init())
	assert.Equal(t, "html", GetFormat())
}

func TestExpandTilde(t *testing.T) {
	withConfigDir(t, "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "posts"), expandTilde("~/posts"))
	assert.Equal(t, "/abs", expandTilde("/abs"))
	assert.Equal(t, "", expandTilde(""))
}
