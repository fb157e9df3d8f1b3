package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/muninn/pkg/codec"
	"github.com/ssargent/muninn/pkg/config"
)

func TestLoadConfigFromFlag(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	want := config.DefaultConfig()
	want.Port = 9999
	want.Logging.Level = "debug"
	require.NoError(t, config.SaveConfig(want, configPath))

	require.NoError(t, rootCmd.PersistentFlags().Set("config", configPath))
	defer rootCmd.PersistentFlags().Set("config", "")

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
}

func TestLoadConfigMissingFlagPath(t *testing.T) {
	require.NoError(t, rootCmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))
	defer rootCmd.PersistentFlags().Set("config", "")

	_, err := loadConfig(rootCmd)
	assert.Error(t, err)
}

func TestOpenRegionStatic(t *testing.T) {
	cfg := config.DefaultConfig()

	acc, release, err := openRegion(cfg)
	require.NoError(t, err)
	defer release()

	assert.Len(t, acc.Bytes(), cfg.Region.Size)
}

func TestOpenRegionFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Region.Backing = config.BackingFile
	cfg.Region.Path = filepath.Join(t.TempDir(), "region.bin")
	cfg.Region.Size = 256

	acc, release, err := openRegion(cfg)
	require.NoError(t, err)
	defer release()

	assert.Len(t, acc.Bytes(), 256)
}

func TestOpenRegionUnknownBacking(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Region.Backing = "flash"

	_, _, err := openRegion(cfg)
	assert.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	assert.True(t, newLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, newLogger("info").Enabled(ctx, slog.LevelDebug))
	assert.False(t, newLogger("warn").Enabled(ctx, slog.LevelInfo))
	assert.False(t, newLogger("error").Enabled(ctx, slog.LevelWarn))
	assert.True(t, newLogger("unknown").Enabled(ctx, slog.LevelInfo))
}

func TestInspectCommand(t *testing.T) {
	dumpPath := filepath.Join(t.TempDir(), "region.bin")

	region := make([]byte, 64)
	codec.Encode(region, &codec.Location{File: "x.rs", Line: 12, Column: 5}, func(w io.Writer) {
		io.WriteString(w, "boom")
	})
	require.NoError(t, os.WriteFile(dumpPath, region, 0600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"inspect", dumpPath})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "fault record: valid")
	assert.Contains(t, out.String(), "x.rs:12:5")
	assert.Contains(t, out.String(), "boom")
}
