/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/muninn/pkg/config"
	"github.com/ssargent/muninn/pkg/region"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "muninn",
	Short: "Muninn - fault record black box",
	Long: `Muninn records a fault into a RAM region that survives warm reset
and consumes it exactly once after reboot. The agent archives consumed
records and serves them over HTTP for operators.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: /etc/muninn/config.yaml)")
}

// loadConfig resolves the --config flag to a configuration, falling back
// to defaults when no file exists at the default path.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
		if !config.ConfigExists(configPath) {
			return config.DefaultConfig(), nil
		}
	}
	return config.LoadConfig(configPath)
}

// openRegion resolves the configured region backing into an accessor and
// a release function.
func openRegion(cfg *config.Config) (region.Accessor, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Region.Backing {
	case config.BackingStatic:
		return region.NewStatic(cfg.Region.Size), noop, nil
	case config.BackingFile:
		f, err := region.OpenFile(cfg.Region.Path, int64(cfg.Region.Start), cfg.Region.Size)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	case config.BackingRaw:
		start := uintptr(cfg.Region.Start)
		return region.NewRaw(start, start+uintptr(cfg.Region.Size)), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown region backing %q", cfg.Region.Backing)
	}
}

// newLogger builds the agent logger from the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
