/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ssargent/muninn/pkg/api"
	"github.com/ssargent/muninn/pkg/archive"
	"github.com/ssargent/muninn/pkg/codec"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Consume the fault record and serve the archive",
	Long: `Run the boot-time agent: detect and consume the fault record from the
persistent region (at most once per boot), archive it, then serve the
archive and metrics over HTTP.

Run this before enabling any workload that can fault, so a record from the
previous boot is consumed before the region can be overwritten.

Examples:
  muninn serve
  muninn serve --config /etc/muninn/config.yaml --port 9323`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}

		log := newLogger(cfg.Logging.Level)

		acc, release, err := openRegion(cfg)
		if err != nil {
			cmd.Printf("Error opening region: %v\n", err)
			os.Exit(1)
		}
		defer release()

		arch, err := archive.Open(cfg.ArchiveDir)
		if err != nil {
			cmd.Printf("Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer arch.Close()

		registry := prometheus.NewRegistry()
		metrics := api.NewMetrics(registry)
		server := api.NewServer(arch, log, metrics)

		if rec, ok := codec.DetectAndConsume(acc.Bytes()); ok {
			id, err := arch.Put(rec)
			if err != nil {
				cmd.Printf("Error archiving fault record: %v\n", err)
				os.Exit(1)
			}
			metrics.RecordConsumed()
			log.Info("fault record consumed",
				"id", id.String(),
				"filename", rec.Filename(),
				"line", rec.Line,
				"column", rec.Column,
				"message", rec.Message(),
			)
		} else {
			metrics.RecordAbsent()
			log.Info("no fault record present")
		}

		if count, err := arch.Count(); err == nil {
			metrics.SetArchivedRecords(count)
		}

		if err := api.StartServer(server, registry, api.ServerConfig{Port: cfg.Port, Bind: cfg.Bind}); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("bind", "", "Address to bind server to (overrides config)")
}
