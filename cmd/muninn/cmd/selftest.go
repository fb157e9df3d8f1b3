/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/muninn/pkg/codec"
)

// selftestCmd represents the selftest command
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Write a synthetic fault record into the region",
	Long: `Write a synthetic fault record into the configured region to exercise
the full detect-and-consume path during bring-up: run selftest, warm-reset
the device, and check that 'muninn serve' consumes and archives the record.

Examples:
  muninn selftest
  muninn selftest --message "bring-up marker board rev B"`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		acc, release, err := openRegion(cfg)
		if err != nil {
			cmd.Printf("Error opening region: %v\n", err)
			os.Exit(1)
		}
		defer release()

		message, _ := cmd.Flags().GetString("message")
		loc := &codec.Location{File: "muninn/selftest", Line: 1, Column: 1}
		if cfg.Minimal {
			codec.Encode(acc.Bytes(), loc, nil)
		} else {
			codec.Encode(acc.Bytes(), loc, func(w io.Writer) {
				io.WriteString(w, message)
			})
		}

		cmd.Printf("Synthetic record written to the region.\n")
		cmd.Printf("Warm-reset the device and run 'muninn serve' to consume it.\n")
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)

	selftestCmd.Flags().String("message", "muninn selftest record", "Message text for the synthetic record")
}
