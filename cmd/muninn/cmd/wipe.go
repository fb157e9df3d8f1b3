/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// wipeCmd represents the wipe command
var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Zero the persistent region",
	Long: `Zero every byte of the configured region. Note that an all-zero region
decodes as a valid empty record; wipe is for clearing leftover payload
bytes during bring-up, not for marking absence.`,
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

		reg := acc.Bytes()
		for i := range reg {
			reg[i] = 0
		}
		cmd.Printf("Region wiped (%d bytes).\n", len(reg))
	},
}

func init() {
	rootCmd.AddCommand(wipeCmd)
}
