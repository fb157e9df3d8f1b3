/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/muninn/pkg/codec"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <dump-file>",
	Short: "Validate and print a region dump",
	Long: `Decode a raw dump of the persistent region without consuming it.

Unlike the boot-time consumption path, inspect does not trust the dump: it
validates the checksum, the declared lengths, and the text encoding before
printing anything. Use it on dumps pulled off a device.

Examples:
  muninn inspect region.bin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			cmd.Printf("Error reading dump: %v\n", err)
			os.Exit(1)
		}

		report, err := codec.Inspect(data)
		if err != nil {
			cmd.Printf("No valid fault record: %v\n", err)
			os.Exit(1)
		}
		cmd.Print(report.Render())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
