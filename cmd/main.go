package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "bookreserve",
	Short:        "Library catalog and reservation service",
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
