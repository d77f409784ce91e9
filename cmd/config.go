package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration profiles",
}

func init() {
	rootCmd.AddCommand(configCmd)
}
