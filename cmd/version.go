package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the noveld version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("noveld", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
