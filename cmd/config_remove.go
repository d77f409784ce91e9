package cmd

import (
	"fmt"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a configuration profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := config.RemoveConfig(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed:", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRemoveCmd)
}
