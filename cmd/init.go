package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kelhaddad/folio/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up a new folio site interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists; edit it directly or remove it first", cfgFile)
		}

		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
