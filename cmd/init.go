package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/overlaykit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize overlaykit configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure overlaykit for your storefront and writes the config file (default .overlaykit.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
