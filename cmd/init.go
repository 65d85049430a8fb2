package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ogtechminds/orgchart/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize orgchart configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure team tags, the default team, the server port and the data directory, and writes them to .orgchart.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (teams %v, default %s)\n", cfgFile, cfg.Teams, cfg.DefaultTeam)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
