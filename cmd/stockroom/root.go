package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stockroom",
		Short:         "Stockroom browses and filters a product inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand launches the dashboard
			return runDashboardCommand(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configFile, "config", "c", "", "Path to a stockroom.yaml configuration file")
	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newProductCmd(app))
	cmd.AddCommand(newCategoryCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
