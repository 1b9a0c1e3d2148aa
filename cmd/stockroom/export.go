package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/export"
)

type exportOptions struct {
	filters filterFlags
	dir     string
}

func newExportCmd(app *AppContext) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every product matching the filters to a CSV file",
		Long: `Export writes all rows matching the filters, ignoring pagination, to a
timestamped CSV file in the export directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, app, opts)
		},
	}

	addFilterFlags(cmd, &opts.filters, false)
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Directory to write into (default from configuration)")

	return cmd
}

func runExport(cmd *cobra.Command, app *AppContext, opts *exportOptions) error {
	ctx, cfg, log, err := app.CommandContext(cmd, "command.export")
	if err != nil {
		return err
	}

	state, err := opts.filters.state(cfg.Catalog.PageSize)
	if err != nil {
		return newCommandError("export products", "parsing filters", err, filterSuggestion())
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	dir := cfg.ExportDir
	if opts.dir != "" {
		dir = opts.dir
	}

	res, err := export.New(s, export.Options{Dir: dir, Logger: log}).Export(ctx, state)
	if err != nil {
		log.Error(err, "export failed", "dir", dir)
		return newCommandError("export products", "writing CSV to "+dir, err, "Check that the export directory is writable.")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exported %d rows to %s\n", res.Rows, res.Path)
	for _, line := range res.Summary {
		fmt.Fprintf(out, "  %s\n", line)
	}
	return nil
}
