package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/store"
)

type seedOptions struct {
	fixture string
}

func newSeedCmd(app *AppContext) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load sample data",
		Long: `Seed creates missing categories and, when the catalog has no products yet,
inserts the fixture's products. Running it again changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.fixture, "fixture", "f", "", "YAML fixture to load instead of the built-in sample catalog")

	return cmd
}

func runSeed(cmd *cobra.Command, app *AppContext, opts *seedOptions) error {
	ctx, cfg, log, err := app.CommandContext(cmd, "command.seed")
	if err != nil {
		return err
	}

	fixture := store.DefaultFixture()
	if opts.fixture != "" {
		if fixture, err = store.LoadFixture(opts.fixture); err != nil {
			return newCommandError("seed the catalog", "loading "+opts.fixture, err,
				"A fixture lists categories and products whose category is one of them.")
		}
	}

	s, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Seed(ctx, fixture)
	if err != nil {
		log.Error(err, "seed failed")
		return newCommandError("seed the catalog", "inserting fixture rows", err, "Check that the database is writable.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories and %d products\n", res.Categories, res.Products)
	return nil
}
