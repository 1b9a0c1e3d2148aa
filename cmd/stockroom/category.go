package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type categoryDeleteOptions struct {
	force bool
}

func newCategoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Add or delete categories",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, log, err := app.CommandContext(cmd, "command.category.add")
			if err != nil {
				return err
			}

			s, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.CreateCategory(ctx, args[0])
			if err != nil {
				return newCommandError("add category", fmt.Sprintf("inserting %q", args[0]), err,
					"Category names must be non-empty and unique.")
			}

			log.Info("category added", "category_id", c.ID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Added category %d '%s'\n", c.ID, c.Name)
			return nil
		},
	})
	cmd.AddCommand(newCategoryDeleteCmd(app))

	return cmd
}

func newCategoryDeleteCmd(app *AppContext) *cobra.Command {
	opts := &categoryDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category and every product in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryDelete(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runCategoryDelete(cmd *cobra.Command, app *AppContext, name string, opts *categoryDeleteOptions) error {
	ctx, cfg, log, err := app.CommandContext(cmd, "command.category.delete")
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	category, err := s.CategoryByName(ctx, name)
	if err != nil {
		return newCommandError("delete category", fmt.Sprintf("looking up category %q", name), err,
			"Category names are case-sensitive.")
	}

	if !opts.force {
		confirmed, err := confirmCategoryDelete(cmd, category.Name)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	removed, err := s.DeleteCategory(ctx, category.ID)
	if err != nil {
		return newCommandError("delete category", fmt.Sprintf("removing %q", category.Name), err,
			"Check that the database is writable.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted category '%s' and %d products\n", category.Name, removed)
	return nil
}

func confirmCategoryDelete(cmd *cobra.Command, name string) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("delete category", "prompting for confirmation", errors.New("not a terminal"),
			"Use --force when running in non-interactive environments.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Delete category '%s' and all of its products? [y/N]: ", name)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
