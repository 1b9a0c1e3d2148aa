package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/config"
	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	"github.com/alexisbeaulieu97/stockroom/internal/preferences"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

func newThemeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the dashboard theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, log, err := app.CommandContext(cmd, "command.theme")
			if err != nil {
				return err
			}
			printTheme(cmd, themeEngine(cfg, log).Theme())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, log, err := app.CommandContext(cmd, "command.theme.toggle")
			if err != nil {
				return err
			}
			engine := themeEngine(cfg, log)
			if err := engine.Toggle(ctx); err != nil {
				return newCommandError("change theme", "applying the theme", err, "Try again.")
			}
			printTheme(cmd, engine.Theme())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Choose a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := theme.ParseID(args[0])
			if !ok {
				return newCommandError("change theme", fmt.Sprintf("unknown theme %q", args[0]),
					fmt.Errorf("theme must be light or dark"), "Run 'stockroom theme set light' or 'stockroom theme set dark'.")
			}
			ctx, cfg, log, err := app.CommandContext(cmd, "command.theme.set")
			if err != nil {
				return err
			}
			engine := themeEngine(cfg, log)
			if err := engine.Set(ctx, id); err != nil {
				return newCommandError("change theme", "applying the theme", err, "Try again.")
			}
			printTheme(cmd, engine.Theme())
			return nil
		},
	})

	return cmd
}

func themeEngine(cfg *config.Config, log *logger.Logger) *theme.Engine {
	return theme.NewEngine(preferences.OpenJSONFile(cfg.Preferences.ThemeFile, log), log)
}

func printTheme(cmd *cobra.Command, t theme.Theme) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n", t.ID)
	for _, role := range theme.Roles() {
		fmt.Fprintf(out, "  %-16s %s\n", role.String(), t.Palette.Color(role))
	}
}
