package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/charts"
	"github.com/alexisbeaulieu97/stockroom/internal/export"
	"github.com/alexisbeaulieu97/stockroom/internal/preferences"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
	"github.com/alexisbeaulieu97/stockroom/internal/tui/dashboard"
)

func newDashboardCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive dashboard",
		Long:  `Launch the interactive TUI dashboard to search, filter, sort, chart and export the catalog.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboardCommand(cmd, app)
		},
	}

	return cmd
}

// runDashboardCommand runs the dashboard with logs going to the data directory,
// since the alternate screen owns the terminal.
func runDashboardCommand(cmd *cobra.Command, app *AppContext) error {
	cfg, err := app.Config()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile()), 0o755); err != nil {
		return newCommandError("launch dashboard", "creating "+cfg.DataDir, err, "Check data_dir in your configuration.")
	}
	logFile, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newCommandError("launch dashboard", "opening "+cfg.LogFile(), err, "Check data_dir in your configuration.")
	}
	defer logFile.Close()

	base, err := app.Logger(cfg, logFile)
	if err != nil {
		return err
	}
	log := base.ForComponent("command.dashboard")
	ctx := cmd.Context()

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(err, "catalog unavailable")
		return err
	}
	defer s.Close()

	engine := theme.NewEngine(preferences.OpenJSONFile(cfg.Preferences.ThemeFile, log), log)
	settings := charts.DefaultSettings()
	settings.LowStockThreshold = cfg.Catalog.LowStockThreshold

	m := dashboard.NewModel(ctx, dashboard.Deps{
		Catalog:   s,
		Analytics: s,
		Exporter:  export.New(s, export.Options{Dir: cfg.ExportDir, Logger: log}),
		Theme:     engine,
		Tabs:      preferences.OpenTextFile(cfg.Preferences.TabFile),
		Board:     charts.NewBoard(log),
		Settings:  settings,
		PageSize:  cfg.Catalog.PageSize,
		Logger:    log,
	})

	log.Info("launching dashboard", "driver", cfg.Database.Driver, "theme", string(engine.Theme().ID))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error(err, "dashboard execution failed")
		return fmt.Errorf("failed to run dashboard: %w", err)
	}

	log.Info("dashboard closed")
	return nil
}
