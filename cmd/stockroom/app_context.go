package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/config"
	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	"github.com/alexisbeaulieu97/stockroom/internal/store"
)

// AppContext bundles the state shared by every command. Configuration is loaded
// on first use so that commands such as version never touch it.
type AppContext struct {
	configFile string
	verbose    bool
	cfg        *config.Config
}

func newAppContext() *AppContext {
	return &AppContext{}
}

// Config loads the configuration once.
func (a *AppContext) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(config.LoadOptions{File: a.configFile, SearchPaths: config.DefaultSearchPaths()})
	if err != nil {
		return nil, newCommandError("load configuration", "reading settings", err,
			"Check stockroom.yaml and any STOCKROOM_* environment variables.")
	}
	a.cfg = cfg
	return cfg, nil
}

// Logger builds a logger writing to w at the configured level.
func (a *AppContext) Logger(cfg *config.Config, w io.Writer) (*logger.Logger, error) {
	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.Human, Writer: w})
	if err != nil {
		return nil, newCommandError("create logger", "log.level "+level, err, "Use one of trace, debug, info, warn or error.")
	}
	return log, nil
}

// CommandContext returns the command's context, the configuration and a logger
// tagged with component and a fresh correlation id. Logs go to stderr.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, *config.Config, *logger.Logger, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := a.Logger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	return cmd.Context(), cfg, log.ForComponent(component), nil
}

// connect opens the configured store without seeding it.
func connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store.Store, error) {
	s, err := store.Open(ctx, store.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN, Logger: log})
	if err != nil {
		return nil, newCommandError("open the catalog", "connecting to the "+cfg.Database.Driver+" database", err,
			"Check database.driver and database.dsn in your configuration.")
	}
	return s, nil
}

// openStore connects and installs the sample catalog into a database that has
// no categories yet.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store.Store, error) {
	s, err := connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	names, err := s.CategoryNames(ctx)
	if err == nil && len(names) == 0 {
		_, err = s.Seed(ctx, store.DefaultFixture())
	}
	if err != nil {
		s.Close()
		return nil, newCommandError("open the catalog", "preparing sample data", err,
			"Run 'stockroom seed' once the database is reachable.")
	}
	return s, nil
}
