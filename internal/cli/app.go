package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/extension-registry/internal/app/routes"
	"github.com/yigit/extension-registry/internal/bootstrap"
	"github.com/yigit/extension-registry/internal/config"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// App holds the state of one console session
type App struct {
	config   *config.Config
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
}

// NewApp loads configuration and builds every dependency of the console
func NewApp(configPath string) (*App, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, bootstrap.NewConsolePrompter(), lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &App{
		config:   cfg,
		database: database,
		deps:     deps,
		logger:   lgr,
	}, nil
}

// Run shows the main menu until the user exits or input ends
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("Console session started")

	runner := routes.NewRunner(a.deps.Prompter)
	err := runner.Run(ctx, routes.NewMainMenu(a.deps.Controllers))
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("console session failed: %w", err)
	}

	a.deps.Prompter.Println("Goodbye.")
	return nil
}

// Shutdown closes the pool, the migrator connection and the log file
func (a *App) Shutdown() error {
	a.deps.Close()

	if a.database != nil {
		a.logger.Info().Msg("Closing database connection pool...")
		a.database.Close()
	}

	a.logger.Info().Msg("Console session finished")
	return logger.Close()
}
