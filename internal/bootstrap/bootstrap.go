package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/extension-registry/internal/app/controllers"
	appMigrations "github.com/yigit/extension-registry/internal/app/migrations"
	appRepos "github.com/yigit/extension-registry/internal/app/repositories"
	appRoutes "github.com/yigit/extension-registry/internal/app/routes"
	appServices "github.com/yigit/extension-registry/internal/app/services"
	"github.com/yigit/extension-registry/internal/config"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/llm"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
	"github.com/yigit/extension-registry/internal/seed"
)

// DefaultConfigPath is where the optional YAML configuration is looked up
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Migrator    *appMigrations.Migrator
	Prompter    *prompt.Prompter
	Logger      zerolog.Logger
}

// Close releases the resources owned by the dependencies
func (d *Dependencies) Close() {
	if d.Migrator != nil {
		if err := d.Migrator.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close migrator connection")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File:   cfg.Logging.File,
	})

	lgr := log.Logger
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Strs("envOverrides", cfg.EnvApplied).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase creates the connection pool. No connection is opened yet, so an
// unreachable server is reported by the first operation that needs it.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to configure database pool")
		return nil, err
	}
	lgr.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Int("maxConns", cfg.Database.MaxConns).
		Msg("Database pool configured")
	return database, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, provider db.Provider, p *prompt.Prompter, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Prompter: p}

	deps.Repos = appRepos.NewRepositories(provider, cfg.Assistant.ReadOnly)

	migrator, err := appMigrations.NewMigrator(cfg.GetPostgresConnectionString())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize migrator")
		return nil, fmt.Errorf("failed to initialize migrator: %w", err)
	}
	deps.Migrator = migrator

	client := llm.NewGeminiClient(cfg.Assistant.APIKey, cfg.Assistant.Model)
	if cfg.Assistant.APIKey == "" {
		lgr.Warn().Msg("GEMINI_API_KEY not set; assistant features will be unavailable")
	}

	deps.Services = appServices.NewServices(deps.Repos, client, migrator, seed.NewSeeder(deps.Repos, lgr))

	deps.Controllers = appRoutes.Controllers{
		Student:      appControllers.NewStudentController(p, deps.Repos.StudentRepository),
		Professor:    appControllers.NewProfessorController(p, deps.Repos.ProfessorRepository),
		Project:      appControllers.NewProjectController(p, deps.Repos.ProjectRepository),
		InterestArea: appControllers.NewInterestAreaController(p, deps.Repos.InterestAreaRepository),
		Report:       appControllers.NewReportController(p, deps.Services.ReportService),
		Assistant:    appControllers.NewAssistantController(p, deps.Services.AssistantService, deps.Repos.StatementExecutor.ReadOnly()),
		Admin:        appControllers.NewAdminController(p, deps.Services.SchemaService),
	}

	return deps, nil
}

// NewConsolePrompter reads answers from stdin and writes prompts to stdout
func NewConsolePrompter() *prompt.Prompter {
	return prompt.New(os.Stdin, os.Stdout)
}
