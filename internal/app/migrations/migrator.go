package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

//go:embed sql/*.sql
var migrationFS embed.FS

const migrationDir = "sql"

func init() {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}
}

// gooseLogger routes goose output into the application log
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Migrator manages the registry schema with the embedded goose migrations
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new migrator. The connection is opened lazily by database/sql.
func NewMigrator(dsn string) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Migrator{db: db}, nil
}

// Up applies every pending migration
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, migrationDir); err != nil {
		return fmt.Errorf("error occurred during SQL migration execution: %w", err)
	}
	return nil
}

// Reset rolls back every applied migration, dropping all registry tables
func (m *Migrator) Reset(ctx context.Context) error {
	if err := goose.ResetContext(ctx, m.db, migrationDir); err != nil {
		return fmt.Errorf("error occurred while reverting migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version, 0 when nothing is applied
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}

// Close releases the migration connection
func (m *Migrator) Close() error {
	return m.db.Close()
}
