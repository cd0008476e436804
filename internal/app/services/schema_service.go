package services

import (
	"context"
	"fmt"

	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// DropConfirmation must be typed verbatim before every table is dropped
const DropConfirmation = "DROP EVERYTHING"

// SchemaDescription is the schema summary given to the SQL assistant
const SchemaDescription = `users(id BIGSERIAL PK, full_name VARCHAR(150), email VARCHAR(150) UNIQUE, password_hash VARCHAR(255))
students(user_id BIGINT PK FK->users.id ON DELETE CASCADE, registration_number VARCHAR(20) UNIQUE, semester INT NULL)
professors(user_id BIGINT PK FK->users.id ON DELETE CASCADE, staff_id VARCHAR(20) UNIQUE, office VARCHAR(50) NULL)
projects(id BIGSERIAL PK, title VARCHAR(200), description TEXT NULL, start_date DATE, expected_end_date DATE NULL,
  status VARCHAR(20) CHECK IN ('Proposed','In Progress','Completed','Cancelled'), advisor_id BIGINT FK->professors.user_id)
interest_areas(id BIGSERIAL PK, name VARCHAR(100) UNIQUE)
project_areas(project_id BIGINT FK->projects.id ON DELETE CASCADE, area_id BIGINT FK->interest_areas.id ON DELETE CASCADE, PK(project_id, area_id))
student_projects(student_id BIGINT FK->students.user_id ON DELETE CASCADE, project_id BIGINT FK->projects.id ON DELETE CASCADE, PK(student_id, project_id))
vacancies(id BIGSERIAL PK, project_id BIGINT FK->projects.id ON DELETE CASCADE, positions INT CHECK > 0, application_deadline TIMESTAMPTZ)`

// Migrator applies and reverts the registry schema
type Migrator interface {
	Up(ctx context.Context) error
	Reset(ctx context.Context) error
	Version(ctx context.Context) (int64, error)
}

// Seeder loads sample data
type Seeder interface {
	Seed(ctx context.Context) error
}

// SchemaService handles the administrative schema operations
type SchemaService struct {
	migrator Migrator
	seeder   Seeder
}

// NewSchemaService creates a new schema service
func NewSchemaService(migrator Migrator, seeder Seeder) *SchemaService {
	return &SchemaService{
		migrator: migrator,
		seeder:   seeder,
	}
}

// Create applies every pending migration and returns the resulting version
func (s *SchemaService) Create(ctx context.Context) (int64, error) {
	if err := s.migrator.Up(ctx); err != nil {
		return 0, fmt.Errorf("failed to create schema: %w", err)
	}

	version, err := s.migrator.Version(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info().Int64("version", version).Msg("Schema created")
	return version, nil
}

// Seed loads the sample data set
func (s *SchemaService) Seed(ctx context.Context) error {
	if err := s.seeder.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}
	return nil
}

// DropAll reverts every migration, dropping all registry tables. It refuses to run
// unless confirmation is exactly DropConfirmation.
func (s *SchemaService) DropAll(ctx context.Context, confirmation string) error {
	if confirmation != DropConfirmation {
		logger.Warn().Msg("Drop all tables refused: confirmation mismatch")
		return fmt.Errorf("%w: type %q to confirm", apperrors.ErrConfirmationMismatch, DropConfirmation)
	}

	if err := s.migrator.Reset(ctx); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	logger.Warn().Msg("All registry tables dropped")
	return nil
}
