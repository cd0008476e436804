package dberrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
	NotNullViolation    = "23502"
)

// Constraint names declared by the registry schema migration.
var constraintErrors = map[string]error{
	"users_email_key":                  apperrors.ErrEmailAlreadyExists,
	"students_registration_number_key": apperrors.ErrRegistrationExists,
	"professors_staff_id_key":          apperrors.ErrStaffIDExists,
	"projects_advisor_id_fkey":         apperrors.ErrAdvisorNotFound,
	"projects_status_check":            apperrors.ErrInvalidProjectStatus,
	"projects_dates_check":             apperrors.ErrInvalidProjectDates,
	"interest_areas_name_key":          apperrors.ErrInterestAreaExists,
	"student_projects_pkey":            apperrors.ErrAlreadyParticipating,
	"student_projects_student_id_fkey": apperrors.ErrStudentNotFound,
	"student_projects_project_id_fkey": apperrors.ErrProjectNotFound,
	"project_areas_project_id_fkey":    apperrors.ErrProjectNotFound,
	"project_areas_area_id_fkey":       apperrors.ErrInterestAreaNotFound,
	"vacancies_project_id_fkey":        apperrors.ErrProjectNotFound,
	"vacancies_positions_check":        apperrors.ErrValidationFailed,
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsConstraintError reports whether err is any integrity constraint violation.
func IsConstraintError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case UniqueViolation, ForeignKeyViolation, CheckViolation, NotNullViolation:
		return true
	}
	return false
}

// Translate maps a driver error onto the application error taxonomy. Known constraint names become
// their specific sentinel, unknown constraint violations keep their category, and everything else is
// returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if known, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return fmt.Errorf("%w (%s)", known, pgErr.ConstraintName)
	}

	switch pgErr.Code {
	case UniqueViolation:
		return fmt.Errorf("%w: unique %s", apperrors.ErrConstraintViolation, pgErr.ConstraintName)
	case ForeignKeyViolation:
		return fmt.Errorf("%w %s", apperrors.ErrForeignKeyViolation, pgErr.ConstraintName)
	case CheckViolation:
		return fmt.Errorf("%w: check %s", apperrors.ErrConstraintViolation, pgErr.ConstraintName)
	case NotNullViolation:
		return fmt.Errorf("%w: column %s is required", apperrors.ErrValidationFailed, pgErr.ColumnName)
	}
	return err
}
