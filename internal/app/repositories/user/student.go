package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/dberrors"
	"github.com/yigit/extension-registry/internal/pkg/helpers"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"github.com/yigit/extension-registry/internal/pkg/validation"
)

// StudentRepository handles student database operations. Every student is a users row
// plus a students row sharing the same id.
type StudentRepository struct {
	db db.Provider
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(provider db.Provider) *StudentRepository {
	return &StudentRepository{
		db: provider,
		sb: statementBuilder,
	}
}

// selectStudents is the merged users+students projection
func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(
		"u.id", "u.full_name", "u.email",
		"s.registration_number", "COALESCE(s.semester, 0)",
	).
		From("users u").
		Join("students s ON s.user_id = u.id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{User: &models.User{}}
	err := row.Scan(
		&student.UserID,
		&student.User.FullName,
		&student.User.Email,
		&student.RegistrationNumber,
		&student.Semester,
	)
	if err != nil {
		return nil, err
	}
	student.User.ID = student.UserID
	return student, nil
}

// Create inserts the users row and the students row in one transaction and returns the
// shared id. Nothing is left behind when either insert fails.
func (r *StudentRepository) Create(ctx context.Context, input *models.StudentInput) (int64, error) {
	if err := validation.Struct(input); err != nil {
		return 0, err
	}

	user, err := newUser(input.FullName, input.Email, input.Password)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.InTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := insertUser(ctx, tx, user)
		if err != nil {
			return err
		}
		id = userID

		sql, args, err := r.sb.Insert("students").
			Columns("user_id", "registration_number", "semester").
			Values(id, input.RegistrationNumber, helpers.NullableInt(input.Semester)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create student query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return dberrors.Translate(err)
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("registration", input.RegistrationNumber).Msg("Student not created")
		return 0, err
	}

	logger.Info().Int64("userID", id).Str("registration", input.RegistrationNumber).Msg("Student created successfully")
	return id, nil
}

// GetByID retrieves a student with its user fields
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student *models.Student
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		var scanErr error
		student, scanErr = scanStudent(conn.QueryRow(ctx, sql, args...))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error retrieving student")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// ListAll returns every student ordered by name
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.selectStudents().OrderBy("u.full_name ASC", "u.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	var students []*models.Student
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			student, err := scanStudent(rows)
			if err != nil {
				return err
			}
			students = append(students, student)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// Update applies the fields present in patch, splitting them between the users and
// students tables inside one transaction.
func (r *StudentRepository) Update(ctx context.Context, id int64, patch models.StudentPatch) error {
	if patch.Empty() {
		return apperrors.ErrNothingToUpdate
	}
	if patch.Semester != nil && *patch.Semester <= 0 {
		return apperrors.NewValidationError("semester must be a positive number")
	}
	err := validatePatch(
		patchRule{"FullName", patch.FullName, fullNameRule},
		patchRule{"Email", patch.Email, emailRule},
		patchRule{"RegistrationNumber", patch.RegistrationNumber, codeRule},
	)
	if err != nil {
		return err
	}

	userCols, err := userColumns(patch.FullName, patch.Email, patch.Password)
	if err != nil {
		return err
	}

	err = db.InTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := roleExists(ctx, tx, "students", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrStudentNotFound
		}

		if err := updateTable(ctx, tx, "users", "id", id, userCols); err != nil {
			return err
		}
		return updateTable(ctx, tx, "students", "user_id", id, patch.StudentColumns())
	})
	if err != nil {
		logger.Warn().Err(err).Int64("userID", id).Msg("Student not updated")
		return err
	}

	logger.Info().Int64("userID", id).Msg("Student updated successfully")
	return nil
}

// Delete removes a student. Participations go with it through the store's cascades.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		var err error
		affected, err = deleteUserWithRole(ctx, conn, "students", id)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error deleting student")
		return err
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Int64("userID", id).Msg("Student deleted successfully")
	return nil
}
