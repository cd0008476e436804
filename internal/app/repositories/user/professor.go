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

// ProfessorRepository handles professor database operations
type ProfessorRepository struct {
	db db.Provider
	sb squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(provider db.Provider) *ProfessorRepository {
	return &ProfessorRepository{
		db: provider,
		sb: statementBuilder,
	}
}

func (r *ProfessorRepository) selectProfessors() squirrel.SelectBuilder {
	return r.sb.Select(
		"u.id", "u.full_name", "u.email",
		"p.staff_id", "COALESCE(p.office, '')",
	).
		From("users u").
		Join("professors p ON p.user_id = u.id")
}

func scanProfessor(row pgx.Row) (*models.Professor, error) {
	professor := &models.Professor{User: &models.User{}}
	err := row.Scan(
		&professor.UserID,
		&professor.User.FullName,
		&professor.User.Email,
		&professor.StaffID,
		&professor.Office,
	)
	if err != nil {
		return nil, err
	}
	professor.User.ID = professor.UserID
	return professor, nil
}

// Create inserts the users row and the professors row in one transaction
func (r *ProfessorRepository) Create(ctx context.Context, input *models.ProfessorInput) (int64, error) {
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

		sql, args, err := r.sb.Insert("professors").
			Columns("user_id", "staff_id", "office").
			Values(id, input.StaffID, helpers.NullableString(input.Office)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create professor query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return dberrors.Translate(err)
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("staffID", input.StaffID).Msg("Professor not created")
		return 0, err
	}

	logger.Info().Int64("userID", id).Str("staffID", input.StaffID).Msg("Professor created successfully")
	return id, nil
}

// GetByID retrieves a professor with its user fields
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	sql, args, err := r.selectProfessors().Where(squirrel.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get professor query: %w", err)
	}

	var professor *models.Professor
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		var scanErr error
		professor, scanErr = scanProfessor(conn.QueryRow(ctx, sql, args...))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrProfessorNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error retrieving professor")
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}
	return professor, nil
}

// ListAll returns every professor ordered by name
func (r *ProfessorRepository) ListAll(ctx context.Context) ([]*models.Professor, error) {
	sql, args, err := r.selectProfessors().OrderBy("u.full_name ASC", "u.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list professors query: %w", err)
	}

	var professors []*models.Professor
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			professor, err := scanProfessor(rows)
			if err != nil {
				return err
			}
			professors = append(professors, professor)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error listing professors")
		return nil, fmt.Errorf("error listing professors: %w", err)
	}
	return professors, nil
}

// Update applies the fields present in patch to the users and professors tables in
// one transaction. An empty office clears it.
func (r *ProfessorRepository) Update(ctx context.Context, id int64, patch models.ProfessorPatch) error {
	if patch.Empty() {
		return apperrors.ErrNothingToUpdate
	}
	err := validatePatch(
		patchRule{"FullName", patch.FullName, fullNameRule},
		patchRule{"Email", patch.Email, emailRule},
		patchRule{"StaffID", patch.StaffID, codeRule},
		patchRule{"Office", patch.Office, "max=50"},
	)
	if err != nil {
		return err
	}

	userCols, err := userColumns(patch.FullName, patch.Email, patch.Password)
	if err != nil {
		return err
	}
	professorCols := patch.ProfessorColumns()
	if patch.Office != nil {
		professorCols["office"] = helpers.NullableString(*patch.Office)
	}

	err = db.InTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := roleExists(ctx, tx, "professors", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrProfessorNotFound
		}

		if err := updateTable(ctx, tx, "users", "id", id, userCols); err != nil {
			return err
		}
		return updateTable(ctx, tx, "professors", "user_id", id, professorCols)
	})
	if err != nil {
		logger.Warn().Err(err).Int64("userID", id).Msg("Professor not updated")
		return err
	}

	logger.Info().Int64("userID", id).Msg("Professor updated successfully")
	return nil
}

// CountAdvisedProjects returns how many projects reference the professor as advisor
func (r *ProfessorRepository) CountAdvisedProjects(ctx context.Context, id int64) (int, error) {
	var count int
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		return countAdvisedProjects(ctx, conn, id, &count)
	})
	if err != nil {
		return 0, fmt.Errorf("error counting advised projects: %w", err)
	}
	return count, nil
}

func countAdvisedProjects(ctx context.Context, q db.Querier, id int64, count *int) error {
	sql, args, err := statementBuilder.Select("COUNT(*)").
		From("projects").
		Where(squirrel.Eq{"advisor_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build count projects query: %w", err)
	}
	return q.QueryRow(ctx, sql, args...).Scan(count)
}

// Delete removes a professor who advises no project. While any project still names
// the professor as advisor the delete is refused with a GuardError carrying the count.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := db.InTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var advised int
		if err := countAdvisedProjects(ctx, tx, id, &advised); err != nil {
			return fmt.Errorf("error counting advised projects: %w", err)
		}
		if advised > 0 {
			return &apperrors.GuardError{Err: apperrors.ErrProfessorHasProjects, Count: advised}
		}

		var err error
		affected, err = deleteUserWithRole(ctx, tx, "professors", id)
		return err
	})
	if err != nil {
		logger.Warn().Err(err).Int64("userID", id).Msg("Professor not deleted")
		return err
	}
	if affected == 0 {
		return apperrors.ErrProfessorNotFound
	}

	logger.Info().Int64("userID", id).Msg("Professor deleted successfully")
	return nil
}
