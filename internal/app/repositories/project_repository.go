package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/dberrors"
	"github.com/yigit/extension-registry/internal/pkg/helpers"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"github.com/yigit/extension-registry/internal/pkg/validation"
)

// ProjectRepository handles database operations for projects and their associations
type ProjectRepository struct {
	db db.Provider
	sb squirrel.StatementBuilderType
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(provider db.Provider) *ProjectRepository {
	return &ProjectRepository{
		db: provider,
		sb: psql,
	}
}

func (r *ProjectRepository) selectProjects() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.title", "COALESCE(p.description, '')", "p.start_date",
		"p.expected_end_date", "p.status", "p.advisor_id", "u.full_name",
	).
		From("projects p").
		Join("users u ON u.id = p.advisor_id")
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var (
		project models.Project
		endDate pgtype.Date
		status  string
	)
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.StartDate,
		&endDate,
		&status,
		&project.AdvisorID,
		&project.AdvisorName,
	)
	if err != nil {
		return nil, err
	}
	project.ExpectedEndDate = helpers.DatePtr(endDate)
	project.Status = models.ProjectStatus(status)
	return &project, nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Project, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build project list query: %w", err)
	}

	projects := []*models.Project{}
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			project, err := scanProject(rows)
			if err != nil {
				return err
			}
			projects = append(projects, project)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// advisorExists reports whether id names a professor
func advisorExists(ctx context.Context, q db.Querier, id int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM professors WHERE user_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking advisor: %w", err)
	}
	return exists, nil
}

// Create inserts a project after checking its status, dates and advisor. The advisor
// check and the insert share one transaction.
func (r *ProjectRepository) Create(ctx context.Context, input *models.ProjectInput) (int64, error) {
	if err := validation.Struct(input); err != nil {
		return 0, err
	}
	if !input.Status.Valid() {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidProjectStatus, input.Status)
	}
	if !models.DatesConsistent(input.StartDate, input.ExpectedEndDate) {
		return 0, apperrors.ErrInvalidProjectDates
	}

	var id int64
	err := db.InTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := advisorExists(ctx, tx, input.AdvisorID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w (id %d)", apperrors.ErrAdvisorNotFound, input.AdvisorID)
		}

		sql, args, err := r.sb.Insert("projects").
			Columns("title", "description", "start_date", "expected_end_date", "status", "advisor_id").
			Values(
				input.Title,
				helpers.NullableString(input.Description),
				input.StartDate,
				helpers.NullableDate(input.ExpectedEndDate),
				string(input.Status),
				input.AdvisorID,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create project query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			return dberrors.Translate(err)
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("title", input.Title).Int64("advisorID", input.AdvisorID).Msg("Project not created")
		return 0, err
	}

	logger.Info().Int64("projectID", id).Int64("advisorID", input.AdvisorID).Msg("Project created successfully")
	return id, nil
}

// GetByID retrieves a project with its advisor name
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	sql, args, err := r.selectProjects().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get project query: %w", err)
	}

	var project *models.Project
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		var scanErr error
		project, scanErr = scanProject(conn.QueryRow(ctx, sql, args...))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrProjectNotFound
		}
		logger.Error().Err(err).Int64("projectID", id).Msg("Error retrieving project")
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}
	return project, nil
}

// ListAll retrieves all projects ordered by title
func (r *ProjectRepository) ListAll(ctx context.Context) ([]*models.Project, error) {
	projects, err := r.queryProjects(ctx, r.selectProjects().OrderBy("p.title ASC", "p.id ASC"))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing projects")
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return projects, nil
}

// ListByAdvisor retrieves the projects advised by one professor ordered by title
func (r *ProjectRepository) ListByAdvisor(ctx context.Context, advisorID int64) ([]*models.Project, error) {
	projects, err := r.queryProjects(ctx, r.selectProjects().
		Where(squirrel.Eq{"p.advisor_id": advisorID}).
		OrderBy("p.title ASC", "p.id ASC"))
	if err != nil {
		logger.Error().Err(err).Int64("advisorID", advisorID).Msg("Error listing projects by advisor")
		return nil, fmt.Errorf("error listing projects by advisor: %w", err)
	}
	return projects, nil
}

// Update applies the fields present in patch. The stored dates are merged with the
// patched ones before the consistency check, and a supplied advisor must exist.
func (r *ProjectRepository) Update(ctx context.Context, id int64, patch models.ProjectPatch) error {
	if patch.Empty() {
		return apperrors.ErrNothingToUpdate
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidProjectStatus, *patch.Status)
	}
	if patch.Title != nil {
		if err := validation.Field("Title", *patch.Title, "required,notblank,max=200"); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validation.Field("Description", *patch.Description, "max=2000"); err != nil {
			return err
		}
	}
	if patch.AdvisorID != nil && *patch.AdvisorID <= 0 {
		return apperrors.NewValidationError("advisor id must be a positive number")
	}

	err := db.InTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var (
			start   time.Time
			endDate pgtype.Date
		)
		err := tx.QueryRow(ctx,
			`SELECT start_date, expected_end_date FROM projects WHERE id = $1 FOR UPDATE`, id).
			Scan(&start, &endDate)
		if err != nil {
			if isNoRows(err) {
				return apperrors.ErrProjectNotFound
			}
			return fmt.Errorf("error loading project: %w", err)
		}

		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if !models.DatesConsistent(start, patch.EndDate(helpers.DatePtr(endDate))) {
			return apperrors.ErrInvalidProjectDates
		}

		if patch.AdvisorID != nil {
			exists, err := advisorExists(ctx, tx, *patch.AdvisorID)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w (id %d)", apperrors.ErrAdvisorNotFound, *patch.AdvisorID)
			}
		}

		cols := patch.Columns()
		if patch.Description != nil {
			cols["description"] = helpers.NullableString(*patch.Description)
		}

		sql, args, err := r.sb.Update("projects").
			SetMap(cols).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update project query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return dberrors.Translate(err)
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Int64("projectID", id).Msg("Project not updated")
		return err
	}

	logger.Info().Int64("projectID", id).Msg("Project updated successfully")
	return nil
}

// Delete removes a project. Its area links, participations and vacancies are removed
// with it by the store's cascades.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return dberrors.Translate(err)
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("projectID", id).Msg("Error deleting project")
		return err
	}
	if affected == 0 {
		return apperrors.ErrProjectNotFound
	}

	logger.Info().Int64("projectID", id).Msg("Project deleted successfully")
	return nil
}

// SummaryByAdvisor counts projects per professor, professors without projects included,
// ordered by count descending then name.
func (r *ProjectRepository) SummaryByAdvisor(ctx context.Context) ([]models.AdvisorSummary, error) {
	query := `
		SELECT u.id, u.full_name, COUNT(pr.id)::int AS project_count
		FROM professors p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN projects pr ON pr.advisor_id = p.user_id
		GROUP BY u.id, u.full_name
		ORDER BY project_count DESC, u.full_name ASC
	`

	summaries := []models.AdvisorSummary{}
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var s models.AdvisorSummary
			if err := rows.Scan(&s.ProfessorID, &s.ProfessorName, &s.ProjectCount); err != nil {
				return err
			}
			summaries = append(summaries, s)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error summarizing projects by advisor")
		return nil, fmt.Errorf("error summarizing projects by advisor: %w", err)
	}
	return summaries, nil
}

// AssignArea tags a project with an interest area. Assigning the same area twice is a no-op.
func (r *ProjectRepository) AssignArea(ctx context.Context, projectID, areaID int64) error {
	sql, args, err := r.sb.Insert("project_areas").
		Columns("project_id", "area_id").
		Values(projectID, areaID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign area query: %w", err)
	}

	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		_, err := conn.Exec(ctx, sql, args...)
		return dberrors.Translate(err)
	})
	if err != nil {
		logger.Warn().Err(err).Int64("projectID", projectID).Int64("areaID", areaID).Msg("Area not assigned")
		return err
	}
	return nil
}

// EnrollStudent records a student's participation in a project
func (r *ProjectRepository) EnrollStudent(ctx context.Context, projectID, studentID int64) error {
	sql, args, err := r.sb.Insert("student_projects").
		Columns("student_id", "project_id").
		Values(studentID, projectID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enroll student query: %w", err)
	}

	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		_, err := conn.Exec(ctx, sql, args...)
		return dberrors.Translate(err)
	})
	if err != nil {
		logger.Warn().Err(err).Int64("projectID", projectID).Int64("studentID", studentID).Msg("Student not enrolled")
		return err
	}

	logger.Info().Int64("projectID", projectID).Int64("studentID", studentID).Msg("Student enrolled in project")
	return nil
}

// WithdrawStudent removes a student's participation in a project
func (r *ProjectRepository) WithdrawStudent(ctx context.Context, projectID, studentID int64) error {
	sql, args, err := r.sb.Delete("student_projects").
		Where(squirrel.Eq{"student_id": studentID, "project_id": projectID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build withdraw student query: %w", err)
	}

	var affected int64
	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		tag, err := conn.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("error withdrawing student: %w", err)
	}
	if affected == 0 {
		return apperrors.NewResourceNotFoundError(
			fmt.Sprintf("student %d does not participate in project %d", studentID, projectID))
	}

	logger.Info().Int64("projectID", projectID).Int64("studentID", studentID).Msg("Student withdrawn from project")
	return nil
}

// OpenVacancy publishes open positions on a project until the deadline
func (r *ProjectRepository) OpenVacancy(ctx context.Context, v *models.Vacancy) error {
	if v.Positions <= 0 {
		return apperrors.NewValidationError("positions must be a positive number")
	}

	sql, args, err := r.sb.Insert("vacancies").
		Columns("project_id", "positions", "application_deadline").
		Values(v.ProjectID, v.Positions, v.ApplicationDeadline).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build open vacancy query: %w", err)
	}

	err = db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		return dberrors.Translate(conn.QueryRow(ctx, sql, args...).Scan(&v.ID))
	})
	if err != nil {
		logger.Warn().Err(err).Int64("projectID", v.ProjectID).Msg("Vacancy not opened")
		return err
	}
	return nil
}
