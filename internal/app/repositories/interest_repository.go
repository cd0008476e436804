package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// interestQueries reach interest areas from a student's participations or from a
// professor's advised projects.
var interestQueries = map[models.EntityType]string{
	models.EntityStudent: `
		SELECT DISTINCT ia.name
		FROM student_projects sp
		JOIN project_areas pa ON pa.project_id = sp.project_id
		JOIN interest_areas ia ON ia.id = pa.area_id
		WHERE sp.student_id = $1
		ORDER BY ia.name ASC
	`,
	models.EntityProfessor: `
		SELECT DISTINCT ia.name
		FROM projects p
		JOIN project_areas pa ON pa.project_id = p.id
		JOIN interest_areas ia ON ia.id = pa.area_id
		WHERE p.advisor_id = $1
		ORDER BY ia.name ASC
	`,
}

// InterestRepository aggregates interest areas for students and professors
type InterestRepository struct {
	db db.Provider
}

// NewInterestRepository creates a new interest repository
func NewInterestRepository(provider db.Provider) *InterestRepository {
	return &InterestRepository{db: provider}
}

// InterestsFor returns the distinct interest-area names reachable from the entity's
// projects. No matching rows yields an empty slice, not an error.
func (r *InterestRepository) InterestsFor(ctx context.Context, id int64, entity models.EntityType) ([]string, error) {
	query, ok := interestQueries[entity]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown entity type %q", entity))
	}

	interests := []string{}
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			interests = append(interests, name)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Str("entity", string(entity)).Msg("Error loading interests")
		return nil, fmt.Errorf("error loading interests: %w", err)
	}

	logger.Debug().Int64("id", id).Str("entity", string(entity)).Int("count", len(interests)).Msg("Interests loaded")
	return interests, nil
}
