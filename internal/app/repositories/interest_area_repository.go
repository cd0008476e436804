package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/dberrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"github.com/yigit/extension-registry/internal/pkg/validation"
)

// InterestAreaRepository handles database operations for interest areas
type InterestAreaRepository struct {
	db db.Provider
}

// NewInterestAreaRepository creates a new interest area repository
func NewInterestAreaRepository(provider db.Provider) *InterestAreaRepository {
	return &InterestAreaRepository{db: provider}
}

// Create inserts an interest area and returns its id
func (r *InterestAreaRepository) Create(ctx context.Context, name string) (int64, error) {
	if err := validation.Struct(struct {
		Name string `validate:"required,notblank,max=100"`
	}{name}); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO interest_areas (name)
		VALUES ($1)
		RETURNING id
	`

	var id int64
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		return conn.QueryRow(ctx, query, name).Scan(&id)
	})
	if err != nil {
		err = dberrors.Translate(err)
		logger.Warn().Err(err).Str("name", name).Msg("Interest area not created")
		return 0, err
	}

	logger.Info().Int64("areaID", id).Str("name", name).Msg("Interest area created successfully")
	return id, nil
}

// FindByName retrieves an interest area by its exact name
func (r *InterestAreaRepository) FindByName(ctx context.Context, name string) (*models.InterestArea, error) {
	query := `
		SELECT id, name
		FROM interest_areas
		WHERE name = $1
	`

	var area models.InterestArea
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		return conn.QueryRow(ctx, query, name).Scan(&area.ID, &area.Name)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrInterestAreaNotFound
		}
		return nil, fmt.Errorf("error retrieving interest area: %w", err)
	}
	return &area, nil
}

// ListAll retrieves all interest areas ordered by name
func (r *InterestAreaRepository) ListAll(ctx context.Context) ([]*models.InterestArea, error) {
	query := `
		SELECT id, name
		FROM interest_areas
		ORDER BY name ASC
	`

	areas := []*models.InterestArea{}
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var area models.InterestArea
			if err := rows.Scan(&area.ID, &area.Name); err != nil {
				return err
			}
			areas = append(areas, &area)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error listing interest areas")
		return nil, fmt.Errorf("error listing interest areas: %w", err)
	}
	return areas, nil
}
