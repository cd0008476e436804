package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

const (
	areaPopularityQuery = `
		SELECT ia.name, COUNT(DISTINCT sp.student_id)::int AS student_count
		FROM interest_areas ia
		JOIN project_areas pa ON pa.area_id = ia.id
		JOIN student_projects sp ON sp.project_id = pa.project_id
		GROUP BY ia.name
		ORDER BY student_count DESC, ia.name ASC
	`

	advisorRankingQuery = `
		SELECT u.full_name, COUNT(p.id)::int AS project_count
		FROM professors prof
		JOIN users u ON u.id = prof.user_id
		JOIN projects p ON p.advisor_id = prof.user_id
		WHERE p.status = ANY($1)
		GROUP BY u.id, u.full_name
		ORDER BY project_count ASC, u.full_name ASC
	`

	openVacanciesQuery = `
		SELECT p.title || ' (' || u.full_name || ')', SUM(v.positions)::int AS open_positions
		FROM vacancies v
		JOIN projects p ON p.id = v.project_id
		JOIN users u ON u.id = p.advisor_id
		WHERE v.application_deadline > CURRENT_TIMESTAMP
		GROUP BY p.id, p.title, u.full_name
		ORDER BY open_positions DESC, p.title ASC
	`
)

// ReportRepository runs the read-only report queries
type ReportRepository struct {
	db db.Provider
}

// NewReportRepository creates a new report repository
func NewReportRepository(provider db.Provider) *ReportRepository {
	return &ReportRepository{db: provider}
}

// AreaPopularity counts distinct participating students per interest area
func (r *ReportRepository) AreaPopularity(ctx context.Context) ([]models.ReportRow, error) {
	return r.rows(ctx, "area popularity", areaPopularityQuery)
}

// AdvisorRanking counts active projects per professor, fewest first
func (r *ReportRepository) AdvisorRanking(ctx context.Context) ([]models.ReportRow, error) {
	active := make([]string, 0, len(models.ActiveStatuses))
	for _, s := range models.ActiveStatuses {
		active = append(active, string(s))
	}
	return r.rows(ctx, "advisor ranking", advisorRankingQuery, active)
}

// OpenVacancies sums the open positions per project whose deadline has not passed
func (r *ReportRepository) OpenVacancies(ctx context.Context) ([]models.ReportRow, error) {
	return r.rows(ctx, "open vacancies", openVacanciesQuery)
}

func (r *ReportRepository) rows(ctx context.Context, name, query string, args ...any) ([]models.ReportRow, error) {
	result := []models.ReportRow{}
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row models.ReportRow
			if err := rows.Scan(&row.Label, &row.Value); err != nil {
				return err
			}
			result = append(result, row)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Str("report", name).Msg("Error running report")
		return nil, fmt.Errorf("error running %s report: %w", name, err)
	}
	return result, nil
}
