package services

import (
	"context"
	"fmt"

	"github.com/yigit/extension-registry/internal/app/models"
)

// ReportSource runs the report queries
type ReportSource interface {
	AreaPopularity(ctx context.Context) ([]models.ReportRow, error)
	AdvisorRanking(ctx context.Context) ([]models.ReportRow, error)
	OpenVacancies(ctx context.Context) ([]models.ReportRow, error)
}

// AdvisorSummarySource aggregates project counts per advisor
type AdvisorSummarySource interface {
	SummaryByAdvisor(ctx context.Context) ([]models.AdvisorSummary, error)
}

// ReportService turns report queries into chartable reports
type ReportService struct {
	reports  ReportSource
	projects AdvisorSummarySource
}

// NewReportService creates a new report service
func NewReportService(reports ReportSource, projects AdvisorSummarySource) *ReportService {
	return &ReportService{
		reports:  reports,
		projects: projects,
	}
}

// AreaPopularity reports distinct participating students per interest area
func (s *ReportService) AreaPopularity(ctx context.Context) (*models.Report, error) {
	rows, err := s.reports.AreaPopularity(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Report{Title: "Area popularity by student engagement", ValueName: "students", Rows: rows}, nil
}

// AdvisorRanking reports active projects per professor
func (s *ReportService) AdvisorRanking(ctx context.Context) (*models.Report, error) {
	rows, err := s.reports.AdvisorRanking(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Report{Title: "Professors by active advising load", ValueName: "active projects", Rows: rows}, nil
}

// OpenVacancies reports open positions per project
func (s *ReportService) OpenVacancies(ctx context.Context) (*models.Report, error) {
	rows, err := s.reports.OpenVacancies(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Report{Title: "Open positions by project", ValueName: "positions", Rows: rows}, nil
}

// ProjectsPerAdvisor reports all projects per professor, including professors without any
func (s *ReportService) ProjectsPerAdvisor(ctx context.Context) (*models.Report, error) {
	summary, err := s.projects.SummaryByAdvisor(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ReportRow, 0, len(summary))
	for _, item := range summary {
		rows = append(rows, models.ReportRow{
			Label: fmt.Sprintf("%s (#%d)", item.ProfessorName, item.ProfessorID),
			Value: item.ProjectCount,
		})
	}
	return &models.Report{Title: "Projects per advisor", ValueName: "projects", Rows: rows}, nil
}

// All runs every report in menu order and stops at the first failure
func (s *ReportService) All(ctx context.Context) ([]*models.Report, error) {
	builders := []func(context.Context) (*models.Report, error){
		s.AreaPopularity,
		s.AdvisorRanking,
		s.OpenVacancies,
		s.ProjectsPerAdvisor,
	}

	reports := make([]*models.Report, 0, len(builders))
	for _, build := range builders {
		report, err := build(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
