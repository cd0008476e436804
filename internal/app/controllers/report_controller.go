package controllers

import (
	"context"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
	"github.com/yigit/extension-registry/internal/pkg/render"
)

// ReportSource produces the chartable reports
type ReportSource interface {
	AreaPopularity(ctx context.Context) (*models.Report, error)
	AdvisorRanking(ctx context.Context) (*models.Report, error)
	OpenVacancies(ctx context.Context) (*models.Report, error)
	ProjectsPerAdvisor(ctx context.Context) (*models.Report, error)
	All(ctx context.Context) ([]*models.Report, error)
}

// ReportController draws reports as terminal bar charts
type ReportController struct {
	base
	reports ReportSource
	width   int
}

// NewReportController creates a new ReportController
func NewReportController(p *prompt.Prompter, reports ReportSource) *ReportController {
	return &ReportController{base: base{p: p}, reports: reports, width: render.DefaultWidth}
}

func (c *ReportController) draw(report *models.Report, err error) error {
	if err != nil {
		return err
	}
	c.p.Println(render.BarChart(report, c.width))
	return nil
}

// AreaPopularity charts participating students per interest area
func (c *ReportController) AreaPopularity(ctx context.Context) error {
	return c.draw(c.reports.AreaPopularity(ctx))
}

// AdvisorRanking charts active projects per advisor
func (c *ReportController) AdvisorRanking(ctx context.Context) error {
	return c.draw(c.reports.AdvisorRanking(ctx))
}

// OpenVacancies charts open positions per project
func (c *ReportController) OpenVacancies(ctx context.Context) error {
	return c.draw(c.reports.OpenVacancies(ctx))
}

// ProjectsPerAdvisor charts every professor's project count
func (c *ReportController) ProjectsPerAdvisor(ctx context.Context) error {
	return c.draw(c.reports.ProjectsPerAdvisor(ctx))
}

// All draws every report in turn
func (c *ReportController) All(ctx context.Context) error {
	reports, err := c.reports.All(ctx)
	if err != nil {
		return err
	}
	for _, report := range reports {
		c.p.Println(render.BarChart(report, c.width))
	}
	return nil
}
