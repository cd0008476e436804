package controllers

import (
	"context"
	"time"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
)

// ProjectStore is the persistence the project menu needs
type ProjectStore interface {
	Create(ctx context.Context, input *models.ProjectInput) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	ListAll(ctx context.Context) ([]*models.Project, error)
	ListByAdvisor(ctx context.Context, advisorID int64) ([]*models.Project, error)
	Update(ctx context.Context, id int64, patch models.ProjectPatch) error
	Delete(ctx context.Context, id int64) error
	AssignArea(ctx context.Context, projectID, areaID int64) error
	EnrollStudent(ctx context.Context, projectID, studentID int64) error
	WithdrawStudent(ctx context.Context, projectID, studentID int64) error
	OpenVacancy(ctx context.Context, v *models.Vacancy) error
}

var projectHeaders = []string{"ID", "Title", "Status", "Start", "Expected end", "Advisor"}

// ProjectController handles the project menu
type ProjectController struct {
	base
	projects ProjectStore
}

// NewProjectController creates a new ProjectController
func NewProjectController(p *prompt.Prompter, projects ProjectStore) *ProjectController {
	return &ProjectController{base: base{p: p}, projects: projects}
}

func formatDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format(prompt.DateLayout)
}

func projectRow(p *models.Project) []string {
	advisor := p.AdvisorName
	if advisor == "" {
		advisor = "#" + itoa(p.AdvisorID)
	}
	return []string{
		itoa(p.ID),
		p.Title,
		string(p.Status),
		formatDate(&p.StartDate),
		formatDate(p.ExpectedEndDate),
		advisor,
	}
}

func (c *ProjectController) showProjects(projects []*models.Project) {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, projectRow(p))
	}
	c.table(projectHeaders, rows)
}

// Create asks for a new project's fields and stores it
func (c *ProjectController) Create(ctx context.Context) error {
	var input models.ProjectInput
	var err error

	if input.Title, err = c.p.Required("Title"); err != nil {
		return err
	}
	if input.Description, err = c.p.Line("Description (optional)"); err != nil {
		return err
	}
	if input.StartDate, err = c.p.Date("Start date"); err != nil {
		return err
	}
	if input.ExpectedEndDate, err = c.p.OptionalDate("Expected end date, blank if open"); err != nil {
		return err
	}
	status, err := c.askStatus("Status", false)
	if err != nil {
		return err
	}
	input.Status = *status
	if input.AdvisorID, err = c.p.Int("Advisor professor id"); err != nil {
		return err
	}

	id, err := c.projects.Create(ctx, &input)
	if err != nil {
		return err
	}
	c.success("Project created with id %d.", id)
	return nil
}

// Get shows one project
func (c *ProjectController) Get(ctx context.Context) error {
	id, err := c.p.Int("Project id")
	if err != nil {
		return err
	}
	project, err := c.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.table(projectHeaders, [][]string{projectRow(project)})
	if project.Description != "" {
		c.p.Println(project.Description)
	}
	return nil
}

// List shows every project ordered by title
func (c *ProjectController) List(ctx context.Context) error {
	projects, err := c.projects.ListAll(ctx)
	if err != nil {
		return err
	}
	c.showProjects(projects)
	return nil
}

// ListByAdvisor shows the projects advised by one professor
func (c *ProjectController) ListByAdvisor(ctx context.Context) error {
	advisorID, err := c.p.Int("Advisor professor id")
	if err != nil {
		return err
	}
	projects, err := c.projects.ListByAdvisor(ctx, advisorID)
	if err != nil {
		return err
	}
	c.showProjects(projects)
	return nil
}

// Update asks for the fields to change. Typing "-" for the description or the expected
// end date clears it.
func (c *ProjectController) Update(ctx context.Context) error {
	id, err := c.p.Int("Project id")
	if err != nil {
		return err
	}
	c.p.Println("Leave a field blank to keep its current value.")

	var patch models.ProjectPatch
	if patch.Title, err = c.p.Optional("Title"); err != nil {
		return err
	}
	if patch.Description, err = c.p.Optional("Description (" + clearValue + " to clear)"); err != nil {
		return err
	}
	if patch.Description != nil && *patch.Description == clearValue {
		empty := ""
		patch.Description = &empty
	}
	if patch.StartDate, err = c.p.OptionalDate("Start date"); err != nil {
		return err
	}
	patch.ExpectedEndDate, patch.ClearExpectedEndDate, err = c.p.ClearableDate("Expected end date", clearValue)
	if err != nil {
		return err
	}
	if patch.Status, err = c.askStatus("Status", true); err != nil {
		return err
	}
	advisor, err := c.p.OptionalInt("Advisor professor id")
	if err != nil {
		return err
	}
	if advisor != nil {
		advisorID := int64(*advisor)
		patch.AdvisorID = &advisorID
	}

	if err := c.projects.Update(ctx, id, patch); err != nil {
		return err
	}
	c.success("Project %d updated.", id)
	return nil
}

// Delete removes a project together with its participations, areas and vacancies
func (c *ProjectController) Delete(ctx context.Context) error {
	id, err := c.p.Int("Project id")
	if err != nil {
		return err
	}
	c.warn("Deleting a project also removes its participants, interest areas and vacancies.")
	ok, err := c.p.Confirm("Delete this project?")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Cancelled.")
		return nil
	}

	if err := c.projects.Delete(ctx, id); err != nil {
		return err
	}
	c.success("Project %d deleted.", id)
	return nil
}

// Enroll adds a student to a project
func (c *ProjectController) Enroll(ctx context.Context) error {
	projectID, err := c.p.Int("Project id")
	if err != nil {
		return err
	}
	studentID, err := c.p.Int("Student id")
	if err != nil {
		return err
	}
	if err := c.projects.EnrollStudent(ctx, projectID, studentID); err != nil {
		return err
	}
	c.success("Student %d enrolled in project %d.", studentID, projectID)
	return nil
}

// Withdraw removes a student from a project
func (c *ProjectController) Withdraw(ctx context.Context) error {
	projectID, err := c.p.Int("Project id")
	if err != nil {
		return err
	}
	studentID, err := c.p.Int("Student id")
	if err != nil {
		return err
	}
	if err := c.projects.WithdrawStudent(ctx, projectID, studentID); err != nil {
		return err
	}
	c.success("Student %d withdrawn from project %d.", studentID, projectID)
	return nil
}

// AssignArea tags a project with an interest area
func (c *ProjectController) AssignArea(ctx context.Context) error {
	projectID, err := c.p.Int("Project id")
	if err != nil {
		return err
	}
	areaID, err := c.p.Int("Interest area id")
	if err != nil {
		return err
	}
	if err := c.projects.AssignArea(ctx, projectID, areaID); err != nil {
		return err
	}
	c.success("Area %d assigned to project %d.", areaID, projectID)
	return nil
}

// OpenVacancy opens a batch of positions on a project
func (c *ProjectController) OpenVacancy(ctx context.Context) error {
	vacancy := &models.Vacancy{}
	var err error

	if vacancy.ProjectID, err = c.p.Int("Project id"); err != nil {
		return err
	}
	positions, err := c.p.Int("Positions")
	if err != nil {
		return err
	}
	vacancy.Positions = int(positions)
	if vacancy.ApplicationDeadline, err = c.p.Date("Application deadline"); err != nil {
		return err
	}

	if err := c.projects.OpenVacancy(ctx, vacancy); err != nil {
		return err
	}
	c.success("Vacancy %d opened with %d position(s).", vacancy.ID, vacancy.Positions)
	return nil
}
