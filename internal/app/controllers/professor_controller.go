package controllers

import (
	"context"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
)

// ProfessorStore is the persistence the professor menu needs
type ProfessorStore interface {
	Create(ctx context.Context, input *models.ProfessorInput) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	ListAll(ctx context.Context) ([]*models.Professor, error)
	Update(ctx context.Context, id int64, patch models.ProfessorPatch) error
	Delete(ctx context.Context, id int64) error
	CountAdvisedProjects(ctx context.Context, id int64) (int, error)
}

var professorHeaders = []string{"ID", "Name", "Email", "Staff ID", "Office"}

// ProfessorController handles the professor menu
type ProfessorController struct {
	base
	professors ProfessorStore
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(p *prompt.Prompter, professors ProfessorStore) *ProfessorController {
	return &ProfessorController{base: base{p: p}, professors: professors}
}

func professorRow(p *models.Professor) []string {
	return []string{itoa(p.UserID), p.User.FullName, p.User.Email, p.StaffID, orDash(p.Office)}
}

// Create asks for a new professor's fields and stores them
func (c *ProfessorController) Create(ctx context.Context) error {
	var input models.ProfessorInput
	var err error

	if input.FullName, err = c.p.Required("Full name"); err != nil {
		return err
	}
	if input.Email, err = c.p.Required("Email"); err != nil {
		return err
	}
	if input.Password, err = c.p.Line("Password (blank to set later)"); err != nil {
		return err
	}
	if input.StaffID, err = c.p.Required("Staff id"); err != nil {
		return err
	}
	if input.Office, err = c.p.Line("Office (optional)"); err != nil {
		return err
	}

	id, err := c.professors.Create(ctx, &input)
	if err != nil {
		return err
	}
	c.success("Professor created with id %d.", id)
	return nil
}

// Get shows one professor
func (c *ProfessorController) Get(ctx context.Context) error {
	id, err := c.p.Int("Professor id")
	if err != nil {
		return err
	}
	professor, err := c.professors.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.table(professorHeaders, [][]string{professorRow(professor)})
	return nil
}

// List shows every professor ordered by name
func (c *ProfessorController) List(ctx context.Context) error {
	professors, err := c.professors.ListAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(professors))
	for _, p := range professors {
		rows = append(rows, professorRow(p))
	}
	c.table(professorHeaders, rows)
	return nil
}

// Update asks for the fields to change. Typing "-" for the office clears it.
func (c *ProfessorController) Update(ctx context.Context) error {
	id, err := c.p.Int("Professor id")
	if err != nil {
		return err
	}
	c.p.Println("Leave a field blank to keep its current value.")

	var patch models.ProfessorPatch
	if patch.FullName, err = c.p.Optional("Full name"); err != nil {
		return err
	}
	if patch.Email, err = c.p.Optional("Email"); err != nil {
		return err
	}
	if patch.Password, err = c.p.Optional("Password"); err != nil {
		return err
	}
	if patch.StaffID, err = c.p.Optional("Staff id"); err != nil {
		return err
	}
	if patch.Office, err = c.p.Optional("Office (" + clearValue + " to clear)"); err != nil {
		return err
	}
	if patch.Office != nil && *patch.Office == clearValue {
		empty := ""
		patch.Office = &empty
	}

	if err := c.professors.Update(ctx, id, patch); err != nil {
		return err
	}
	c.success("Professor %d updated.", id)
	return nil
}

// Delete removes a professor who advises no project. The advised count is checked
// before asking for confirmation; the repository checks it again inside the delete.
func (c *ProfessorController) Delete(ctx context.Context) error {
	id, err := c.p.Int("Professor id")
	if err != nil {
		return err
	}
	advised, err := c.professors.CountAdvisedProjects(ctx, id)
	if err != nil {
		return err
	}
	if advised > 0 {
		return &apperrors.GuardError{Err: apperrors.ErrProfessorHasProjects, Count: advised}
	}

	ok, err := c.p.Confirm("Delete this professor?")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Cancelled.")
		return nil
	}

	if err := c.professors.Delete(ctx, id); err != nil {
		return err
	}
	c.success("Professor %d deleted.", id)
	return nil
}
