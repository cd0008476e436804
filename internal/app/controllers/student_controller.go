package controllers

import (
	"context"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
)

// StudentStore is the persistence the student menu needs
type StudentStore interface {
	Create(ctx context.Context, input *models.StudentInput) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ListAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id int64, patch models.StudentPatch) error
	Delete(ctx context.Context, id int64) error
}

var studentHeaders = []string{"ID", "Name", "Email", "Registration", "Semester"}

// StudentController handles the student menu
type StudentController struct {
	base
	students StudentStore
}

// NewStudentController creates a new StudentController
func NewStudentController(p *prompt.Prompter, students StudentStore) *StudentController {
	return &StudentController{base: base{p: p}, students: students}
}

func studentRow(s *models.Student) []string {
	return []string{itoa(s.UserID), s.User.FullName, s.User.Email, s.RegistrationNumber, intOrDash(s.Semester)}
}

// Create asks for a new student's fields and stores them
func (c *StudentController) Create(ctx context.Context) error {
	var input models.StudentInput
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
	if input.RegistrationNumber, err = c.p.Required("Registration number"); err != nil {
		return err
	}
	semester, err := c.p.OptionalInt("Semester (blank if unknown)")
	if err != nil {
		return err
	}
	if semester != nil {
		input.Semester = *semester
	}

	id, err := c.students.Create(ctx, &input)
	if err != nil {
		return err
	}
	c.success("Student created with id %d.", id)
	return nil
}

// Get shows one student
func (c *StudentController) Get(ctx context.Context) error {
	id, err := c.p.Int("Student id")
	if err != nil {
		return err
	}
	student, err := c.students.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.table(studentHeaders, [][]string{studentRow(student)})
	return nil
}

// List shows every student ordered by name
func (c *StudentController) List(ctx context.Context) error {
	students, err := c.students.ListAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, studentRow(s))
	}
	c.table(studentHeaders, rows)
	return nil
}

// Update asks for the fields to change; blank answers keep the stored value
func (c *StudentController) Update(ctx context.Context) error {
	id, err := c.p.Int("Student id")
	if err != nil {
		return err
	}
	c.p.Println("Leave a field blank to keep its current value.")

	var patch models.StudentPatch
	if patch.FullName, err = c.p.Optional("Full name"); err != nil {
		return err
	}
	if patch.Email, err = c.p.Optional("Email"); err != nil {
		return err
	}
	if patch.Password, err = c.p.Optional("Password"); err != nil {
		return err
	}
	if patch.RegistrationNumber, err = c.p.Optional("Registration number"); err != nil {
		return err
	}
	if patch.Semester, err = c.p.OptionalInt("Semester"); err != nil {
		return err
	}

	if err := c.students.Update(ctx, id, patch); err != nil {
		return err
	}
	c.success("Student %d updated.", id)
	return nil
}

// Delete removes a student after confirmation
func (c *StudentController) Delete(ctx context.Context) error {
	id, err := c.p.Int("Student id")
	if err != nil {
		return err
	}
	ok, err := c.p.Confirm("Delete this student and all of their project participations?")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Cancelled.")
		return nil
	}

	if err := c.students.Delete(ctx, id); err != nil {
		return err
	}
	c.success("Student %d deleted.", id)
	return nil
}
