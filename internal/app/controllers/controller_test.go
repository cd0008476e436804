package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/app/services"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
)

// scripted returns a prompter fed with one answer per line and the buffer it writes to
func scripted(answers ...string) (*prompt.Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")
	return prompt.New(in, out), out
}

type fakeStudents struct {
	created *models.StudentInput
	patch   models.StudentPatch
	deleted []int64
	list    []*models.Student
	err     error
}

func (f *fakeStudents) Create(_ context.Context, input *models.StudentInput) (int64, error) {
	f.created = input
	return 7, f.err
}

func (f *fakeStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Student{UserID: id, RegistrationNumber: "2024001", User: &models.User{ID: id, FullName: "Ana Lima", Email: "ana@uni.edu"}}, nil
}

func (f *fakeStudents) ListAll(context.Context) ([]*models.Student, error) {
	return f.list, f.err
}

func (f *fakeStudents) Update(_ context.Context, _ int64, patch models.StudentPatch) error {
	f.patch = patch
	return f.err
}

func (f *fakeStudents) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestStudentController(t *testing.T) {
	t.Run("create with unknown semester", func(t *testing.T) {
		store := &fakeStudents{}
		p, out := scripted("Ana Lima", "ana@uni.edu", "", "2024001", "")

		require.NoError(t, NewStudentController(p, store).Create(context.Background()))
		require.NotNil(t, store.created)
		assert.Equal(t, "Ana Lima", store.created.FullName)
		assert.Equal(t, "2024001", store.created.RegistrationNumber)
		assert.Zero(t, store.created.Semester)
		assert.Contains(t, out.String(), "Student created with id 7")
	})

	t.Run("get shows the record", func(t *testing.T) {
		p, out := scripted("3")
		require.NoError(t, NewStudentController(p, &fakeStudents{}).Get(context.Background()))
		assert.Contains(t, out.String(), "Ana Lima")
		assert.Contains(t, out.String(), "2024001")
	})

	t.Run("list without students", func(t *testing.T) {
		p, out := scripted()
		require.NoError(t, NewStudentController(p, &fakeStudents{}).List(context.Background()))
		assert.Contains(t, out.String(), "(no records)")
	})

	t.Run("update keeps blank fields", func(t *testing.T) {
		store := &fakeStudents{}
		p, _ := scripted("4", "", "", "", "", "6")

		require.NoError(t, NewStudentController(p, store).Update(context.Background()))
		assert.Nil(t, store.patch.FullName)
		assert.Nil(t, store.patch.Email)
		require.NotNil(t, store.patch.Semester)
		assert.Equal(t, 6, *store.patch.Semester)
	})

	t.Run("delete cancelled", func(t *testing.T) {
		store := &fakeStudents{}
		p, out := scripted("4", "n")

		require.NoError(t, NewStudentController(p, store).Delete(context.Background()))
		assert.Empty(t, store.deleted)
		assert.Contains(t, out.String(), "Cancelled")
	})

	t.Run("store error is returned", func(t *testing.T) {
		store := &fakeStudents{err: apperrors.ErrStudentNotFound}
		p, _ := scripted("4", "y")

		err := NewStudentController(p, store).Delete(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("input ends", func(t *testing.T) {
		p := prompt.New(strings.NewReader(""), io.Discard)
		err := NewStudentController(p, &fakeStudents{}).Create(context.Background())
		assert.ErrorIs(t, err, io.EOF)
	})
}

type fakeProfessors struct {
	patch   models.ProfessorPatch
	advised int
	deleted bool
}

func (f *fakeProfessors) Create(context.Context, *models.ProfessorInput) (int64, error) {
	return 1, nil
}

func (f *fakeProfessors) GetByID(_ context.Context, id int64) (*models.Professor, error) {
	return &models.Professor{UserID: id, StaffID: "P-01", User: &models.User{ID: id, FullName: "Rui Costa"}}, nil
}

func (f *fakeProfessors) ListAll(context.Context) ([]*models.Professor, error) {
	return nil, nil
}

func (f *fakeProfessors) Update(_ context.Context, _ int64, patch models.ProfessorPatch) error {
	f.patch = patch
	return nil
}

func (f *fakeProfessors) Delete(context.Context, int64) error {
	f.deleted = true
	return nil
}

func (f *fakeProfessors) CountAdvisedProjects(context.Context, int64) (int, error) {
	return f.advised, nil
}

func TestProfessorController(t *testing.T) {
	t.Run("dash clears the office", func(t *testing.T) {
		store := &fakeProfessors{}
		p, _ := scripted("2", "", "", "", "", "-")

		require.NoError(t, NewProfessorController(p, store).Update(context.Background()))
		require.NotNil(t, store.patch.Office)
		assert.Equal(t, "", *store.patch.Office)
	})

	t.Run("delete refused before confirmation", func(t *testing.T) {
		store := &fakeProfessors{advised: 2}
		p, out := scripted("2")

		err := NewProfessorController(p, store).Delete(context.Background())
		var guard *apperrors.GuardError
		require.ErrorAs(t, err, &guard)
		assert.Equal(t, 2, guard.Count)
		assert.False(t, store.deleted)
		assert.NotContains(t, out.String(), "[y/N]")
	})

	t.Run("delete confirmed", func(t *testing.T) {
		store := &fakeProfessors{}
		p, _ := scripted("2", "y")

		require.NoError(t, NewProfessorController(p, store).Delete(context.Background()))
		assert.True(t, store.deleted)
	})

	t.Run("blank office shows a dash", func(t *testing.T) {
		p, out := scripted("2")
		require.NoError(t, NewProfessorController(p, &fakeProfessors{}).Get(context.Background()))
		assert.Contains(t, out.String(), "Rui Costa")
		assert.Contains(t, out.String(), "P-01")
	})
}

type fakeProjects struct {
	ProjectStore
	created *models.ProjectInput
	patch   models.ProjectPatch
	vacancy *models.Vacancy
	deleted bool
}

func (f *fakeProjects) Create(_ context.Context, input *models.ProjectInput) (int64, error) {
	f.created = input
	return 11, nil
}

func (f *fakeProjects) Update(_ context.Context, _ int64, patch models.ProjectPatch) error {
	f.patch = patch
	return nil
}

func (f *fakeProjects) Delete(context.Context, int64) error {
	f.deleted = true
	return nil
}

func (f *fakeProjects) ListByAdvisor(_ context.Context, advisorID int64) ([]*models.Project, error) {
	return []*models.Project{{ID: 1, Title: "Coastal Monitoring", Status: models.StatusInProgress, AdvisorID: advisorID,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}}, nil
}

func (f *fakeProjects) OpenVacancy(_ context.Context, v *models.Vacancy) error {
	v.ID = 5
	f.vacancy = v
	return nil
}

func TestProjectController(t *testing.T) {
	t.Run("create re-asks an unknown status", func(t *testing.T) {
		store := &fakeProjects{}
		p, out := scripted("Coastal Monitoring", "", "2024-03-01", "", "finished", "in progress", "2")

		require.NoError(t, NewProjectController(p, store).Create(context.Background()))
		require.NotNil(t, store.created)
		assert.Equal(t, models.StatusInProgress, store.created.Status)
		assert.Nil(t, store.created.ExpectedEndDate)
		assert.Equal(t, int64(2), store.created.AdvisorID)
		assert.Contains(t, out.String(), "Project created with id 11")
	})

	t.Run("update with status and advisor", func(t *testing.T) {
		store := &fakeProjects{}
		p, _ := scripted("11", "", "-", "", "2024-12-31", "completed", "3")

		require.NoError(t, NewProjectController(p, store).Update(context.Background()))
		require.NotNil(t, store.patch.Description)
		assert.Equal(t, "", *store.patch.Description)
		require.NotNil(t, store.patch.Status)
		assert.Equal(t, models.StatusCompleted, *store.patch.Status)
		require.NotNil(t, store.patch.AdvisorID)
		assert.Equal(t, int64(3), *store.patch.AdvisorID)
		require.NotNil(t, store.patch.ExpectedEndDate)
		assert.Nil(t, store.patch.StartDate)
	})

	t.Run("update clears the expected end date", func(t *testing.T) {
		store := &fakeProjects{}
		p, _ := scripted("11", "", "", "", "-", "", "")

		require.NoError(t, NewProjectController(p, store).Update(context.Background()))
		assert.True(t, store.patch.ClearExpectedEndDate)
		assert.Nil(t, store.patch.ExpectedEndDate)
		assert.Nil(t, store.patch.Description)
	})

	t.Run("delete warns about cascades", func(t *testing.T) {
		store := &fakeProjects{}
		p, out := scripted("11", "yes")

		require.NoError(t, NewProjectController(p, store).Delete(context.Background()))
		assert.True(t, store.deleted)
		assert.Contains(t, out.String(), "participants")
	})

	t.Run("list by advisor", func(t *testing.T) {
		p, out := scripted("2")
		require.NoError(t, NewProjectController(p, &fakeProjects{}).ListByAdvisor(context.Background()))
		assert.Contains(t, out.String(), "Coastal Monitoring")
		assert.Contains(t, out.String(), "2024-03-01")
	})

	t.Run("open vacancy", func(t *testing.T) {
		store := &fakeProjects{}
		p, out := scripted("11", "3", "2030-01-15")

		require.NoError(t, NewProjectController(p, store).OpenVacancy(context.Background()))
		require.NotNil(t, store.vacancy)
		assert.Equal(t, 3, store.vacancy.Positions)
		assert.Contains(t, out.String(), "Vacancy 5 opened")
	})
}

type fakeReports struct {
	err error
}

func (f fakeReports) report(title string) (*models.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Report{Title: title, ValueName: "projects", Rows: []models.ReportRow{{Label: "Robotics", Value: 4}}}, nil
}

func (f fakeReports) AreaPopularity(context.Context) (*models.Report, error) {
	return f.report("Area popularity by student engagement")
}

func (f fakeReports) AdvisorRanking(context.Context) (*models.Report, error) {
	return f.report("Active projects per advisor")
}

func (f fakeReports) OpenVacancies(context.Context) (*models.Report, error) {
	return f.report("Open positions")
}

func (f fakeReports) ProjectsPerAdvisor(context.Context) (*models.Report, error) {
	return f.report("Projects per advisor")
}

func (f fakeReports) All(ctx context.Context) ([]*models.Report, error) {
	a, err := f.AreaPopularity(ctx)
	if err != nil {
		return nil, err
	}
	b, _ := f.OpenVacancies(ctx)
	return []*models.Report{a, b}, nil
}

func TestReportController(t *testing.T) {
	p, out := scripted()
	c := NewReportController(p, fakeReports{})

	require.NoError(t, c.AreaPopularity(context.Background()))
	assert.Contains(t, out.String(), "Robotics")

	require.NoError(t, c.All(context.Background()))
	assert.Contains(t, out.String(), "Open positions")

	failing := NewReportController(p, fakeReports{err: apperrors.ErrConnectivity})
	assert.ErrorIs(t, failing.AdvisorRanking(context.Background()), apperrors.ErrConnectivity)
}

type fakeAssistant struct {
	result *models.QueryResult
	err    error
}

func (f fakeAssistant) SuggestWithProfessor(context.Context, int64, int64) (*services.Suggestion, error) {
	return &services.Suggestion{Text: "1. Soil sensors", Warnings: []string{"the student has no recorded interests"}}, f.err
}

func (f fakeAssistant) DiscoverAdvisors(context.Context, int64) (*services.Suggestion, error) {
	return nil, f.err
}

func (f fakeAssistant) AskSQL(context.Context, string) (*models.QueryResult, error) {
	return f.result, f.err
}

func TestAssistantController(t *testing.T) {
	t.Run("pairwise shows warnings", func(t *testing.T) {
		p, out := scripted("1", "2")
		require.NoError(t, NewAssistantController(p, fakeAssistant{}, true).SuggestWithProfessor(context.Background()))
		assert.Contains(t, out.String(), "no recorded interests")
		assert.Contains(t, out.String(), "Soil sensors")
	})

	t.Run("ask shows statement and rows", func(t *testing.T) {
		result := &models.QueryResult{
			Statement: "SELECT title FROM projects",
			Columns:   []string{"title"},
			Rows:      [][]interface{}{{"Coastal Monitoring"}},
		}
		p, out := scripted("which projects exist?")

		require.NoError(t, NewAssistantController(p, fakeAssistant{result: result}, true).AskSQL(context.Background()))
		assert.Contains(t, out.String(), "read-only")
		assert.Contains(t, out.String(), "SELECT title FROM projects")
		assert.Contains(t, out.String(), "Coastal Monitoring")
	})

	t.Run("failed statement is still shown", func(t *testing.T) {
		result := &models.QueryResult{Statement: "DELETE FROM projects"}
		failure := errors.New("cannot execute DELETE in a read-only transaction")
		p, out := scripted("remove everything")

		err := NewAssistantController(p, fakeAssistant{result: result, err: failure}, true).AskSQL(context.Background())
		assert.ErrorIs(t, err, failure)
		assert.Contains(t, out.String(), "DELETE FROM projects")
	})
}

type fakeSchema struct {
	confirmation string
}

func (f *fakeSchema) Create(context.Context) (int64, error) { return 1, nil }
func (f *fakeSchema) Seed(context.Context) error            { return nil }

func (f *fakeSchema) DropAll(_ context.Context, confirmation string) error {
	f.confirmation = confirmation
	if confirmation != services.DropConfirmation {
		return apperrors.ErrConfirmationMismatch
	}
	return nil
}

func TestAdminController(t *testing.T) {
	t.Run("create reports the version", func(t *testing.T) {
		p, out := scripted()
		require.NoError(t, NewAdminController(p, &fakeSchema{}).CreateSchema(context.Background()))
		assert.Contains(t, out.String(), "version 1")
	})

	t.Run("drop passes the typed phrase", func(t *testing.T) {
		schema := &fakeSchema{}
		p, out := scripted("DROP EVERYTHING")

		require.NoError(t, NewAdminController(p, schema).DropAll(context.Background()))
		assert.Equal(t, services.DropConfirmation, schema.confirmation)
		assert.Contains(t, out.String(), "All tables dropped")
	})

	t.Run("wrong phrase", func(t *testing.T) {
		p, _ := scripted("drop everything")
		err := NewAdminController(p, &fakeSchema{}).DropAll(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrConfirmationMismatch)
	})
}
