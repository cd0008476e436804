package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

func newProfessorRepo(t *testing.T) (*ProfessorRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewProfessorRepository(db.Fixed(mock)), mock
}

func TestProfessorCreateDuplicateStaffID(t *testing.T) {
	repo, mock := newProfessorRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Carla Lima", "carla@uni.edu", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec("INSERT INTO professors").
		WithArgs(int64(2), "P-100", pgtype.Text{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "professors_staff_id_key"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &models.ProfessorInput{
		FullName: "Carla Lima",
		Email:    "carla@uni.edu",
		StaffID:  "P-100",
	})
	assert.ErrorIs(t, err, apperrors.ErrStaffIDExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorGetByIDBlankOffice(t *testing.T) {
	repo, mock := newProfessorRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(p.office, '')")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "email", "staff_id", "office"}).
			AddRow(int64(2), "Carla Lima", "carla@uni.edu", "P-100", ""))

	professor, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "P-100", professor.StaffID)
	assert.Empty(t, professor.Office)
}

func TestProfessorDeleteRefusedWhileAdvising(t *testing.T) {
	repo, mock := newProfessorRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE advisor_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProfessorHasProjects)
	assert.ErrorIs(t, err, apperrors.ErrGuardViolation)

	var guard *apperrors.GuardError
	require.True(t, errors.As(err, &guard))
	assert.Equal(t, 3, guard.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorDelete(t *testing.T) {
	repo, mock := newProfessorRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("SELECT 1 FROM professors r")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorDeleteUnknown(t *testing.T) {
	repo, mock := newProfessorRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
}

func TestProfessorUpdateClearsOffice(t *testing.T) {
	repo, mock := newProfessorRepo(t)
	office := ""

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE professors SET office = $1 WHERE user_id = $2")).
		WithArgs(pgtype.Text{}, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), 2, models.ProfessorPatch{Office: &office}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorUpdateAppliesCreateRules(t *testing.T) {
	blank := " "
	longOffice := strings.Repeat("B", 51)
	tests := []struct {
		name  string
		patch models.ProfessorPatch
		field string
	}{
		{"blank name", models.ProfessorPatch{FullName: &blank}, "FullName"},
		{"blank staff id", models.ProfessorPatch{StaffID: &blank}, "StaffID"},
		{"long office", models.ProfessorPatch{Office: &longOffice}, "Office"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newProfessorRepo(t)

			err := repo.Update(context.Background(), 2, tt.patch)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.field)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfessorCountAdvisedProjects(t *testing.T) {
	repo, mock := newProfessorRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE advisor_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountAdvisedProjects(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
