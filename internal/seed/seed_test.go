package seed

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/extension-registry/internal/app/models"
	appRepos "github.com/yigit/extension-registry/internal/app/repositories"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

// useSampleSet swaps the sample data for the duration of the test
func useSampleSet(t *testing.T, profs []professorSeed, projs []projectSeed) {
	t.Helper()
	oldProfs, oldStudents, oldAreas, oldProjects := professors, students, areas, projects
	t.Cleanup(func() {
		professors, students, areas, projects = oldProfs, oldStudents, oldAreas, oldProjects
	})
	professors, students, areas, projects = profs, nil, nil, projs
}

var carla = professorSeed{"carla", appModels.ProfessorInput{FullName: "Carla Lima", Email: "carla.lima@uni.edu", StaffID: "P-1001"}}

var projectColumns = []string{
	"id", "title", "description", "start_date", "expected_end_date", "status", "advisor_id", "full_name",
}

// expectExistingCarla scripts a professor insert rejected on the email and the id lookup after it
func expectExistingCarla(mock pgxmock.PgxPoolIface) {
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Carla Lima", "carla.lima@uni.edu", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = $1")).
		WithArgs("carla.lima@uni.edu").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
}

func TestCreateSampleDataSkipsExistingRows(t *testing.T) {
	useSampleSet(t, []professorSeed{carla}, []projectSeed{
		{key: "robotics", title: "Robotics Workshops", status: appModels.StatusProposed, advisor: "carla"},
	})

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectExistingCarla(mock)
	mock.ExpectQuery("WHERE p.advisor_id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(projectColumns).AddRow(
			int64(1), "Robotics Workshops", "", time.Now().UTC(), pgtype.Date{}, "Proposed", int64(2), "Carla Lima"))

	repos := appRepos.NewRepositories(db.Fixed(mock), true)
	require.NoError(t, NewSeeder(repos, zerolog.Nop()).Seed(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSampleDataLinksNewRowsToExistingUsers(t *testing.T) {
	useSampleSet(t, []professorSeed{carla}, []projectSeed{
		{key: "assistive", title: "Assistive Devices Lab", status: appModels.StatusProposed, advisor: "carla"},
	})

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectExistingCarla(mock)
	mock.ExpectQuery("WHERE p.advisor_id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(projectColumns))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO projects").
		WithArgs("Assistive Devices Lab", pgtype.Text{}, pgxmock.AnyArg(), pgtype.Date{}, "Proposed", int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	repos := appRepos.NewRepositories(db.Fixed(mock), true)
	require.NoError(t, CreateSampleData(context.Background(), repos, zerolog.Nop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSampleDataWithoutConnection(t *testing.T) {
	repos := appRepos.NewRepositories(db.Fixed(nil), true)
	err := CreateSampleData(context.Background(), repos, zerolog.Nop())
	assert.ErrorIs(t, err, apperrors.ErrConnectivity)
}

func TestSampleDataIsConsistent(t *testing.T) {
	keys := map[string]bool{}
	for _, p := range professors {
		keys[p.key] = true
	}
	for _, s := range students {
		keys[s.key] = true
	}
	areaSet := map[string]bool{}
	for _, a := range areas {
		areaSet[a] = true
	}

	for _, p := range projects {
		assert.True(t, p.status.Valid(), p.key)
		assert.True(t, keys[p.advisor], p.key)
		for _, a := range p.areas {
			assert.True(t, areaSet[a], "%s: area %s", p.key, a)
		}
		for _, s := range p.students {
			assert.True(t, keys[s], "%s: student %s", p.key, s)
		}
	}
	assert.Contains(t, appModels.ProjectStatuses, appModels.StatusProposed)
}
