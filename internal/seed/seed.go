package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/extension-registry/internal/app/models"
	appRepos "github.com/yigit/extension-registry/internal/app/repositories"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

type professorSeed struct {
	key   string
	input appModels.ProfessorInput
}

type studentSeed struct {
	key   string
	input appModels.StudentInput
}

type projectSeed struct {
	key          string
	title        string
	description  string
	startOffset  int // days from today
	durationDays int // 0 leaves the expected end open
	status       appModels.ProjectStatus
	advisor      string
	areas        []string
	students     []string
	vacancies    []vacancySeed
}

type vacancySeed struct {
	positions    int
	deadlineDays int // days from today, negative for closed calls
}

var professors = []professorSeed{
	{"carla", appModels.ProfessorInput{FullName: "Carla Lima", Email: "carla.lima@uni.edu", StaffID: "P-1001", Office: "B-204"}},
	{"davi", appModels.ProfessorInput{FullName: "Davi Rocha", Email: "davi.rocha@uni.edu", StaffID: "P-1002", Office: "C-110"}},
	{"helena", appModels.ProfessorInput{FullName: "Helena Duarte", Email: "helena.duarte@uni.edu", StaffID: "P-1003"}},
}

var students = []studentSeed{
	{"ana", appModels.StudentInput{FullName: "Ana Souza", Email: "ana.souza@uni.edu", RegistrationNumber: "2023001", Semester: 3}},
	{"bruno", appModels.StudentInput{FullName: "Bruno Alves", Email: "bruno.alves@uni.edu", RegistrationNumber: "2022014", Semester: 5}},
	{"clara", appModels.StudentInput{FullName: "Clara Mendes", Email: "clara.mendes@uni.edu", RegistrationNumber: "2024007", Semester: 1}},
	{"diego", appModels.StudentInput{FullName: "Diego Ferreira", Email: "diego.ferreira@uni.edu", RegistrationNumber: "2021033", Semester: 7}},
	{"elisa", appModels.StudentInput{FullName: "Elisa Prado", Email: "elisa.prado@uni.edu", RegistrationNumber: "2023019"}},
}

var areas = []string{"Education", "Environment", "Health", "Robotics", "Social Inclusion"}

var projects = []projectSeed{
	{
		key: "robotics", title: "Robotics Workshops in Public Schools",
		description: "Weekly robotics workshops for middle school students.",
		startOffset: -120, durationDays: 240, status: appModels.StatusInProgress, advisor: "carla",
		areas: []string{"Robotics", "Education"}, students: []string{"ana", "bruno"},
		vacancies: []vacancySeed{{positions: 3, deadlineDays: 20}},
	},
	{
		key: "gardens", title: "Urban Community Gardens",
		description: "Building and maintaining gardens with neighbourhood associations.",
		startOffset: -400, durationDays: 300, status: appModels.StatusCompleted, advisor: "davi",
		areas: []string{"Environment", "Social Inclusion"}, students: []string{"clara", "diego"},
		vacancies: []vacancySeed{{positions: 2, deadlineDays: -30}},
	},
	{
		key: "health", title: "Health Literacy for Seniors",
		description: "Short courses on medication safety and prevention for elderly residents.",
		startOffset: 15, status: appModels.StatusProposed, advisor: "davi",
		areas: []string{"Health", "Education"}, students: []string{"ana"},
		vacancies: []vacancySeed{{positions: 4, deadlineDays: 10}, {positions: 1, deadlineDays: 45}},
	},
	{
		key: "assistive", title: "Assistive Devices Lab",
		description: "Low-cost assistive devices designed with local disability associations.",
		startOffset: -30, durationDays: 365, status: appModels.StatusInProgress, advisor: "carla",
		areas: []string{"Robotics", "Health", "Social Inclusion"}, students: []string{"diego"},
	},
}

// CreateSampleData creates professors, students, interest areas, projects, participations and
// vacancies. Rows that already exist are skipped one by one: users are matched by email, areas
// by name and projects by title under the same advisor. Other failures are collected and
// returned together.
func CreateSampleData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Creating sample data...")
	var finalErr error // collect errors without stopping the process
	skipped := 0

	userIDs := map[string]int64{}
	for _, p := range professors {
		input := p.input
		id, existed, err := createUser(ctx, repos, input.Email, func() (int64, error) {
			return repos.ProfessorRepository.Create(ctx, &input)
		})
		if errors.Is(err, apperrors.ErrConnectivity) {
			return err
		}
		if err != nil {
			lgr.Error().Err(err).Str("staffID", input.StaffID).Msg("Error creating sample professor")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if existed {
			skipped++
		}
		userIDs[p.key] = id
	}

	for _, s := range students {
		input := s.input
		id, existed, err := createUser(ctx, repos, input.Email, func() (int64, error) {
			return repos.StudentRepository.Create(ctx, &input)
		})
		if err != nil {
			lgr.Error().Err(err).Str("registration", input.RegistrationNumber).Msg("Error creating sample student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if existed {
			skipped++
		}
		userIDs[s.key] = id
	}

	areaIDs := map[string]int64{}
	for _, name := range areas {
		id, err := repos.InterestAreaRepository.Create(ctx, name)
		if errors.Is(err, apperrors.ErrInterestAreaExists) {
			// Reuse the existing row
			area, errGet := repos.InterestAreaRepository.FindByName(ctx, name)
			if errGet != nil {
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			id, err = area.ID, nil
			skipped++
		}
		if err != nil {
			lgr.Error().Err(err).Str("area", name).Msg("Error creating sample interest area")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		areaIDs[name] = id
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, p := range projects {
		created, err := createProject(ctx, repos, p, today, userIDs, areaIDs)
		if err != nil {
			lgr.Error().Err(err).Str("project", p.key).Msg("Error creating sample project")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if !created {
			skipped++
		}
	}

	if finalErr == nil {
		lgr.Info().Int("professors", len(professors)).Int("students", len(students)).
			Int("projects", len(projects)).Int("skipped", skipped).Msg("Sample data created")
	}
	return finalErr
}

// createUser runs create and, when the email is already registered, returns the id of
// the existing user instead.
func createUser(ctx context.Context, repos *appRepos.Repositories, email string,
	create func() (int64, error)) (id int64, existed bool, err error) {
	id, err = create()
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return id, false, err
	}
	id, err = repos.UserRepository.IDByEmail(ctx, email)
	return id, err == nil, err
}

// createProject creates p with its areas, participants and vacancies. It reports false
// without writing when the advisor already has a project with the same title.
func createProject(ctx context.Context, repos *appRepos.Repositories, p projectSeed, today time.Time,
	userIDs, areaIDs map[string]int64) (bool, error) {
	advisorID, ok := userIDs[p.advisor]
	if !ok {
		return false, fmt.Errorf("advisor %q was not created", p.advisor)
	}

	existing, err := repos.ProjectRepository.ListByAdvisor(ctx, advisorID)
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if e.Title == p.title {
			return false, nil
		}
	}

	input := &appModels.ProjectInput{
		Title:       p.title,
		Description: p.description,
		StartDate:   today.AddDate(0, 0, p.startOffset),
		Status:      p.status,
		AdvisorID:   advisorID,
	}
	if p.durationDays > 0 {
		end := input.StartDate.AddDate(0, 0, p.durationDays)
		input.ExpectedEndDate = &end
	}

	projectID, err := repos.ProjectRepository.Create(ctx, input)
	if err != nil {
		return false, err
	}

	var finalErr error
	for _, area := range p.areas {
		areaID, ok := areaIDs[area]
		if !ok {
			continue
		}
		finalErr = errors.Join(finalErr, repos.ProjectRepository.AssignArea(ctx, projectID, areaID))
	}
	for _, student := range p.students {
		studentID, ok := userIDs[student]
		if !ok {
			continue
		}
		finalErr = errors.Join(finalErr, repos.ProjectRepository.EnrollStudent(ctx, projectID, studentID))
	}
	for _, v := range p.vacancies {
		vacancy := &appModels.Vacancy{
			ProjectID:           projectID,
			Positions:           v.positions,
			ApplicationDeadline: today.AddDate(0, 0, v.deadlineDays),
		}
		finalErr = errors.Join(finalErr, repos.ProjectRepository.OpenVacancy(ctx, vacancy))
	}
	return true, finalErr
}

// Seeder adapts CreateSampleData to the schema service
type Seeder struct {
	repos *appRepos.Repositories
	lgr   zerolog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(repos *appRepos.Repositories, lgr zerolog.Logger) *Seeder {
	return &Seeder{repos: repos, lgr: lgr}
}

// Seed loads the sample data set
func (s *Seeder) Seed(ctx context.Context) error {
	return CreateSampleData(ctx, s.repos, s.lgr)
}
