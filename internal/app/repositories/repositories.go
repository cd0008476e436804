package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/extension-registry/internal/app/repositories/user"
	"github.com/yigit/extension-registry/internal/db"
)

// psql builds PostgreSQL statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *user.Repository
	StudentRepository      *user.StudentRepository
	ProfessorRepository    *user.ProfessorRepository
	ProjectRepository      *ProjectRepository
	InterestAreaRepository *InterestAreaRepository
	InterestRepository     *InterestRepository
	ReportRepository       *ReportRepository
	StatementExecutor      *StatementExecutor
}

// NewRepositories initializes all repositories over one connection provider
func NewRepositories(provider db.Provider, readOnlyStatements bool) *Repositories {
	return &Repositories{
		UserRepository:         user.NewRepository(provider),
		StudentRepository:      user.NewStudentRepository(provider),
		ProfessorRepository:    user.NewProfessorRepository(provider),
		ProjectRepository:      NewProjectRepository(provider),
		InterestAreaRepository: NewInterestAreaRepository(provider),
		InterestRepository:     NewInterestRepository(provider),
		ReportRepository:       NewReportRepository(provider),
		StatementExecutor:      NewStatementExecutor(provider, readOnlyStatements),
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
