package services

// Services defined in this package:
// - AssistantService: interest-based suggestions and natural language to SQL
// - ReportService: chartable report series
// - SchemaService: schema creation, seeding and the guarded drop

import (
	"github.com/yigit/extension-registry/internal/app/repositories"
	"github.com/yigit/extension-registry/internal/pkg/llm"
)

// Services holds all the service instances
type Services struct {
	AssistantService *AssistantService
	ReportService    *ReportService
	SchemaService    *SchemaService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, client llm.Client, migrator Migrator, seeder Seeder) *Services {
	return &Services{
		AssistantService: NewAssistantService(repos.InterestRepository, repos.StatementExecutor, client),
		ReportService:    NewReportService(repos.ReportRepository, repos.ProjectRepository),
		SchemaService:    NewSchemaService(migrator, seeder),
	}
}
