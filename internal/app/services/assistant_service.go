package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/llm"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// InterestSource loads the interest areas of students and professors
type InterestSource interface {
	InterestsFor(ctx context.Context, id int64, entity models.EntityType) ([]string, error)
}

// StatementRunner executes generated SQL
type StatementRunner interface {
	Execute(ctx context.Context, statement string) (*models.QueryResult, error)
}

// Suggestion is the outcome of one assistant suggestion flow
type Suggestion struct {
	Text               string
	StudentInterests   []string
	ProfessorInterests []string
	CombinedInterests  []string
	Warnings           []string
}

// AssistantService orchestrates interest lookups, prompt construction and generation
type AssistantService struct {
	interests InterestSource
	executor  StatementRunner
	client    llm.Client
}

// NewAssistantService creates a new assistant service
func NewAssistantService(interests InterestSource, executor StatementRunner, client llm.Client) *AssistantService {
	return &AssistantService{
		interests: interests,
		executor:  executor,
		client:    client,
	}
}

// SuggestWithProfessor asks for three project ideas combining a student's and a
// professor's interests. A professor without interests aborts the flow; a student
// without interests only adds a warning.
func (s *AssistantService) SuggestWithProfessor(ctx context.Context, studentID, professorID int64) (*Suggestion, error) {
	studentInterests, err := s.interests.InterestsFor(ctx, studentID, models.EntityStudent)
	if err != nil {
		return nil, err
	}
	professorInterests, err := s.interests.InterestsFor(ctx, professorID, models.EntityProfessor)
	if err != nil {
		return nil, err
	}

	if len(professorInterests) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrNoProfessorInterests,
			fmt.Sprintf("no interest areas found for professor %d, cannot suggest a project", professorID))
	}

	suggestion := &Suggestion{
		StudentInterests:   studentInterests,
		ProfessorInterests: professorInterests,
		CombinedInterests:  combineInterests(studentInterests, professorInterests),
	}
	if len(studentInterests) == 0 {
		suggestion.Warnings = append(suggestion.Warnings,
			fmt.Sprintf("no interest areas found for student %d, the suggestion may be less precise", studentID))
	}

	text, err := s.generateText(ctx, buildPairwisePrompt(studentInterests, professorInterests, suggestion.CombinedInterests))
	if err != nil {
		return nil, err
	}
	suggestion.Text = text
	return suggestion, nil
}

// DiscoverAdvisors asks for advisor profiles and project ideas grounded in a student's
// interests. A student without interests is told to join a project first.
func (s *AssistantService) DiscoverAdvisors(ctx context.Context, studentID int64) (*Suggestion, error) {
	studentInterests, err := s.interests.InterestsFor(ctx, studentID, models.EntityStudent)
	if err != nil {
		return nil, err
	}
	if len(studentInterests) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrNoStudentInterests,
			fmt.Sprintf("no interest areas found for student %d; join a project so your interests can be identified", studentID))
	}

	text, err := s.generateText(ctx, buildDiscoveryPrompt(studentInterests))
	if err != nil {
		return nil, err
	}
	return &Suggestion{Text: text, StudentInterests: studentInterests}, nil
}

// AskSQL translates a question into one SQL statement and runs it
func (s *AssistantService) AskSQL(ctx context.Context, question string) (*models.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.NewValidationError("question cannot be empty")
	}

	text, err := s.generateText(ctx, buildSQLPrompt(SchemaDescription, question))
	if err != nil {
		return nil, err
	}

	statement := cleanSQL(text)
	if statement == "" {
		return nil, fmt.Errorf("%w: no SQL statement in the response", apperrors.ErrGenerationFailed)
	}

	return s.executor.Execute(ctx, statement)
}

// generateText calls the generation service and folds every failure, including a blank
// completion, into ErrGenerationFailed.
func (s *AssistantService) generateText(ctx context.Context, prompt string) (string, error) {
	text, err := s.client.Complete(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("Generation request failed")
		if apperrors.Is(err, apperrors.ErrGenerationFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrGenerationFailed)
	}
	return text, nil
}

// combineInterests returns the sorted union of both lists
func combineInterests(lists ...[]string) []string {
	seen := map[string]struct{}{}
	combined := []string{}
	for _, list := range lists {
		for _, interest := range list {
			if _, ok := seen[interest]; ok {
				continue
			}
			seen[interest] = struct{}{}
			combined = append(combined, interest)
		}
	}
	sort.Strings(combined)
	return combined
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func buildPairwisePrompt(student, professor, combined []string) string {
	var b strings.Builder
	b.WriteString("You are an academic advisor who specializes in innovation.\n")
	b.WriteString("A student and a professor want to develop an extension project together.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Student interest areas (from past projects): %s\n", joinOr(student, "none listed"))
	fmt.Fprintf(&b, "- Professor interest areas (from advised projects): %s\n", joinOr(professor, "none listed"))
	fmt.Fprintf(&b, "- Combined interests: %s\n\n", joinOr(combined, "none listed"))
	b.WriteString("Task:\n")
	b.WriteString("Suggest exactly 3 research or development project ideas that creatively combine both sets of interests.\n")
	b.WriteString("For each idea provide:\n")
	b.WriteString("1. A title.\n")
	b.WriteString("2. A short description (2-3 sentences) of the project's goal.\n")
	b.WriteString("3. The combined areas the project draws on.\n\n")
	b.WriteString("Format the answer as clear, organized markdown.\n")
	return b.String()
}

func buildDiscoveryPrompt(student []string) string {
	var b strings.Builder
	b.WriteString("You are a research assistant for a university.\n")
	b.WriteString("A student needs help finding an advisor and project ideas.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- The student's interest areas, based on projects they joined: %s.\n\n", strings.Join(student, ", "))
	b.WriteString("Task:\n")
	b.WriteString("1. Describe 2 or 3 profiles of professors who would be ideal advisors for this student.\n")
	b.WriteString("2. For each profile, suggest 2 innovative project ideas the student could develop with them.\n")
	b.WriteString("3. Every idea must relate directly to the student's interests.\n\n")
	b.WriteString("Be creative and practical. Format the answer as clear markdown.\n")
	return b.String()
}

func buildSQLPrompt(schema, question string) string {
	var b strings.Builder
	b.WriteString("You translate questions into PostgreSQL for the database described below.\n\n")
	b.WriteString("Schema:\n")
	b.WriteString(schema)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Answer with exactly one SQL statement and nothing else.\n")
	b.WriteString("- Do not add explanations, comments or markdown.\n")
	b.WriteString("- Use only the tables and columns in the schema.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	return b.String()
}

var sqlFence = regexp.MustCompile("(?s)```(?:sql|SQL|postgresql)?\\s*(.*?)```")

// cleanSQL strips markdown fences and trailing semicolons from generated SQL
func cleanSQL(text string) string {
	text = strings.TrimSpace(text)
	if m := sqlFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)
	for strings.HasSuffix(text, ";") {
		text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	}
	return text
}
