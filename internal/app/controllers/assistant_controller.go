package controllers

import (
	"context"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/app/services"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
	"github.com/yigit/extension-registry/internal/pkg/render"
)

// Assistant is the generation-backed functionality offered by the assistant menu
type Assistant interface {
	SuggestWithProfessor(ctx context.Context, studentID, professorID int64) (*services.Suggestion, error)
	DiscoverAdvisors(ctx context.Context, studentID int64) (*services.Suggestion, error)
	AskSQL(ctx context.Context, question string) (*models.QueryResult, error)
}

// AssistantController handles the AI assistant menu
type AssistantController struct {
	base
	assistant Assistant
	readOnly  bool
}

// NewAssistantController creates a new AssistantController. readOnly only changes
// the notice shown before generated statements run.
func NewAssistantController(p *prompt.Prompter, assistant Assistant, readOnly bool) *AssistantController {
	return &AssistantController{base: base{p: p}, assistant: assistant, readOnly: readOnly}
}

func (c *AssistantController) showSuggestion(s *services.Suggestion) {
	for _, w := range s.Warnings {
		c.warn("%s", w)
	}
	c.p.Println(render.Markdown(s.Text, render.DefaultWidth))
}

// SuggestWithProfessor proposes project ideas for a student and professor pair
func (c *AssistantController) SuggestWithProfessor(ctx context.Context) error {
	studentID, err := c.p.Int("Student id")
	if err != nil {
		return err
	}
	professorID, err := c.p.Int("Professor id")
	if err != nil {
		return err
	}

	c.p.Println("Generating suggestions...")
	suggestion, err := c.assistant.SuggestWithProfessor(ctx, studentID, professorID)
	if err != nil {
		return err
	}
	c.showSuggestion(suggestion)
	return nil
}

// DiscoverAdvisors proposes project themes and advisor profiles for a student
func (c *AssistantController) DiscoverAdvisors(ctx context.Context) error {
	studentID, err := c.p.Int("Student id")
	if err != nil {
		return err
	}

	c.p.Println("Generating suggestions...")
	suggestion, err := c.assistant.DiscoverAdvisors(ctx, studentID)
	if err != nil {
		return err
	}
	c.showSuggestion(suggestion)
	return nil
}

// AskSQL turns a question into SQL, runs it and shows the outcome
func (c *AssistantController) AskSQL(ctx context.Context) error {
	question, err := c.p.Required("Question")
	if err != nil {
		return err
	}
	if c.readOnly {
		c.p.Println("Generated statements run in a read-only transaction.")
	} else {
		c.warn("Generated statements run with write access.")
	}

	result, err := c.assistant.AskSQL(ctx, question)
	if result != nil && result.Statement != "" {
		c.p.Println(render.Title("SQL"))
		c.p.Println(result.Statement)
	}
	if err != nil {
		return err
	}
	c.p.Println(render.QueryTable(result))
	return nil
}
