package controllers

import (
	"context"

	"github.com/yigit/extension-registry/internal/app/services"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
)

// SchemaManager creates, seeds and drops the registry schema
type SchemaManager interface {
	Create(ctx context.Context) (int64, error)
	Seed(ctx context.Context) error
	DropAll(ctx context.Context, confirmation string) error
}

// AdminController handles the schema maintenance entries of the main menu
type AdminController struct {
	base
	schema SchemaManager
}

// NewAdminController creates a new AdminController
func NewAdminController(p *prompt.Prompter, schema SchemaManager) *AdminController {
	return &AdminController{base: base{p: p}, schema: schema}
}

// CreateSchema creates every table that does not exist yet
func (c *AdminController) CreateSchema(ctx context.Context) error {
	version, err := c.schema.Create(ctx)
	if err != nil {
		return err
	}
	c.success("Schema ready (version %d).", version)
	return nil
}

// Seed loads the sample data set
func (c *AdminController) Seed(ctx context.Context) error {
	if err := c.schema.Seed(ctx); err != nil {
		return err
	}
	c.success("Sample data loaded.")
	return nil
}

// DropAll drops every registry table after the confirmation phrase is typed
func (c *AdminController) DropAll(ctx context.Context) error {
	c.warn("This drops every registry table and all of its data.")
	confirmation, err := c.p.Line("Type " + services.DropConfirmation + " to continue")
	if err != nil {
		return err
	}
	if err := c.schema.DropAll(ctx, confirmation); err != nil {
		return err
	}
	c.success("All tables dropped.")
	return nil
}
