package controllers

import (
	"context"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
)

// InterestAreaStore is the persistence the interest area menu needs
type InterestAreaStore interface {
	Create(ctx context.Context, name string) (int64, error)
	ListAll(ctx context.Context) ([]*models.InterestArea, error)
}

// InterestAreaController handles the interest area menu
type InterestAreaController struct {
	base
	areas InterestAreaStore
}

// NewInterestAreaController creates a new InterestAreaController
func NewInterestAreaController(p *prompt.Prompter, areas InterestAreaStore) *InterestAreaController {
	return &InterestAreaController{base: base{p: p}, areas: areas}
}

// Create adds an interest area
func (c *InterestAreaController) Create(ctx context.Context) error {
	name, err := c.p.Required("Area name")
	if err != nil {
		return err
	}
	id, err := c.areas.Create(ctx, name)
	if err != nil {
		return err
	}
	c.success("Interest area created with id %d.", id)
	return nil
}

// List shows every interest area
func (c *InterestAreaController) List(ctx context.Context) error {
	areas, err := c.areas.ListAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(areas))
	for _, a := range areas {
		rows = append(rows, []string{itoa(a.ID), a.Name})
	}
	c.table([]string{"ID", "Name"}, rows)
	return nil
}
