package controllers

import (
	"fmt"
	"strconv"

	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
	"github.com/yigit/extension-registry/internal/pkg/render"
)

// clearValue typed at an optional prompt empties the stored value
const clearValue = "-"

// base carries the console shared by every controller
type base struct {
	p *prompt.Prompter
}

func (b base) success(format string, args ...any) {
	b.p.Println(render.Success(fmt.Sprintf(format, args...)))
}

func (b base) warn(format string, args ...any) {
	b.p.Println(render.Warning(fmt.Sprintf(format, args...)))
}

func (b base) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		b.p.Println("(no records)")
		return
	}
	b.p.Println(render.Table(headers, rows))
}

// askStatus asks until a known project status is entered. Blank input returns nil when
// optional is set.
func (b base) askStatus(label string, optional bool) (*models.ProjectStatus, error) {
	for {
		answer, err := b.p.Line(label + " (" + statusChoices() + ")")
		if err != nil {
			return nil, err
		}
		if answer == "" && optional {
			return nil, nil
		}
		status, parseErr := models.ParseProjectStatus(answer)
		if parseErr == nil {
			return &status, nil
		}
		b.p.Println(parseErr.Error())
	}
}

func statusChoices() string {
	choices := ""
	for i, s := range models.ProjectStatuses {
		if i > 0 {
			choices += " / "
		}
		choices += string(s)
	}
	return choices
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func intOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
