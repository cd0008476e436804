package models

import "time"

// Project defines an extension project ('projects' table)
type Project struct {
	ID              int64         `db:"id"`
	Title           string        `db:"title"`
	Description     string        `db:"description"`
	StartDate       time.Time     `db:"start_date"`
	ExpectedEndDate *time.Time    `db:"expected_end_date"` // Nullable
	Status          ProjectStatus `db:"status"`
	AdvisorID       int64         `db:"advisor_id"`

	// Populated by listing queries that join the advisor's user row
	AdvisorName string
}

// ProjectInput carries the fields accepted when creating a project
type ProjectInput struct {
	Title           string        `validate:"required,notblank,max=200"`
	Description     string        `validate:"max=2000"`
	StartDate       time.Time     `validate:"required"`
	ExpectedEndDate *time.Time
	Status          ProjectStatus `validate:"required"`
	AdvisorID       int64         `validate:"gt=0"`
}

// ProjectPatch holds the fields to change on an existing project
type ProjectPatch struct {
	Title           *string
	Description     *string
	StartDate       *time.Time
	ExpectedEndDate *time.Time
	Status          *ProjectStatus
	AdvisorID       *int64

	// ClearExpectedEndDate sets the expected end date back to NULL; it wins over ExpectedEndDate
	ClearExpectedEndDate bool
}

// Empty reports whether the patch changes nothing
func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil &&
		p.ExpectedEndDate == nil && p.Status == nil && p.AdvisorID == nil && !p.ClearExpectedEndDate
}

// EndDate resolves the expected end date after the patch, given the stored one
func (p ProjectPatch) EndDate(stored *time.Time) *time.Time {
	switch {
	case p.ClearExpectedEndDate:
		return nil
	case p.ExpectedEndDate != nil:
		return p.ExpectedEndDate
	default:
		return stored
	}
}

// Columns returns the projects-table columns present in the patch
func (p ProjectPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.ClearExpectedEndDate {
		cols["expected_end_date"] = nil
	} else if p.ExpectedEndDate != nil {
		cols["expected_end_date"] = *p.ExpectedEndDate
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.AdvisorID != nil {
		cols["advisor_id"] = *p.AdvisorID
	}
	return cols
}

// DatesConsistent reports whether start does not fall after the expected end
func DatesConsistent(start time.Time, expectedEnd *time.Time) bool {
	return expectedEnd == nil || !start.After(*expectedEnd)
}

// AdvisorSummary is one row of the projects-per-advisor report
type AdvisorSummary struct {
	ProfessorID   int64
	ProfessorName string
	ProjectCount  int
}

// Vacancy is a batch of open positions on a project ('vacancies' table)
type Vacancy struct {
	ID                  int64     `db:"id"`
	ProjectID           int64     `db:"project_id"`
	Positions           int       `db:"positions"`
	ApplicationDeadline time.Time `db:"application_deadline"`
}
