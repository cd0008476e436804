package models

import (
	"fmt"
	"strings"
)

// EntityType identifies which specialization of a user an operation targets
type EntityType string

const (
	EntityStudent   EntityType = "student"
	EntityProfessor EntityType = "professor"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

// ProjectStatus constants, stored verbatim in projects.status
const (
	StatusProposed   ProjectStatus = "Proposed"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusCancelled  ProjectStatus = "Cancelled"
)

// ProjectStatuses lists every allowed status in display order
var ProjectStatuses = []ProjectStatus{StatusProposed, StatusInProgress, StatusCompleted, StatusCancelled}

// ActiveStatuses are the statuses counted as ongoing advising work
var ActiveStatuses = []ProjectStatus{StatusProposed, StatusInProgress}

// Valid reports whether s is one of the enumerated statuses
func (s ProjectStatus) Valid() bool {
	for _, known := range ProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseProjectStatus matches input against the known statuses ignoring case and
// surrounding whitespace.
func ParseProjectStatus(input string) (ProjectStatus, error) {
	normalized := strings.TrimSpace(input)
	for _, known := range ProjectStatuses {
		if strings.EqualFold(normalized, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown project status %q", input)
}
