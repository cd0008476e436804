package middleware

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

func TestChainRecoversPanics(t *testing.T) {
	action := Chain("boom", func(context.Context) error {
		panic("nil map")
	})

	err := action(context.Background())
	assert.ErrorIs(t, err, ErrActionPanicked)
	assert.Contains(t, err.Error(), "nil map")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"guard", &apperrors.GuardError{Err: apperrors.ErrProfessorHasProjects, Count: 2}, "still advises 2 project(s)"},
		{"connectivity", fmt.Errorf("error listing: %w", apperrors.ErrConnectivity), "Could not reach the database"},
		{"not found", apperrors.ErrStudentNotFound, "Not found: resource not found: student"},
		{"constraint", fmt.Errorf("%w (users_email_key)", apperrors.ErrEmailAlreadyExists), "email already in use"},
		{"nothing", apperrors.ErrNothingToUpdate, "Nothing to update."},
		{"validation message", apperrors.NewValidationError("semester must be a positive number"), "semester must be a positive number"},
		{"generation", fmt.Errorf("%w: quota", apperrors.ErrGenerationFailed), "could not answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Describe(tt.err), tt.want)
		})
	}
}

func TestHandleActionError(t *testing.T) {
	var out bytes.Buffer
	HandleActionError(&out, apperrors.ErrProjectNotFound)
	assert.Contains(t, out.String(), "Warning:")

	out.Reset()
	HandleActionError(&out, apperrors.ErrConnectivity)
	assert.Contains(t, out.String(), "Error:")

	out.Reset()
	HandleActionError(&out, nil)
	assert.Empty(t, out.String())
}
