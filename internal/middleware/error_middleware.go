package middleware

import (
	"errors"
	"fmt"
	"io"

	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/render"
)

// ErrActionPanicked marks an action that panicked and was recovered
var ErrActionPanicked = errors.New("unexpected failure")

// Describe converts an error into the single line shown to the user
func Describe(err error) string {
	var guard *apperrors.GuardError
	var custom *apperrors.CustomError

	switch {
	case errors.As(err, &guard):
		if errors.Is(guard, apperrors.ErrProfessorHasProjects) {
			return fmt.Sprintf("Refused: the professor still advises %d project(s). Reassign or delete them first.", guard.Count)
		}
		return fmt.Sprintf("Refused: %v", guard)
	case errors.Is(err, apperrors.ErrConnectivity):
		return "Could not reach the database; the operation was aborted. Check the DB_* settings."
	case errors.Is(err, apperrors.ErrNothingToUpdate):
		return "Nothing to update."
	case errors.Is(err, apperrors.ErrConfirmationMismatch):
		return "Confirmation text did not match; nothing was dropped."
	case errors.Is(err, apperrors.ErrGenerationUnavailable):
		return "The assistant is not configured: " + err.Error()
	case errors.Is(err, apperrors.ErrGenerationFailed):
		return "The assistant could not answer: " + err.Error()
	case errors.As(err, &custom):
		return custom.Error()
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return "Not found: " + err.Error()
	case errors.Is(err, apperrors.ErrConstraintViolation):
		return "Rejected by the database: " + err.Error()
	case errors.Is(err, apperrors.ErrValidationFailed):
		return "Invalid input: " + err.Error()
	case errors.Is(err, ErrActionPanicked):
		return "Unexpected failure: " + err.Error()
	default:
		return "Operation failed: " + err.Error()
	}
}

// IsNotice reports whether err is a normal outcome rather than a failure
func IsNotice(err error) bool {
	return apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrNothingToUpdate,
		apperrors.ErrNoStudentInterests,
		apperrors.ErrNoProfessorInterests,
	)
}

// HandleActionError prints err for the user. Not-found style outcomes are shown as
// warnings, everything else as an error.
func HandleActionError(out io.Writer, err error) {
	if err == nil {
		return
	}
	if IsNotice(err) {
		fmt.Fprintln(out, render.Warning(Describe(err)))
		return
	}
	fmt.Fprintln(out, render.Error(Describe(err)))
}
