package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Connectivity errors
	ErrConnectivity = errors.New("database unavailable")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrNothingToUpdate  = errors.New("nothing to update")

	// Constraint errors
	ErrConstraintViolation = errors.New("constraint violation")
	ErrForeignKeyViolation = fmt.Errorf("%w: foreign key", ErrConstraintViolation)

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Business rule guards
	ErrGuardViolation = errors.New("operation refused")

	// Administrative confirmation
	ErrConfirmationMismatch = errors.New("confirmation text does not match")

	// External generation service
	ErrGenerationFailed      = errors.New("text generation failed")
	ErrGenerationUnavailable = fmt.Errorf("%w: generation service is not configured", ErrGenerationFailed)
)

// User errors
var (
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already in use", ErrConstraintViolation)
)

// Student errors
var (
	ErrStudentNotFound    = fmt.Errorf("%w: student", ErrResourceNotFound)
	ErrRegistrationExists = fmt.Errorf("%w: registration number already in use", ErrConstraintViolation)
	ErrNoStudentInterests = errors.New("student has no interest areas")
)

// Professor errors
var (
	ErrProfessorNotFound    = fmt.Errorf("%w: professor", ErrResourceNotFound)
	ErrStaffIDExists        = fmt.Errorf("%w: staff id already in use", ErrConstraintViolation)
	ErrProfessorHasProjects = fmt.Errorf("%w: professor still advises projects", ErrGuardViolation)
	ErrNoProfessorInterests = errors.New("professor has no interest areas")
)

// Project errors
var (
	ErrProjectNotFound      = fmt.Errorf("%w: project", ErrResourceNotFound)
	ErrAdvisorNotFound      = fmt.Errorf("%w: advisor does not exist", ErrForeignKeyViolation)
	ErrInvalidProjectStatus = fmt.Errorf("%w: unknown project status", ErrValidationFailed)
	ErrInvalidProjectDates  = fmt.Errorf("%w: start date is after expected end date", ErrValidationFailed)
	ErrAlreadyParticipating = fmt.Errorf("%w: student already participates in project", ErrConstraintViolation)
)

// Interest area errors
var (
	ErrInterestAreaNotFound = fmt.Errorf("%w: interest area", ErrResourceNotFound)
	ErrInterestAreaExists   = fmt.Errorf("%w: interest area already exists", ErrConstraintViolation)
)

// GuardError reports a refused operation together with the number of rows that block it.
type GuardError struct {
	Err   error
	Count int
}

// Error implements error interface
func (e *GuardError) Error() string {
	return fmt.Sprintf("%v (%d)", e.Err, e.Count)
}

// Unwrap implements errors.Unwrap interface
func (e *GuardError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError pairs a category error with the message shown to the user
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
