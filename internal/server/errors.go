package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-gap-navigator/internal/db"
	"github.com/jonathan/skill-gap-navigator/internal/intake"
	"github.com/jonathan/skill-gap-navigator/internal/pipeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates the request carries no usable identity
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized"
}

// validationFailure converts validator output into a single ErrValidation naming every failed field.
func validationFailure(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ErrValidation{Message: err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return &ErrValidation{Field: verrs[0].Field(), Message: strings.Join(fields, "; ")}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		notFound     *ErrNotFound
		unauthorized *ErrUnauthorized
		roleNotFound *pipeline.ErrJobRoleNotFound
		noResume     *pipeline.ErrNoResume
		noAnalysis   *db.ErrNoAnalysis
		stepNotFound *db.ErrStepNotFound
		verrs        validator.ValidationErrors
		unsupported  *intake.ErrUnsupportedType
		tooLarge     *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &verrs),
		errors.As(err, &noResume), errors.As(err, &noAnalysis):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, intake.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound), errors.As(err, &roleNotFound), errors.As(err, &stepNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
