package api

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrUnauthenticated covers missing tokens and rejected credentials.
	ErrUnauthenticated = errors.New("api: unauthenticated")
	// ErrNotFound covers 404 responses for known resource lookups.
	ErrNotFound = errors.New("api: resource not found")
	// ErrNetwork covers requests that never reached the server.
	ErrNetwork = errors.New("api: network error")
	// ErrServer covers non-2xx responses that are not auth, not-found, or
	// validation shaped.
	ErrServer = errors.New("api: server error")
)

const (
	codeUnauthenticated = "PORTFOLIO_UNAUTHENTICATED"
	codeNotFound        = "PORTFOLIO_NOT_FOUND"
	codeValidation      = "PORTFOLIO_VALIDATION_FAILED"
	codeNetwork         = "PORTFOLIO_NETWORK_ERROR"
	codeServer          = "PORTFOLIO_SERVER_ERROR"
)

// ValidationError carries the offending field so the view can render the
// failure inline next to it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: validation failed for %q", e.Field)
	}
	return fmt.Sprintf("api: validation failed for %q: %s", e.Field, e.Message)
}

// NewValidationError builds a field-addressed validation failure.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Categorize wraps a client error with its go-errors category and text code
// so callers can branch on taxonomy without string matching. Already
// wrapped errors pass through untouched.
func Categorize(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return goerrors.Wrap(err, goerrors.CategoryAuth, "authentication required").
			WithTextCode(codeUnauthenticated)
	case errors.Is(err, ErrNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "resource not found").
			WithTextCode(codeNotFound)
	case errors.As(err, &validationErr):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "validation failed").
			WithTextCode(codeValidation)
	case errors.Is(err, ErrNetwork):
		return goerrors.Wrap(err, goerrors.CategoryExternal, "backend unreachable").
			WithTextCode(codeNetwork)
	case errors.Is(err, ErrServer):
		return goerrors.Wrap(err, goerrors.CategoryExternal, "backend rejected request").
			WithTextCode(codeServer)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "unexpected client error")
}
