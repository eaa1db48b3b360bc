package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when no credential record matches the email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyInUse is returned when registering an email that already has a record.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	// ErrMalformedCatalogItem is returned when a catalog item's amount or deadline cannot be compared.
	ErrMalformedCatalogItem = errors.New("malformed catalog item")
	// ErrUnknownTag is returned when a selected tag is not present in the catalog.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrInvalidQuery is returned when a sort key or direction is not recognised.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRole is returned when registering with a role outside the enumeration.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidIdentity is returned when a registration would produce an identity that cannot be restored.
	ErrInvalidIdentity = errors.New("invalid identity")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched with errors.Is, and the wrapped message is kept so the caller
// can show which item or tag was rejected.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailAlreadyInUse):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_ALREADY_IN_USE")
	case errors.Is(err, ErrUnknownTag):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_TAG")
	case errors.Is(err, ErrInvalidQuery):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUERY")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidIdentity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IDENTITY")
	case errors.Is(err, ErrMalformedCatalogItem):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "MALFORMED_CATALOG_ITEM")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
