package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nfrund/ipadmin/internal/domain"
)

// APIError is returned when the practice API answers with a non-2xx status.
// Its message is the one shown to staff, e.g. "Failed to update patient".
type APIError struct {
	Op         string
	StatusCode int
	// WithStatus appends the HTTP status text to the message.
	WithStatus bool
}

func (e *APIError) Error() string {
	if e.WithStatus {
		return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.StatusCode))
	}
	return e.Op
}

// Is lets callers test a 404 against domain.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode extracts the upstream status from err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
