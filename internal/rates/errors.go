package rates

import (
	"fmt"
	"net/http"

	"github.com/Veraticus/fxdash/internal/common"
)

// APIError is a classified rate service failure. Kind is one of the
// common error sentinels; Message is safe to show to the user.
type APIError struct {
	Kind       error
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes Kind, plus common.ErrRateLimit for a 429 response.
func (e *APIError) Unwrap() []error {
	if e.StatusCode == http.StatusTooManyRequests {
		return []error{e.Kind, common.ErrRateLimit}
	}
	return []error{e.Kind}
}

// isUnavailableStatus reports whether the service signalled that the pair or data does not exist.
func isUnavailableStatus(code int) bool {
	return code == http.StatusNotFound || code == http.StatusUnprocessableEntity
}

// isTransientStatus reports whether a retry might succeed.
func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func statusError(code int) *APIError {
	return &APIError{
		Kind:       common.ErrNetwork,
		StatusCode: code,
		Message:    fmt.Sprintf("HTTP error! status: %d", code),
	}
}

func unavailableError(code int, message string) *APIError {
	return &APIError{
		Kind:       common.ErrRateUnavailable,
		StatusCode: code,
		Message:    message,
	}
}

func spotUnavailable(from, to string) string {
	return fmt.Sprintf("Could not find rates for %s to %s. Check currencies or API availability.", from, to)
}

func historyUnavailable(from, to string) string {
	return fmt.Sprintf("Historical data unavailable for %s/%s.", from, to)
}

func noHistoryError(from, to string) *APIError {
	return &APIError{
		Kind:    common.ErrNoData,
		Message: fmt.Sprintf("No historical rates found for %s/%s in the selected period.", from, to),
	}
}
