package pizza

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer decoded from an RFC 7807 problem body when one is present.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("pizza API %d: %s", e.StatusCode, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("pizza API %d: %s", e.StatusCode, e.Title)
	default:
		return fmt.Sprintf("pizza API %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
