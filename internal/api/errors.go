package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// genericErrorMessage is the fallback shown when the backend gives no
// usable message.
const genericErrorMessage = "an unexpected error occurred"

var errNoRefreshToken = errors.New("api: no refresh token available")

// APIError is a non-2xx backend response, carrying a human-readable
// message extracted from the body when one exists.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// newAPIError derives an APIError from a response. The backend reports
// failures as {"message": "..."} or {"error": "..."}.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := genericErrorMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrorMessage returns the display message for any error from this
// package: the backend's message for API errors, the error text otherwise.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
