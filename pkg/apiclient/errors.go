package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTimeout means the request exceeded its deadline. Never retried.
	ErrTimeout = errors.New("request timeout, please check your connection")

	// ErrAuthentication means a 401 could not be recovered by a refresh.
	// The stored session has been cleared when this is returned.
	ErrAuthentication = errors.New("authentication failed, please login again")

	// ErrNoRefreshToken means a refresh was attempted with nothing to refresh.
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// HTTPError is a non-2xx response other than the transparently handled 401.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// shapeError extracts a human message from a backend error payload.
// Backends answer errors in several shapes; structured fields win, and a
// malformed body falls back to the generic message instead of failing.
func shapeError(status int, isJSON bool, body []byte) *HTTPError {
	msg := fmt.Sprintf("request failed with status %d", status)

	if isJSON && len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			if eb.Error != "" {
				msg = eb.Error
			} else if eb.Detail != "" {
				msg = eb.Detail
			}
		}
	}

	return &HTTPError{Status: status, Message: msg}
}
