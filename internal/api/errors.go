package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrSessionExpired is returned when the refresh exchange itself fails.
// It is terminal: the stored credentials are gone and the user has to log
// in again.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Error is an HTTP-level failure from the backend. The message is the
// server-provided one when the body carries it, verbatim, so validation
// errors read the way the backend wrote them.
type Error struct {
	Status  int
	Message string
	Path    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s %s: %s (status %d)", http.StatusText(e.Status), e.Path, e.Message, e.Status)
}

// errorBody is the NestJS-style error envelope. "message" is a string for
// most errors but an array of strings for validation failures.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func newError(status int, path string, body []byte) *Error {
	e := &Error{Status: status, Path: path, Message: http.StatusText(status)}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return e
	}

	if msg := decodeMessage(parsed.Message); msg != "" {
		e.Message = msg
	} else if parsed.Error != "" {
		e.Message = parsed.Error
	}
	return e
}

func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsNotFound(err error) bool     { return IsStatus(err, http.StatusNotFound) }
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }
func IsValidation(err error) bool   { return IsStatus(err, http.StatusBadRequest) }
func IsConflict(err error) bool     { return IsStatus(err, http.StatusConflict) }

// IsServer reports whether err is a 5xx from the backend.
func IsServer(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}
