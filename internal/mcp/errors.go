package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errNoCourtSession is returned when a court tool has no session to act on.
var errNoCourtSession = &APIError{
	Code:         "NO_COURT_SESSION",
	Message:      "no court session selected",
	RecoveryHint: "Call start_court_session or pass session_id",
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, court.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "court session not found", RecoveryHint: "Call start_court_session"}
	case errors.Is(err, court.ErrSessionClosed):
		return &APIError{Code: "SESSION_CLOSED", Message: "court session closed", RecoveryHint: "Call start_court_session"}
	case errors.Is(err, court.ErrUnknownTask):
		return &APIError{Code: "UNKNOWN_TASK", Message: err.Error(), RecoveryHint: "Use one of alt, validation, login, database"}
	case errors.Is(err, court.ErrTaskInCourt):
		return &APIError{Code: "TASK_IN_COURT", Message: err.Error(), RecoveryHint: "Tasks in court cannot be fixed"}
	case errors.Is(err, output.ErrHTMLRequired):
		return &APIError{Code: "HTML_REQUIRED", Message: "html required"}
	case errors.Is(err, event.ErrInvalidPayload):
		return &APIError{Code: "INVALID_PAYLOAD", Message: err.Error()}
	default:
		return nil
	}
}

// toolError returns the mapped error when one exists, else err.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
