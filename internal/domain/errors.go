package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRoleNotFound is returned by the registry when a lookup key is
	// absent. Recoverable: callers fall back to the default role or report
	// a structured error, never crash.
	ErrRoleNotFound = errors.New("role not found")

	// ErrSessionNotFound is returned for lookups of ids that never chatted.
	ErrSessionNotFound = errors.New("session not found")

	// ErrPolicyBlocked is returned when the prompt policy rejects an
	// override or a custom role definition.
	ErrPolicyBlocked = errors.New("blocked by prompt policy")
)

// CompletionError wraps a failure of the completion service. Message is
// safe to return to end users; Cause is for logs only.
type CompletionError struct {
	Message string
	Cause   error
}

func (e *CompletionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion failed: %v", e.Cause)
	}
	return "completion failed: " + e.Message
}

func (e *CompletionError) Unwrap() error { return e.Cause }

// NewCompletionError builds a CompletionError with the standard user-safe
// message.
func NewCompletionError(cause error) *CompletionError {
	return &CompletionError{
		Message: "抱歉 😣 處理您的訊息時發生錯誤，請稍後再試。",
		Cause:   cause,
	}
}
