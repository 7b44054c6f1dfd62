// internal/common/errors/errors.go

// Package errors provides standardized error handling for the gap
// analysis pipeline and its collaborators.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// AI extraction boundary. All of these are non-fatal: they trigger
	// the heuristic strategy instead of propagating.
	ErrCodeExtractionAIFailed   ErrorCode = "EXTRACTION_AI_FAILED"
	ErrCodeExtractionAITimeout  ErrorCode = "EXTRACTION_AI_TIMEOUT"
	ErrCodeExtractionAIBadJSON  ErrorCode = "EXTRACTION_AI_BAD_JSON"
	ErrCodeExtractionAIEmpty    ErrorCode = "EXTRACTION_AI_EMPTY"
	ErrCodeExtractionAIDisabled ErrorCode = "EXTRACTION_AI_DISABLED"

	// Startup / configuration. Fatal: a corrupt catalog is not a
	// recoverable per-request condition.
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Input validation.
	ErrCodeInvalidJobInput ErrorCode = "INVALID_JOB_INPUT"

	// History store.
	ErrCodeHistoryAppendFailed ErrorCode = "HISTORY_APPEND_FAILED"
	ErrCodeHistoryQueryFailed  ErrorCode = "HISTORY_QUERY_FAILED"

	// Notifications.
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	var std *StandardError
	if errors.As(target, &std) {
		return e.Code == std.Code
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewExtractionAIFailedError wraps a transport or API failure of the AI
// strategy.
func NewExtractionAIFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionAIFailed,
		Message:   "AI requirement extraction failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionAITimeoutError marks an AI call that exceeded its deadline.
func NewExtractionAITimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionAITimeout,
		Message:   "AI requirement extraction timed out",
		Details:   fmt.Sprintf("deadline: %s", timeout),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionAIBadJSONError marks an AI response that did not parse or
// validate as the expected requirements payload.
func NewExtractionAIBadJSONError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionAIBadJSON,
		Message:   "AI response is not a valid requirements payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionAIEmptyError marks a parseable AI response with zero
// requirements.
func NewExtractionAIEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionAIEmpty,
		Message:   "AI response contained no requirements",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError marks a corrupt or unreadable skill catalog.
func NewCatalogInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "skill catalog is invalid",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidJobInputError marks a job record the engine cannot analyze.
func NewInvalidJobInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidJobInput,
		Message:   "job record is not analyzable",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryAppendFailedError wraps a snapshot persistence failure.
func NewHistoryAppendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryAppendFailed,
		Message:   "failed to append snapshot to job history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryFailedError wraps a history read failure.
func NewHistoryQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "failed to read job history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError wraps a notifier failure. Never fatal.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "failed to send gap notification",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"channel": channel},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification helpers
// ==========================

// IsExtractionError reports whether err belongs to the AI extraction
// boundary, i.e. may be swallowed in favor of the heuristic strategy.
func IsExtractionError(err error) bool {
	var std *StandardError
	if !errors.As(err, &std) {
		return false
	}
	switch std.Code {
	case ErrCodeExtractionAIFailed,
		ErrCodeExtractionAITimeout,
		ErrCodeExtractionAIBadJSON,
		ErrCodeExtractionAIEmpty,
		ErrCodeExtractionAIDisabled:
		return true
	}
	return false
}

// GetRetryCount returns how often a failed operation with this code may
// be retried by the caller.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeHistoryAppendFailed, ErrCodeHistoryQueryFailed:
		return 2
	case ErrCodeNotificationSendFailed:
		return 1
	default:
		return 0
	}
}

// GetErrorCategory buckets codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeExtractionAIFailed, ErrCodeExtractionAITimeout,
		ErrCodeExtractionAIBadJSON, ErrCodeExtractionAIEmpty,
		ErrCodeExtractionAIDisabled:
		return "extraction"
	case ErrCodeCatalogInvalid, ErrCodeConfigInvalid:
		return "configuration"
	case ErrCodeHistoryAppendFailed, ErrCodeHistoryQueryFailed:
		return "persistence"
	case ErrCodeNotificationSendFailed:
		return "notification"
	default:
		return "internal"
	}
}
