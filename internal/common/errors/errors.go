// Package errors provides the standardized error values returned to API clients.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeNoticeNotSupported ErrorCode = "NOTICE_NOT_SUPPORTED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnsupportedLaw     ErrorCode = "UNSUPPORTED_LAW"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
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

// NewTemplateNotFoundError is returned when (law, notice type) has no catalog entry.
func NewTemplateNotFoundError(law, noticeType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found for given law and notice type",
		Details:   fmt.Sprintf("law: %s, notice_type: %s", law, noticeType),
		Timestamp: time.Now().UTC(),
	}
}

// NewNoticeNotSupportedError carries the analyzer's no-match message verbatim.
func NewNoticeNotSupportedError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoticeNotSupported,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError records the missing mandatory fields in Metadata.
func NewValidationFailedError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Mandatory fields missing",
		Details:   strings.Join(missing, ", "),
		Metadata:  map[string]interface{}{"missing_fields": missing},
		Timestamp: time.Now().UTC(),
	}
}

func NewUnsupportedLawError(law string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedLaw,
		Message:   "Drafting not supported for this law yet",
		Details:   fmt.Sprintf("law: %s", law),
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "invalid request: " + details,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps a code to a status. Business outcomes are reported with 200
// unless explicit signaling is enabled; request and internal errors always
// carry their own status.
func HTTPStatus(code ErrorCode, explicit bool) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeInternal:
		return http.StatusInternalServerError
	}
	if !explicit {
		return http.StatusOK
	}
	switch code {
	case ErrCodeTemplateNotFound, ErrCodeNoticeNotSupported:
		return http.StatusNotFound
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeUnsupportedLaw:
		return http.StatusNotImplemented
	default:
		return http.StatusOK
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "TEMPLATE"), strings.Contains(codeStr, "NOTICE"):
		return "TEMPLATE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "LAW"):
		return "DRAFTING"
	case strings.Contains(codeStr, "REQUEST"):
		return "REQUEST"
	default:
		return "OTHER"
	}
}
