package dto

import "net/http"

// API error codes surfaced alongside domain error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	"VALIDATION":    http.StatusBadRequest,
	"INVALID_INPUT": http.StatusBadRequest,
	"INVALID_ROLE":  http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_ASSIGNED":     http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_TRANSITION":   http.StatusConflict,

	"INVALID_STATE": http.StatusUnprocessableEntity,
	"LAST_ROLE":     http.StatusUnprocessableEntity,
	"ROLE_NOT_HELD": http.StatusUnprocessableEntity,
	"NOT_ASSIGNED":  http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code, defaulting
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
