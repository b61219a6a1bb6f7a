package dto

import "net/http"

// Common error codes returned by the API. Domain errors carry these codes
// directly; the handler layer only maps them to HTTP status codes.
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeAlreadyPaid         = "ALREADY_PAID"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidRange        = "INVALID_RANGE"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_PAID":         http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_RANGE":  http.StatusUnprocessableEntity,
	"INVALID_YEAR":   http.StatusUnprocessableEntity,
	"INVALID_AMOUNT": http.StatusUnprocessableEntity,
	"INVALID_STATE":  http.StatusUnprocessableEntity,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,

	"FORBIDDEN": http.StatusForbidden,

	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"DB_ERROR":            http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown INVALID_* codes are treated as validation failures; anything
// else is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
