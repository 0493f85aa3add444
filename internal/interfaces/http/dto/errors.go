package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors carry their own codes; the
// handlers pass those through and this package maps them to HTTP statuses.
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeConflict        = "ERR_CONFLICT"
	ErrCodeUnprocessable   = "ERR_UNPROCESSABLE"
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
	ErrCodeInternal        = "ERR_INTERNAL"
)

// ErrorCodeHTTPStatus maps transport error codes to HTTP statuses.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeUnprocessable:   http.StatusUnprocessableEntity,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// domainCodeHTTPStatus maps domain error codes to HTTP statuses. Codes
// absent here fall through to the prefix rules in GetHTTPStatus.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":                http.StatusNotFound,
	"ALREADY_EXISTS":           http.StatusConflict,
	"DUPLICATE_NUMBER":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":     http.StatusConflict,
	"INVALID_INPUT":            http.StatusBadRequest,
	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"PAYMENT_OVERPAYMENT":      http.StatusBadRequest,
	"NOTHING_OUTSTANDING":      http.StatusBadRequest,
	"AMOUNT_DERIVED":           http.StatusBadRequest,
	"AMOUNT_BELOW_PAID":        http.StatusUnprocessableEntity,
	"AGREEMENT_CANCELLED":      http.StatusUnprocessableEntity,
	"AGREEMENT_CEILING":        http.StatusUnprocessableEntity,
	"AGREEMENT_INACTIVE":       http.StatusUnprocessableEntity,
	"CONTRACT_PROJECT_MISMATCH": http.StatusUnprocessableEntity,
	"CONTRACT_VENDOR_MISMATCH": http.StatusUnprocessableEntity,
	"DOCUMENT_HAS_PAYMENTS":    http.StatusUnprocessableEntity,
	"BULK_PAYMENT_FAILED":      http.StatusUnprocessableEntity,
	"STORE_INTEGRITY":          http.StatusInternalServerError,
}

// LegacyErrorCodeMapping maps retired code spellings onto their canonical
// replacements so older clients keep working.
var LegacyErrorCodeMapping = map[string]string{
	"VALIDATION_ERROR": ErrCodeValidation,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"INTERNAL_ERROR":   ErrCodeInternal,
	"RESOURCE_NOT_FOUND": ErrCodeNotFound,
}

// NormalizeErrorCode resolves legacy aliases to canonical codes. Unknown
// codes pass through untouched.
func NormalizeErrorCode(code string) string {
	if canonical, ok := LegacyErrorCodeMapping[code]; ok {
		return canonical
	}
	return code
}

// GetHTTPStatus resolves an error code to the HTTP status it should be
// served with. Unrecognized INVALID_ and EMPTY_ prefixed codes come from
// request validation in the domain layer and map to 400; anything else
// unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	code = NormalizeErrorCode(code)
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "EMPTY_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
