package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessageQueue       ErrorCode = "COMMON_014"
	ErrCodeStorageError       ErrorCode = "COMMON_015"
)

// Special codes that never appear in an AppError.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Source Error Codes
const (
	ErrCodeSourceNotFound   ErrorCode = "SRC_001"
	ErrCodeSourceUnreadable ErrorCode = "SRC_002"
	ErrCodeSourceEmpty      ErrorCode = "SRC_003"
)

// Extraction Error Codes
const (
	ErrCodeExtractionFailed ErrorCode = "EXT_001"
	ErrCodeExportFailed     ErrorCode = "EXT_002"
	ErrCodeForwardFailed    ErrorCode = "EXT_003"
)

// Valuation Error Codes
const (
	ErrCodeValuationFailed       ErrorCode = "VAL_001"
	ErrCodeValuationInputInvalid ErrorCode = "VAL_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessageQueue:       http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,

	ErrCodeSourceNotFound:   http.StatusNotFound,
	ErrCodeSourceUnreadable: http.StatusUnprocessableEntity,
	ErrCodeSourceEmpty:      http.StatusUnprocessableEntity,

	ErrCodeExtractionFailed: http.StatusInternalServerError,
	ErrCodeExportFailed:     http.StatusInternalServerError,
	ErrCodeForwardFailed:    http.StatusBadGateway,

	// Scoring input problems surface as 400 to keep the predict contract.
	ErrCodeValuationFailed:       http.StatusBadRequest,
	ErrCodeValuationInputInvalid: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessageQueue:       "message queue error",
	ErrCodeStorageError:       "object storage error",

	ErrCodeSourceNotFound:   "source file not found",
	ErrCodeSourceUnreadable: "source file could not be read",
	ErrCodeSourceEmpty:      "source file is empty",

	ErrCodeExtractionFailed: "deal extraction failed",
	ErrCodeExportFailed:     "failed to write extracted deals",
	ErrCodeForwardFailed:    "failed to forward extracted deal",

	ErrCodeValuationFailed:       "valuation failed",
	ErrCodeValuationInputInvalid: "invalid valuation input",
}

// HTTPStatusForCode returns the HTTP status for code, defaulting to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if s, ok := ErrorCodeHTTPStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// DefaultMessage returns the canned message for code, or "unknown error".
func DefaultMessage(code ErrorCode) string {
	if m, ok := ErrorCodeMessage[code]; ok {
		return m
	}
	return "unknown error"
}

// IsClientError reports whether code maps to a 4xx status.
func IsClientError(code ErrorCode) bool {
	s := HTTPStatusForCode(code)
	return s >= 400 && s < 500
}

// ModuleForCode returns the prefix before the underscore ("COMMON", "SRC", ...).
func ModuleForCode(code ErrorCode) string {
	for i, r := range code {
		if r == '_' {
			return string(code[:i])
		}
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
