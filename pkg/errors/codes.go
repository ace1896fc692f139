package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal      ErrorCode = "COMMON_001"
	ErrCodeBadRequest    ErrorCode = "COMMON_002"
	ErrCodeNotFound      ErrorCode = "COMMON_003"
	ErrCodeValidation    ErrorCode = "COMMON_004"
	ErrCodeTimeout       ErrorCode = "COMMON_005"
	ErrCodeSerialization ErrorCode = "COMMON_006"
	ErrCodeCacheError    ErrorCode = "COMMON_007"
)

// Upstream Error Codes — failures against the KIPO registry API and the
// KIPRIS Plus API.  Not-found is distinct from transport and parse failures:
// an empty result set is a normal business outcome for these services.
const (
	ErrCodeUpstreamNotFound  ErrorCode = "UPSTREAM_001"
	ErrCodeUpstreamTransport ErrorCode = "UPSTREAM_002"
	ErrCodeUpstreamParse     ErrorCode = "UPSTREAM_003"
	ErrCodeUpstreamStatus    ErrorCode = "UPSTREAM_004"
)

// Member / Notify Module Error Codes
const (
	ErrCodeMemberNotFound   ErrorCode = "MBR_001"
	ErrCodeMemberRosterLoad ErrorCode = "MBR_002"
	ErrCodeNotifyRelay      ErrorCode = "NTF_001"
)

// Export Module Error Codes
const (
	ErrCodeExportGeneration ErrorCode = "EXP_001"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal          = ErrCodeInternal
	CodeInvalidParam      = ErrCodeBadRequest
	CodeNotFound          = ErrCodeNotFound
	CodeValidation        = ErrCodeValidation
	CodeTimeout           = ErrCodeTimeout
	CodeSerialization     = ErrCodeSerialization
	CodeCacheError        = ErrCodeCacheError
	CodeUpstreamNotFound  = ErrCodeUpstreamNotFound
	CodeUpstreamTransport = ErrCodeUpstreamTransport
	CodeUpstreamParse     = ErrCodeUpstreamParse
	CodeUpstreamStatus    = ErrCodeUpstreamStatus
	CodeMemberNotFound    = ErrCodeMemberNotFound
	CodeMemberRosterLoad  = ErrCodeMemberRosterLoad
	CodeNotifyRelay       = ErrCodeNotifyRelay
	CodeExportGeneration  = ErrCodeExportGeneration

	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeTimeout:       http.StatusGatewayTimeout,
	ErrCodeSerialization: http.StatusInternalServerError,
	ErrCodeCacheError:    http.StatusInternalServerError,

	ErrCodeUpstreamNotFound:  http.StatusNotFound,
	ErrCodeUpstreamTransport: http.StatusBadGateway,
	ErrCodeUpstreamParse:     http.StatusBadGateway,
	ErrCodeUpstreamStatus:    http.StatusBadGateway,

	ErrCodeMemberNotFound:   http.StatusNotFound,
	ErrCodeMemberRosterLoad: http.StatusInternalServerError,
	ErrCodeNotifyRelay:      http.StatusBadGateway,

	ErrCodeExportGeneration: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:      "internal server error",
	ErrCodeBadRequest:    "bad request",
	ErrCodeNotFound:      "resource not found",
	ErrCodeValidation:    "validation failed",
	ErrCodeTimeout:       "request timeout",
	ErrCodeSerialization: "serialization failed",
	ErrCodeCacheError:    "cache error",

	ErrCodeUpstreamNotFound:  "no matching record at upstream",
	ErrCodeUpstreamTransport: "upstream request failed",
	ErrCodeUpstreamParse:     "failed to parse upstream response",
	ErrCodeUpstreamStatus:    "upstream reported an error status",

	ErrCodeMemberNotFound:   "member not found",
	ErrCodeMemberRosterLoad: "failed to load member roster",
	ErrCodeNotifyRelay:      "failed to relay renewal request",

	ErrCodeExportGeneration: "failed to generate export file",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
