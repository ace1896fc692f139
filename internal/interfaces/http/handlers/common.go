// Package handlers implements the HTTP endpoints of the lookup service.
// Every response carries a success flag; error bodies hold a user-facing
// Korean message plus the typed error code for clients that branch on it.
package handlers

import (
	stderrors "errors"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

var (
	businessNumberPattern     = regexp.MustCompile(`^\d{10}$`)
	customerNumberPattern     = regexp.MustCompile(`^\d{12}$`)
	registrationNumberPattern = regexp.MustCompile(`^\d+$`)
)

// errorResponse is the standard error body.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// fail writes the error mapped to its HTTP status.  AppError messages are
// written as-is; anything else is masked behind a generic message so internal
// details never reach the client.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Internal("요청 처리 중 오류가 발생했습니다.")
	}
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(appErr.Code), errorResponse{
		Success: false,
		Error:   appErr.Message,
		Code:    string(appErr.Code),
	})
}

// failValidation is a shorthand for user-input rejections.
func failValidation(c *gin.Context, message string) {
	fail(c, errors.Validation(message))
}
