package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/application/member"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

// MemberHandler serves the membership-verification endpoint.
type MemberHandler struct {
	verifier *member.Verifier
	logger   logging.Logger
}

func NewMemberHandler(verifier *member.Verifier, logger logging.Logger) *MemberHandler {
	return &MemberHandler{
		verifier: verifier,
		logger:   logger.Named("handler"),
	}
}

type verifyMemberRequest struct {
	CustomerNumber string `json:"customerNumber"`
}

// VerifyMember handles POST /api/verify-member.  An unknown customer number
// is a successful response with isMember false, not an error.
func (h *MemberHandler) VerifyMember(c *gin.Context) {
	var req verifyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "고객번호를 입력해주세요.")
		return
	}

	m, err := h.verifier.Verify(c.Request.Context(), req.CustomerNumber)
	if err != nil {
		if errors.IsCode(err, errors.CodeMemberNotFound) {
			c.JSON(200, gin.H{
				"success":    true,
				"isMember":   false,
				"memberName": "",
			})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success":    true,
		"isMember":   true,
		"memberName": m.Name,
	})
}
