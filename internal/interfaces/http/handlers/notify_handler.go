package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/application/notify"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

// NotifyHandler serves the renewal payment request endpoint.
type NotifyHandler struct {
	relay  *notify.Relay
	logger logging.Logger
}

func NewNotifyHandler(relay *notify.Relay, logger logging.Logger) *NotifyHandler {
	return &NotifyHandler{
		relay:  relay,
		logger: logger.Named("handler"),
	}
}

// SendRenewalRequest handles POST /api/send-renewal-request.
func (h *NotifyHandler) SendRenewalRequest(c *gin.Context) {
	var req notify.RenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "필수 항목을 모두 입력해주세요.")
		return
	}

	if err := h.relay.Send(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "연차료 납부의뢰가 성공적으로 전송되었습니다.",
	})
}
