// Package notify relays renewal payment requests to the form-mail service
// that delivers them to the office inbox.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

const inquiryType = "연차료 납부의뢰"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// kst is the display zone for the consent timestamp in the relayed message.
var kst = time.FixedZone("KST", 9*60*60)

// RenewalRequest is a renewal payment request submitted by a customer.
type RenewalRequest struct {
	CustomerNumber string `json:"customerNumber"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PrivacyConsent bool   `json:"privacyConsent"`
}

// Validate checks the request fields and returns a user-facing validation
// error on the first problem found.
func (r RenewalRequest) Validate() error {
	if strings.TrimSpace(r.CustomerNumber) == "" ||
		strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Phone) == "" {
		return errors.Validation("필수 항목을 모두 입력해주세요.")
	}
	if !emailPattern.MatchString(r.Email) {
		return errors.Validation("올바른 이메일 주소를 입력해주세요.")
	}
	if !r.PrivacyConsent {
		return errors.Validation("개인정보 수집 및 이용에 동의해주세요.")
	}
	return nil
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Relay posts renewal requests to the form-mail relay.
type Relay struct {
	cfg        config.NotifyConfig
	httpClient *http.Client
	logger     logging.Logger

	now func() time.Time
}

func NewRelay(cfg config.NotifyConfig, logger logging.Logger) *Relay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Relay{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("notify"),
		now:        time.Now,
	}
}

// Send validates and relays one renewal request.  A relay that responds
// without success is a CodeNotifyRelay error carrying the relay's message.
func (r *Relay) Send(ctx context.Context, req RenewalRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("access_key", r.cfg.AccessKey)
	form.Set("name", req.Name)
	form.Set("email", req.Email)
	form.Set("phone", req.Phone)
	form.Set("inquiry_type", inquiryType)
	form.Set("message", r.composeMessage(req))
	form.Set("privacy_consent", "on")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.RelayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build relay request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, errors.CodeNotifyRelay, "relay request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.CodeNotifyRelay, "read relay response")
	}
	var result relayResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Wrap(err, errors.CodeNotifyRelay, "decode relay response").
			WithDetail(fmt.Sprintf("status=%d", resp.StatusCode))
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "이메일 전송에 실패했습니다."
		}
		return errors.New(errors.CodeNotifyRelay, msg)
	}

	r.logger.Info("renewal request relayed",
		logging.String("customer_no", req.CustomerNumber))
	return nil
}

// composeMessage renders the Korean message body delivered to the office.
func (r *Relay) composeMessage(req RenewalRequest) string {
	return fmt.Sprintf(`새로운 연차료 납부의뢰가 접수되었습니다.

■ 고객 정보
- 고객번호: %s
- 이름: %s
- 이메일: %s
- 연락처: %s

■ 개인정보 수집 및 이용 동의
- 동의 여부: 동의함
- 동의 시간: %s

■ 처리 요청사항
연차료 납부 대행 서비스를 요청합니다.
대리인 수수료: 건당 20,000원 (부가세 별도)

담당자는 고객에게 연락하여 상세 사항을 안내해 주시기 바랍니다.`,
		req.CustomerNumber, req.Name, req.Email, req.Phone,
		r.now().In(kst).Format("2006-01-02 15:04:05"))
}
