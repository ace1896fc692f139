package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/domain/annuity"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

// Search types accepted by the registered-rights search.
const (
	searchTypeBusiness = "1"
	searchTypeCustomer = "2"
)

// SearchHandler serves the patent search and detail endpoints.
type SearchHandler struct {
	svc    *lookup.Service
	logger logging.Logger
}

func NewSearchHandler(svc *lookup.Service, logger logging.Logger) *SearchHandler {
	return &SearchHandler{
		svc:    svc,
		logger: logger.Named("handler"),
	}
}

type registeredSearchRequest struct {
	SearchType  string `json:"searchType"`
	SearchValue string `json:"searchValue"`
}

// SearchRegistered handles POST /api/search-registered.
func (h *SearchHandler) SearchRegistered(c *gin.Context) {
	var req registeredSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "검색 유형과 검색 값을 입력해주세요.")
		return
	}
	value := strings.TrimSpace(req.SearchValue)
	if req.SearchType == "" || value == "" {
		failValidation(c, "검색 유형과 검색 값을 입력해주세요.")
		return
	}

	var (
		result *lookup.RegisteredResult
		err    error
	)
	switch req.SearchType {
	case searchTypeBusiness:
		if !businessNumberPattern.MatchString(value) {
			failValidation(c, "사업자번호는 10자리 숫자여야 합니다.")
			return
		}
		result, err = h.svc.SearchRegisteredByBusiness(c.Request.Context(), value)
	case searchTypeCustomer:
		if !customerNumberPattern.MatchString(value) {
			failValidation(c, "고객번호는 12자리 숫자여야 합니다.")
			return
		}
		result, err = h.svc.SearchRegisteredByCustomer(c.Request.Context(), value)
	default:
		failValidation(c, "올바른 검색 유형을 선택해주세요.")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success":         true,
		"customerNumber":  result.CustomerNumber,
		"applicantName":   result.ApplicantName,
		"rightHolderName": result.RightHolderName,
		"totalCount":      result.TotalCount,
		"patents":         result.Patents,
	})
}

type applicationSearchRequest struct {
	CustomerNumber string `json:"customerNumber"`
}

// SearchApplication handles POST /api/search-application.
func (h *SearchHandler) SearchApplication(c *gin.Context) {
	var req applicationSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "고객번호를 입력해주세요.")
		return
	}
	value := strings.TrimSpace(req.CustomerNumber)
	if value == "" {
		failValidation(c, "고객번호를 입력해주세요.")
		return
	}
	if !customerNumberPattern.MatchString(value) {
		failValidation(c, "고객번호는 12자리 숫자여야 합니다.")
		return
	}

	result, err := h.svc.SearchApplications(c.Request.Context(), value)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success":        true,
		"customerNumber": result.CustomerNumber,
		"applicantName":  result.ApplicantName,
		"totalCount":     result.TotalCount,
		"patents":        result.Patents,
	})
}

type patentDetailsRequest struct {
	ApplicationNumbers []string `json:"applicationNumbers"`
}

// GetPatentDetails handles POST /api/get-patent-details: the bulk detail
// lookup.  Results come back as a map keyed by application number; numbers
// whose lookup failed outright are absent from the map.
func (h *SearchHandler) GetPatentDetails(c *gin.Context) {
	var req patentDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ApplicationNumbers == nil {
		failValidation(c, "출원번호 목록이 필요합니다.")
		return
	}

	items, err := h.svc.FetchDetails(c.Request.Context(), req.ApplicationNumbers)
	if err != nil {
		fail(c, err)
		return
	}

	details := make(gin.H, len(items))
	for _, item := range items {
		if item.Outcome == lookup.OutcomeError {
			continue
		}
		details[item.ApplicationNumber] = item.Record
	}
	c.JSON(200, gin.H{
		"success": true,
		"details": details,
	})
}

type paymentHistoryRequest struct {
	RegistrationNumber string `json:"registrationNumber"`
}

// GetPaymentHistory handles POST /api/get-payment-history.
func (h *SearchHandler) GetPaymentHistory(c *gin.Context) {
	var req paymentHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "등록번호를 입력해주세요.")
		return
	}
	value := strings.TrimSpace(req.RegistrationNumber)
	if value == "" {
		failValidation(c, "등록번호를 입력해주세요.")
		return
	}
	if !registrationNumberPattern.MatchString(value) {
		failValidation(c, "올바른 등록번호를 입력해주세요.")
		return
	}

	entries, err := h.svc.PaymentHistory(c.Request.Context(), value)
	if err != nil {
		fail(c, err)
		return
	}
	if entries == nil {
		entries = []annuity.PaymentEntry{}
	}

	c.JSON(200, gin.H{
		"success":     true,
		"paymentInfo": entries,
	})
}
