// Package registry implements the client for the KIPO registry open API
// (PttRgstRtInfoInqSvc on apis.data.go.kr): right lists by customer or
// business number, and register payment histories by registration number.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/domain/annuity"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

const (
	opBusinessRightList = "getBusinessRightList"
	opRegisterHistory   = "getPatentRegisterHistory"

	searchTypeBusiness = "1"
	searchTypeCustomer = "2"

	// resultCodeOK is the registry's success code; anything else is an
	// upstream-reported failure (including "no data" conditions).
	resultCodeOK = "000"

	pageSize = 100
)

// RightListResult is a decoded right-list search.
type RightListResult struct {
	TotalCount      int
	ApplicantName   string
	RightHolderName string
	Records         []patent.Record
}

// Client is the registry API client contract.
type Client interface {
	// RightsByCustomerNumber lists registered rights held under a 12-digit
	// customer number.
	RightsByCustomerNumber(ctx context.Context, customerNo string) (*RightListResult, error)

	// RightsByBusinessNumber lists registered rights held under a 10-digit
	// business registration number.
	RightsByBusinessNumber(ctx context.Context, businessNo string) (*RightListResult, error)

	// RegisterHistory returns the annuity payment rows recorded on the
	// register for a registration number, oldest first.
	RegisterHistory(ctx context.Context, registrationNumber string) ([]annuity.PaymentEntry, error)
}

type client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     logging.Logger
}

var _ Client = (*client)(nil)

// NewClient builds a registry client from configuration.
func NewClient(cfg config.RegistryConfig, logger logging.Logger) Client {
	return &client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("registry"),
	}
}

func (c *client) RightsByCustomerNumber(ctx context.Context, customerNo string) (*RightListResult, error) {
	return c.rights(ctx, customerNo, searchTypeCustomer)
}

func (c *client) RightsByBusinessNumber(ctx context.Context, businessNo string) (*RightListResult, error) {
	return c.rights(ctx, businessNo, searchTypeBusiness)
}

func (c *client) rights(ctx context.Context, searchVal, searchType string) (*RightListResult, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("type", "json")
	params.Set("pageNo", "1")
	params.Set("numOfRows", fmt.Sprintf("%d", pageSize))
	params.Set("searchType", searchType)
	params.Set("searchVal", searchVal)

	var envelope rightListEnvelope
	if err := c.get(ctx, opBusinessRightList, params, &envelope); err != nil {
		return nil, err
	}

	if envelope.ResultCode != resultCodeOK {
		c.logger.Warn("registry reported non-success result",
			logging.String("result_code", envelope.ResultCode),
			logging.String("result_msg", envelope.ResultMsg))
		return nil, errors.New(errors.CodeUpstreamStatus, "registry search failed").
			WithDetail(fmt.Sprintf("resultCode=%s msg=%s", envelope.ResultCode, envelope.ResultMsg))
	}

	items := envelope.Items.RightList
	result := &RightListResult{
		TotalCount:      int(envelope.TotalCount),
		ApplicantName:   patent.Sentinel,
		RightHolderName: patent.Sentinel,
		Records:         make([]patent.Record, 0, len(items)),
	}
	if result.TotalCount == 0 {
		result.TotalCount = len(items)
	}

	for _, item := range items {
		result.Records = append(result.Records, mapRightItem(item))
	}
	if len(result.Records) > 0 {
		result.ApplicantName = result.Records[0].ApplicantName
		result.RightHolderName = patent.FirstName(items[0].RightHolderInfo.String())
	}

	c.logger.Info("registry right list fetched",
		logging.String("search_type", searchType),
		logging.Int("count", len(result.Records)))
	return result, nil
}

// mapRightItem shapes one rightList entry into the canonical record.
// A rights search only contains granted patents, so the status context
// defaults missing statuses to registered.
func mapRightItem(item rightItem) patent.Record {
	rec := patent.NewRecord(orSentinel(item.ApplNo))
	rec.RegistrationNumber = orSentinel(item.RgstNo)
	rec.ApplicantName = patent.FirstName(firstNonEmpty(item.ApplicantInfo.String(), item.RightHolderInfo.String()))
	rec.ApplicationDate = patent.NormalizeDate(item.ApplDate.String(), patent.DotStyle)
	rec.InventionName = orSentinel(item.Title)
	rec.RegistrationDate = patent.NormalizeDate(item.RgstDate.String(), patent.DotStyle)
	rec.ClaimCount = orSentinel(item.ClaimCount)
	rec.PublicationDate = patent.NormalizeDate(item.PubDate.String(), patent.DotStyle)
	rec.ExpirationDate = patent.NormalizeDate(item.CndrtExptnDate.String(), patent.DotStyle)
	rec.RegistrationStatus = patent.ParseRegistrationStatus(item.RgstStatus.String(), patent.ContextRegisteredSearch)
	rec.StatusText = item.RgstStatus.String()
	rec.BusinessNumber = orSentinel(item.BusinessNo)
	rec.CustomerNumber = orSentinel(item.ApplicantCd)
	return rec
}

func (c *client) RegisterHistory(ctx context.Context, registrationNumber string) ([]annuity.PaymentEntry, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("type", "json")
	params.Set("rgstNo", registrationNumber)

	var envelope historyEnvelope
	if err := c.get(ctx, opRegisterHistory, params, &envelope); err != nil {
		return nil, err
	}

	if envelope.ResultCode != resultCodeOK {
		return nil, errors.New(errors.CodeUpstreamStatus, "register history lookup failed").
			WithDetail(fmt.Sprintf("rgstNo=%s resultCode=%s", registrationNumber, envelope.ResultCode))
	}

	entries := make([]annuity.PaymentEntry, 0, len(envelope.Items.Pay))
	for _, p := range envelope.Items.Pay {
		entries = append(entries, annuity.PaymentEntry{
			AnnualYear:  orSentinel(p.LastAnnl),
			PaymentDate: orSentinel(p.PayDate),
			Amount:      orSentinel(p.PayAmount),
		})
	}

	c.logger.Debug("register history fetched",
		logging.String("rgst_no", registrationNumber),
		logging.Int("entries", len(entries)))
	return entries, nil
}

// get issues one GET against the registry and decodes the JSON body.
func (c *client) get(ctx context.Context, operation string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, operation, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build registry request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeUpstreamTransport, "registry request failed").
			WithDetail(operation)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CodeUpstreamTransport, "registry returned non-200 status").
			WithDetail(fmt.Sprintf("operation=%s status=%d", operation, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.CodeUpstreamTransport, "read registry response")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, errors.CodeUpstreamParse, "decode registry response").
			WithDetail(operation)
	}

	c.logger.Debug("registry call finished",
		logging.String("operation", operation),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

func orSentinel(v flexString) string {
	if v.String() == "" {
		return patent.Sentinel
	}
	return v.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" && v != patent.Sentinel {
			return v
		}
	}
	return ""
}
