// Package kipris implements the client for the KIPRIS Plus open API
// (patUtiModInfoSearchSevice): word search over applications, bibliographic
// detail by application number, and full-text document URL lookups.
package kipris

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

const (
	opWordSearch     = "getWordSearch"
	opBiblioDetail   = "getBibliographyDetailInfoSearch"
	opPubFullText    = "getPubFullTextInfoSearch"
	opAdvancedSearch = "getAdvancedSearch"

	pageSize = 100
)

// announcementPathFormat builds the announcement document URL from a
// registration number; KIPRIS serves announcement PDFs through fileToss.
const announcementPathFormat = "https://plus.kipris.or.kr/kiprisplusws/fileToss.jsp?arg=%s_announcement"

// FullTextRef points at a full-text document hosted by KIPRIS.
type FullTextRef struct {
	DocName string `json:"docName"`
	Path    string `json:"path"`
}

// Client is the KIPRIS Plus API client contract.
type Client interface {
	// WordSearch runs a free-word search (customer numbers work as words)
	// and returns the matching applications.
	WordSearch(ctx context.Context, word string) ([]patent.Record, error)

	// BibliographicDetail fetches the bibliography of one application.
	// A CodeUpstreamNotFound error means KIPRIS has no bibliography for
	// the number.
	BibliographicDetail(ctx context.Context, applicationNumber string) (*patent.Record, error)

	// PublicationFullText resolves the published-application document URL.
	// (nil, nil) means no document exists.
	PublicationFullText(ctx context.Context, applicationNumber string) (*FullTextRef, error)

	// AnnouncementFullText resolves the granted-publication document URL.
	// Announcements only exist for registered patents; (nil, nil) means
	// the application has no registration yet.
	AnnouncementFullText(ctx context.Context, applicationNumber string) (*FullTextRef, error)
}

type client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     logging.Logger
}

var _ Client = (*client)(nil)

// NewClient builds a KIPRIS client from configuration.
func NewClient(cfg config.KiprisConfig, logger logging.Logger) Client {
	return &client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("kipris"),
	}
}

func (c *client) WordSearch(ctx context.Context, word string) ([]patent.Record, error) {
	params := url.Values{}
	params.Set("word", word)
	params.Set("ServiceKey", c.serviceKey)
	params.Set("numOfRows", fmt.Sprintf("%d", pageSize))
	params.Set("pageNo", "1")

	var envelope wordSearchResponse
	if err := c.get(ctx, opWordSearch, params, &envelope); err != nil {
		return nil, err
	}

	records := make([]patent.Record, 0, len(envelope.Body.Items.Item))
	for _, item := range envelope.Body.Items.Item {
		if strings.TrimSpace(item.ApplicationNumber) == "" {
			continue
		}
		records = append(records, mapWordSearchItem(item))
	}

	c.logger.Info("word search finished",
		logging.String("word", word),
		logging.Int("count", len(records)))
	return records, nil
}

// mapWordSearchItem shapes one search hit into the canonical record.  Word
// search returns applications in any state, so a missing status defaults to
// examining.
func mapWordSearchItem(item wordSearchItem) patent.Record {
	rec := patent.NewRecord(patent.CompactApplicationNumber(item.ApplicationNumber))
	rec.RegistrationNumber = orSentinel(item.RegisterNumber)
	rec.ApplicantName = patent.FirstName(item.ApplicantName)
	rec.InventorName = orSentinel(item.InventorName)
	rec.InventionName = orSentinel(item.InventionTitle)
	rec.ApplicationDate = patent.NormalizeDate(item.ApplicationDate, patent.DashStyle)
	rec.RegistrationDate = patent.NormalizeDate(item.RegisterDate, patent.DashStyle)
	rec.PublicationDate = patent.NormalizeDate(item.PublicationDate, patent.DashStyle)
	rec.ExpirationDate = patent.NormalizeDate(item.RightDuration, patent.DashStyle)
	rec.ClaimCount = orSentinel(item.ClaimCount)
	rec.RegistrationStatus = patent.ParseRegistrationStatus(item.RegisterStatus, patent.ContextApplicationSearch)
	rec.StatusText = item.RegisterStatus
	rec.IPCCode = orSentinel(item.IPCCode)
	return rec
}

func (c *client) BibliographicDetail(ctx context.Context, applicationNumber string) (*patent.Record, error) {
	params := url.Values{}
	params.Set("applicationNumber", applicationNumber)
	params.Set("ServiceKey", c.serviceKey)

	var envelope biblioResponse
	if err := c.get(ctx, opBiblioDetail, params, &envelope); err != nil {
		return nil, err
	}
	if envelope.Body.Item == nil {
		return nil, errors.UpstreamNotFound("no bibliography for application").
			WithDetail(applicationNumber)
	}

	rec := mapBiblioItem(applicationNumber, envelope.Body.Item)
	c.logger.Debug("bibliography fetched",
		logging.String("application_no", applicationNumber),
		logging.String("register_no", rec.RegistrationNumber))
	return &rec, nil
}

// mapBiblioItem shapes the bibliography into the canonical record.  The
// expiration date is derived from the application date rather than taken
// from the response, and a missing status defaults to registered since the
// bibliography of a pending application still carries its exam status text.
func mapBiblioItem(applicationNumber string, item *biblioItem) patent.Record {
	summary := item.Summary.Info

	appNo := patent.CompactApplicationNumber(summary.ApplicationNumber)
	if appNo == "" {
		appNo = applicationNumber
	}
	rec := patent.NewRecord(appNo)
	rec.RegistrationNumber = orSentinel(summary.RegisterNumber)
	rec.RegistrationDate = patent.NormalizeDate(summary.RegisterDate, patent.DashStyle)
	rec.ApplicationDate = patent.NormalizeDate(summary.ApplicationDate, patent.DashStyle)
	rec.InventionName = orSentinel(summary.InventionTitle)
	rec.ClaimCount = orSentinel(summary.ClaimCount)
	rec.PublicationDate = patent.NormalizeDate(summary.PublicationDate, patent.DashStyle)
	rec.ExpirationDate = patent.ExpirationDate(rec.ApplicationDate, patent.DashStyle)
	rec.RegistrationStatus = patent.ParseRegistrationStatus(summary.RegisterStatus, patent.ContextRegisteredSearch)
	rec.StatusText = summary.RegisterStatus
	rec.PCTApplicationNumber = orSentinel(summary.InternationalApplicationNumber)

	if len(item.Applicants.Info) > 0 {
		rec.ApplicantName = patent.FirstName(item.Applicants.Info[0].Name)
	}
	if len(item.Priorities.Info) > 0 {
		rec.PriorityDate = patent.NormalizeDate(item.Priorities.Info[0].PriorityApplicationDate, patent.DashStyle)
	}
	rec.IPCCode = joinIPCCodes(item.IPCs.Info)
	return rec
}

func (c *client) PublicationFullText(ctx context.Context, applicationNumber string) (*FullTextRef, error) {
	params := url.Values{}
	params.Set("applicationNumber", applicationNumber)
	params.Set("ServiceKey", c.serviceKey)

	var envelope fullTextResponse
	if err := c.get(ctx, opPubFullText, params, &envelope); err != nil {
		return nil, err
	}

	item := envelope.Body.Item
	if item == nil || strings.TrimSpace(item.Path) == "" {
		return nil, nil
	}
	return &FullTextRef{
		DocName: orSentinel(item.DocName),
		Path:    item.Path,
	}, nil
}

func (c *client) AnnouncementFullText(ctx context.Context, applicationNumber string) (*FullTextRef, error) {
	params := url.Values{}
	params.Set("applicationNumber", applicationNumber)
	params.Set("ServiceKey", c.serviceKey)

	var envelope wordSearchResponse
	if err := c.get(ctx, opAdvancedSearch, params, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Body.Items.Item) == 0 {
		return nil, nil
	}

	regNo := strings.TrimSpace(envelope.Body.Items.Item[0].RegisterNumber)
	if regNo == "" || regNo == patent.Sentinel {
		return nil, nil
	}
	return &FullTextRef{
		DocName: regNo + ".pdf",
		Path:    fmt.Sprintf(announcementPathFormat, regNo),
	}, nil
}

// get issues one GET against KIPRIS and decodes the XML body.
func (c *client) get(ctx context.Context, operation string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, operation, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build kipris request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeUpstreamTransport, "kipris request failed").
			WithDetail(operation)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CodeUpstreamTransport, "kipris returned non-200 status").
			WithDetail(fmt.Sprintf("operation=%s status=%d", operation, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.CodeUpstreamTransport, "read kipris response")
	}
	if err := xml.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, errors.CodeUpstreamParse, "decode kipris response").
			WithDetail(operation)
	}

	c.logger.Debug("kipris call finished",
		logging.String("operation", operation),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

func joinIPCCodes(infos []ipcInfo) string {
	codes := make([]string, 0, len(infos))
	for _, info := range infos {
		if code := strings.TrimSpace(info.IPCNumber); code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return patent.Sentinel
	}
	return strings.Join(codes, ", ")
}

func orSentinel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return patent.Sentinel
	}
	return v
}
