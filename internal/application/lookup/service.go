package lookup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/domain/annuity"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/cache"
	"github.com/unicpatent/unic-ip/internal/infrastructure/kipris"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
	"github.com/unicpatent/unic-ip/internal/infrastructure/registry"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

// NoInfoName is the display fallback when no applicant could be resolved.
const NoInfoName = "정보 없음"

const biblioCacheKeyPrefix = "biblio:"

// RegisteredPatent pairs a registered-rights record with its annuity data.
type RegisteredPatent struct {
	patent.Record
	Annuity annuity.Calculation `json:"annuity"`
}

// RegisteredResult is the response of a registered-rights search.
type RegisteredResult struct {
	CustomerNumber  string             `json:"customerNumber"`
	ApplicantName   string             `json:"applicantName"`
	RightHolderName string             `json:"rightHolderName,omitempty"`
	TotalCount      int                `json:"totalCount"`
	Patents         []RegisteredPatent `json:"patents"`
}

// ApplicationResult is the response of an application search.
type ApplicationResult struct {
	CustomerNumber string          `json:"customerNumber"`
	ApplicantName  string          `json:"applicantName"`
	TotalCount     int             `json:"totalCount"`
	Patents        []patent.Record `json:"patents"`
}

// Service runs the search flows against the registry and KIPRIS clients.
type Service struct {
	registry registry.Client
	kipris   kipris.Client
	cache    cache.Cache
	cfg      config.LookupConfig
	logger   logging.Logger
	metrics  *prometheus.AppMetrics

	enricher *Enricher
	batcher  *Batcher
}

// NewService wires the lookup service.  metrics may be nil.
func NewService(reg registry.Client, kp kipris.Client, c cache.Cache, cfg config.LookupConfig, logger logging.Logger, metrics *prometheus.AppMetrics) *Service {
	s := &Service{
		registry: reg,
		kipris:   kp,
		cache:    c,
		cfg:      cfg,
		logger:   logger.Named("lookup"),
		metrics:  metrics,
	}
	s.enricher = NewEnricher(s.cachedDetail, logger, metrics)
	s.batcher = NewBatcher(s.cachedDetail, cfg.BatchSize, cfg.BatchDelay, logger, metrics)
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Registered-rights search
// ─────────────────────────────────────────────────────────────────────────────

// SearchRegisteredByCustomer looks up registered rights by 12-digit customer
// number and derives annuity data for each.
func (s *Service) SearchRegisteredByCustomer(ctx context.Context, customerNo string) (*RegisteredResult, error) {
	return s.searchRegistered(ctx, "customer", customerNo, s.registry.RightsByCustomerNumber)
}

// SearchRegisteredByBusiness looks up registered rights by 10-digit business
// registration number.
func (s *Service) SearchRegisteredByBusiness(ctx context.Context, businessNo string) (*RegisteredResult, error) {
	return s.searchRegistered(ctx, "business", businessNo, s.registry.RightsByBusinessNumber)
}

func (s *Service) searchRegistered(ctx context.Context, searchType, value string, fetch func(context.Context, string) (*registry.RightListResult, error)) (*RegisteredResult, error) {
	callCtx, cancel := s.callContext(ctx)
	started := time.Now()
	rights, err := fetch(callCtx, value)
	cancel()
	prometheus.RecordUpstreamCall(s.metrics, "registry", "right_list", outcomeOf(err), time.Since(started))

	if err != nil {
		// The registry reports "no data" as a non-success result code, so
		// a status failure degrades to an empty result instead of an error.
		if errors.IsCode(err, errors.CodeUpstreamStatus) {
			s.logger.Warn("registry reported no data",
				logging.String("search_type", searchType), logging.Err(err))
			prometheus.RecordSearch(s.metrics, searchType, "ok", 0)
			return emptyRegisteredResult(value), nil
		}
		prometheus.RecordSearch(s.metrics, searchType, "error", 0)
		return nil, err
	}
	if len(rights.Records) == 0 {
		prometheus.RecordSearch(s.metrics, searchType, "ok", 0)
		return emptyRegisteredResult(value), nil
	}

	patents := make([]RegisteredPatent, len(rights.Records))
	var wg sync.WaitGroup
	for i, rec := range rights.Records {
		wg.Add(1)
		go func(i int, rec patent.Record) {
			defer wg.Done()
			patents[i] = RegisteredPatent{Record: rec, Annuity: s.annuityFor(ctx, rec)}
		}(i, rec)
	}
	wg.Wait()

	prometheus.RecordSearch(s.metrics, searchType, "ok", len(patents))
	return &RegisteredResult{
		CustomerNumber:  value,
		ApplicantName:   orNoInfo(rights.ApplicantName),
		RightHolderName: orNoInfo(rights.RightHolderName),
		TotalCount:      rights.TotalCount,
		Patents:         patents,
	}, nil
}

func emptyRegisteredResult(value string) *RegisteredResult {
	return &RegisteredResult{
		CustomerNumber:  value,
		ApplicantName:   NoInfoName,
		RightHolderName: NoInfoName,
		TotalCount:      0,
		Patents:         []RegisteredPatent{},
	}
}

func (s *Service) annuityFor(ctx context.Context, rec patent.Record) annuity.Calculation {
	if !rec.HasRegistrationNumber() {
		return annuity.Calculate(rec, nil, annuity.Passthrough{})
	}
	history, err := s.PaymentHistory(ctx, rec.RegistrationNumber)
	if err != nil {
		// A failed history lookup leaves the annuity fields sentinel
		// rather than failing the search.
		s.logger.Warn("payment history lookup failed",
			logging.String("rgst_no", rec.RegistrationNumber), logging.Err(err))
		history = nil
	}
	return annuity.Calculate(rec, history, annuity.Passthrough{})
}

// PaymentHistory returns the register payment rows for a registration
// number, oldest first.  An upstream "no data" status yields an empty
// history without error.
func (s *Service) PaymentHistory(ctx context.Context, registrationNumber string) ([]annuity.PaymentEntry, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	started := time.Now()
	entries, err := s.registry.RegisterHistory(callCtx, registrationNumber)
	prometheus.RecordUpstreamCall(s.metrics, "registry", "register_history", outcomeOf(err), time.Since(started))

	if err != nil {
		if errors.IsCode(err, errors.CodeUpstreamStatus) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Application search
// ─────────────────────────────────────────────────────────────────────────────

// SearchApplications looks up filed applications by customer number and
// enriches each with bibliographic detail, priority/PCT data, and full-text
// document links.
func (s *Service) SearchApplications(ctx context.Context, customerNo string) (*ApplicationResult, error) {
	callCtx, cancel := s.callContext(ctx)
	started := time.Now()
	base, err := s.kipris.WordSearch(callCtx, customerNo)
	cancel()
	prometheus.RecordUpstreamCall(s.metrics, "kipris", "word_search", outcomeOf(err), time.Since(started))

	if err != nil {
		prometheus.RecordSearch(s.metrics, "application", "error", 0)
		return nil, err
	}
	if len(base) == 0 {
		prometheus.RecordSearch(s.metrics, "application", "ok", 0)
		return &ApplicationResult{
			CustomerNumber: customerNo,
			ApplicantName:  NoInfoName,
			TotalCount:     0,
			Patents:        []patent.Record{},
		}, nil
	}

	detailed := make([]patent.Record, len(base))
	var wg sync.WaitGroup
	for i, rec := range base {
		wg.Add(1)
		go func(i int, rec patent.Record) {
			defer wg.Done()
			detailed[i] = s.enrichApplication(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	// Second merge pass picks up registration fields for any record whose
	// first-stage lookup partially failed; detail reads are cache hits now.
	final := s.enricher.Enrich(ctx, detailed)

	prometheus.RecordSearch(s.metrics, "application", "ok", len(final))
	return &ApplicationResult{
		CustomerNumber: customerNo,
		ApplicantName:  orNoInfo(final[0].ApplicantName),
		TotalCount:     len(final),
		Patents:        final,
	}, nil
}

// enrichApplication merges bibliographic detail and document links into one
// base record.  Any per-item failure keeps the base record; the PCT
// deadline is always derived from the best priority/application dates held
// after the merge.
func (s *Service) enrichApplication(ctx context.Context, rec patent.Record) patent.Record {
	detail, err := s.cachedDetail(ctx, rec.ApplicationNumber)
	if err != nil {
		s.logger.Warn("application detail lookup failed",
			logging.String("application_no", rec.ApplicationNumber), logging.Err(err))
		rec.PCTDeadline = patent.PriorityDeadline(rec.PriorityDate, rec.ApplicationDate, patent.DashStyle)
		return rec
	}

	merged := rec.MergeDetail(*detail)
	if fieldSet(detail.ApplicantName) {
		merged.ApplicantName = detail.ApplicantName
	}
	if fieldSet(detail.PriorityDate) {
		merged.PriorityDate = detail.PriorityDate
	}
	if fieldSet(detail.PCTApplicationNumber) {
		merged.PCTApplicationNumber = detail.PCTApplicationNumber
	}
	if fieldSet(detail.IPCCode) {
		merged.IPCCode = detail.IPCCode
	}
	if fieldSet(detail.StatusText) {
		merged.StatusText = detail.StatusText
		merged.RegistrationStatus = detail.RegistrationStatus
	}
	merged.PCTDeadline = patent.PriorityDeadline(merged.PriorityDate, merged.ApplicationDate, patent.DashStyle)

	s.attachFullTextLinks(ctx, &merged)
	return merged
}

func (s *Service) attachFullTextLinks(ctx context.Context, rec *patent.Record) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	if pub, err := s.kipris.PublicationFullText(callCtx, rec.ApplicationNumber); err == nil && pub != nil {
		rec.PublicationFullText = pub.Path
	} else if err != nil {
		s.logger.Debug("publication full-text lookup failed",
			logging.String("application_no", rec.ApplicationNumber), logging.Err(err))
	}

	if ann, err := s.kipris.AnnouncementFullText(callCtx, rec.ApplicationNumber); err == nil && ann != nil {
		rec.AnnouncementFullText = ann.Path
	} else if err != nil {
		s.logger.Debug("announcement full-text lookup failed",
			logging.String("application_no", rec.ApplicationNumber), logging.Err(err))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Bulk detail lookup
// ─────────────────────────────────────────────────────────────────────────────

// FetchDetails runs the batched bulk detail lookup and applies the
// registered-or-has-registration-number post-filter.
func (s *Service) FetchDetails(ctx context.Context, applicationNumbers []string) ([]BatchItem, error) {
	if len(applicationNumbers) == 0 {
		return []BatchItem{}, nil
	}
	if s.cfg.MaxBulk > 0 && len(applicationNumbers) > s.cfg.MaxBulk {
		return nil, errors.Validation("too many application numbers").
			WithDetail(fmt.Sprintf("got=%d limit=%d", len(applicationNumbers), s.cfg.MaxBulk))
	}

	items, err := s.batcher.Run(ctx, applicationNumbers)
	if err != nil {
		return items, err
	}
	return FilterRegistered(items), nil
}

// cachedDetail is the DetailLookup shared by the enricher and the batcher:
// cache-aside over the KIPRIS bibliography with the per-call timeout.
func (s *Service) cachedDetail(ctx context.Context, applicationNumber string) (*patent.Record, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	hit := true
	var rec patent.Record
	err := s.cache.GetOrSet(callCtx, biblioCacheKeyPrefix+applicationNumber, &rec, 0, func(ctx context.Context) (interface{}, error) {
		hit = false
		started := time.Now()
		detail, fetchErr := s.kipris.BibliographicDetail(ctx, applicationNumber)
		prometheus.RecordUpstreamCall(s.metrics, "kipris", "biblio_detail", outcomeOf(fetchErr), time.Since(started))
		if fetchErr != nil {
			return nil, fetchErr
		}
		return detail, nil
	})
	prometheus.RecordCacheAccess(s.metrics, "biblio", hit)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.CallTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}

func orNoInfo(v string) string {
	if v == "" || v == patent.Sentinel {
		return NoInfoName
	}
	return v
}

func fieldSet(v string) bool {
	return v != "" && v != patent.Sentinel
}
