package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

// ItemOutcome marks how one item of a bulk lookup settled.
type ItemOutcome string

const (
	OutcomeOK       ItemOutcome = "ok"
	OutcomeNotFound ItemOutcome = "not_found"
	OutcomeError    ItemOutcome = "lookup_error"
)

// BatchItem is one settled item of a bulk lookup.  On a non-ok outcome the
// record is a sentinel-filled fallback carrying only the application number.
type BatchItem struct {
	ApplicationNumber string        `json:"applicationNumber"`
	Outcome           ItemOutcome   `json:"outcome"`
	Record            patent.Record `json:"record"`
}

// Batcher fans a list of application numbers out as fixed-size batches of
// concurrent detail lookups.  The inter-batch delay is a rate limit against
// the upstream government API, not a tunable performance knob.
type Batcher struct {
	lookup    DetailLookup
	batchSize int
	delay     time.Duration
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
}

// NewBatcher builds a batcher.  batchSize and delay fall back to 10 and
// 500ms when zero.
func NewBatcher(lookup DetailLookup, batchSize int, delay time.Duration, logger logging.Logger, metrics *prometheus.AppMetrics) *Batcher {
	if batchSize <= 0 {
		batchSize = 10
	}
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Batcher{
		lookup:    lookup,
		batchSize: batchSize,
		delay:     delay,
		logger:    logger.Named("batch"),
		metrics:   metrics,
	}
}

// Run looks up detail for every application number and returns one settled
// item per input, in input order.  A batch waits for all of its lookups
// before the next batch starts; per-item failures become fallback items.
// The only error returned is context cancellation between batches.
func (b *Batcher) Run(ctx context.Context, applicationNumbers []string) ([]BatchItem, error) {
	if b.metrics != nil {
		b.metrics.BulkRequestRecordSize.WithLabelValues().Observe(float64(len(applicationNumbers)))
	}

	items := make([]BatchItem, len(applicationNumbers))
	for start := 0; start < len(applicationNumbers); start += b.batchSize {
		if start > 0 {
			select {
			case <-time.After(b.delay):
			case <-ctx.Done():
				return items[:start], errors.Wrap(ctx.Err(), errors.CodeTimeout, "bulk lookup cancelled")
			}
		}

		end := start + b.batchSize
		if end > len(applicationNumbers) {
			end = len(applicationNumbers)
		}
		b.runBatch(ctx, applicationNumbers[start:end], items[start:end])
	}
	return items, nil
}

func (b *Batcher) runBatch(ctx context.Context, numbers []string, out []BatchItem) {
	started := time.Now()

	var wg sync.WaitGroup
	for i, appNo := range numbers {
		wg.Add(1)
		go func(i int, appNo string) {
			defer wg.Done()
			out[i] = b.lookupOne(ctx, appNo)
		}(i, appNo)
	}
	wg.Wait()

	if b.metrics != nil {
		b.metrics.BatchesTotal.WithLabelValues().Inc()
		b.metrics.BatchDuration.WithLabelValues().Observe(time.Since(started).Seconds())
	}
	b.logger.Debug("batch settled",
		logging.Int("size", len(numbers)),
		logging.Duration("elapsed", time.Since(started)))
}

func (b *Batcher) lookupOne(ctx context.Context, appNo string) BatchItem {
	detail, err := b.lookup(ctx, appNo)
	switch {
	case err == nil && detail != nil:
		b.countLookup(string(OutcomeOK))
		return BatchItem{ApplicationNumber: appNo, Outcome: OutcomeOK, Record: *detail}
	case errors.IsNotFound(err):
		b.countLookup(string(OutcomeNotFound))
		return BatchItem{ApplicationNumber: appNo, Outcome: OutcomeNotFound, Record: patent.NewRecord(appNo)}
	default:
		b.countLookup(string(OutcomeError))
		b.logger.Warn("bulk detail lookup failed",
			logging.String("application_no", appNo),
			logging.Err(err))
		return BatchItem{ApplicationNumber: appNo, Outcome: OutcomeError, Record: patent.NewRecord(appNo)}
	}
}

func (b *Batcher) countLookup(outcome string) {
	if b.metrics != nil {
		b.metrics.DetailLookupsTotal.WithLabelValues(outcome).Inc()
	}
}

// FilterRegistered keeps the items whose record is registered or carries a
// registration number.  When the filter would drop everything, the full
// list is returned instead so partial data is never discarded outright.
func FilterRegistered(items []BatchItem) []BatchItem {
	kept := make([]BatchItem, 0, len(items))
	for _, item := range items {
		if item.Record.IsRegistered() || item.Record.HasRegistrationNumber() {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return items
	}
	return kept
}
