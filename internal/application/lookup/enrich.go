// Package lookup orchestrates the patent search flows: registered-rights
// search with annuity derivation, application search with bibliographic
// enrichment, and batched bulk detail lookups.
package lookup

import (
	"context"
	"sync"

	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

// DetailLookup fetches bibliographic detail for one application number.
type DetailLookup func(ctx context.Context, applicationNumber string) (*patent.Record, error)

// Enricher merges per-record bibliographic detail into base records.  All
// lookups of one Enrich call run concurrently; a failed lookup leaves the
// corresponding record untouched.
type Enricher struct {
	lookup  DetailLookup
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// NewEnricher builds an enricher around a detail lookup.
func NewEnricher(lookup DetailLookup, logger logging.Logger, metrics *prometheus.AppMetrics) *Enricher {
	return &Enricher{
		lookup:  lookup,
		logger:  logger.Named("enrich"),
		metrics: metrics,
	}
}

// Enrich returns the records with detail merged in, same order and length
// as the input.  Records whose detail lookup fails come back unchanged.
func (e *Enricher) Enrich(ctx context.Context, records []patent.Record) []patent.Record {
	results := make([]patent.Record, len(records))

	var wg sync.WaitGroup
	for i, rec := range records {
		wg.Add(1)
		go func(i int, rec patent.Record) {
			defer wg.Done()
			results[i] = e.enrichOne(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	return results
}

func (e *Enricher) enrichOne(ctx context.Context, rec patent.Record) patent.Record {
	detail, err := e.lookup(ctx, rec.ApplicationNumber)
	if err != nil || detail == nil {
		prometheus.RecordError(e.metrics, "enrich", string(errors.GetCode(err)))
		e.logger.Warn("detail lookup failed, keeping base record",
			logging.String("application_no", rec.ApplicationNumber),
			logging.Err(err))
		return rec
	}
	return rec.MergeDetail(*detail)
}
