// Package collector composes the ENTSO-E client, the document parser,
// and the price store into one fetch-and-store operation per entity and
// date, plus the daily batch over every configured zone.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/entsoe"
	"entsoe-collector/internal/observability"
	"entsoe-collector/internal/storage"
)

// DocumentFetcher retrieves a raw market document for a domain code over
// a UTC period. Implemented by *entsoe.Client.
type DocumentFetcher interface {
	Fetch(ctx context.Context, domainCode string, periodStart, periodEnd time.Time) (string, error)
}

// Collector orchestrates fetch-parse-upsert for day-ahead prices.
type Collector struct {
	zoneStore     storage.ZoneMappingStore
	priceStore    storage.PricePointStore
	revisionStore storage.PriceRevisionStore // optional
	fetcher       DocumentFetcher
	apiConfig     entsoe.Config
	forceRefetch  bool
	logger        *log.Logger
	metrics       *observability.Metrics // optional
	now           func() time.Time
}

// Options contains configuration for creating a Collector.
type Options struct {
	ZoneStore  storage.ZoneMappingStore
	PriceStore storage.PricePointStore
	Fetcher    DocumentFetcher
	APIConfig  entsoe.Config

	// RevisionStore receives an append-only audit record per stored
	// point. Optional; failures there never fail a fetch.
	RevisionStore storage.PriceRevisionStore

	// ForceRefetch controls whether a fetch proceeds when rows already
	// exist for the (entity, date). When false, such fetches are skipped.
	// Defaults to true: re-fetching upserts idempotently.
	ForceRefetch *bool

	Metrics *observability.Metrics
	Logger  *log.Logger

	// Now overrides the clock; tests only.
	Now func() time.Time
}

// New creates a new Collector.
func New(opts Options) *Collector {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	forceRefetch := true
	if opts.ForceRefetch != nil {
		forceRefetch = *opts.ForceRefetch
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Collector{
		zoneStore:     opts.ZoneStore,
		priceStore:    opts.PriceStore,
		revisionStore: opts.RevisionStore,
		fetcher:       opts.Fetcher,
		apiConfig:     opts.APIConfig,
		forceRefetch:  forceRefetch,
		logger:        logger,
		metrics:       opts.Metrics,
		now:           now,
	}
}

// FetchAndStore fetches day-ahead prices for one entity and local date
// and upserts them. Returns the number of rows written. Errors:
// *ConfigurationError (no zone mapping or credential), *entsoe.ConnectionError,
// entsoe.ErrEmptyResponse, *entsoe.MalformedDocumentError, ErrNoData.
func (c *Collector) FetchAndStore(ctx context.Context, entityID int64, targetDate time.Time) (int, error) {
	started := c.now()
	count, err := c.fetchAndStore(ctx, entityID, targetDate)
	c.observe(started, err)
	return count, err
}

func (c *Collector) fetchAndStore(ctx context.Context, entityID int64, targetDate time.Time) (int, error) {
	mapping, err := c.zoneStore.GetByEntityID(ctx, entityID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, &ConfigurationError{Reason: fmt.Sprintf("entity %d has no zone mapping", entityID)}
		}
		return 0, fmt.Errorf("resolve zone mapping: %w", err)
	}

	if c.apiConfig.SecurityToken == "" {
		return 0, &ConfigurationError{Reason: "ENTSO-E security token is not configured"}
	}

	loc, err := mapping.Location()
	if err != nil {
		return 0, &ConfigurationError{Reason: fmt.Sprintf("entity %d timezone", entityID), Err: err}
	}

	target := domain.DateOnly(targetDate)

	if !c.forceRefetch {
		exists, err := c.priceStore.ExistsForDate(ctx, entityID, target)
		if err != nil {
			return 0, fmt.Errorf("check existing prices: %w", err)
		}
		if exists {
			c.logger.Printf("entity %d already has prices for %s, skipping (force_refetch disabled)",
				entityID, target.Format("2006-01-02"))
			return 0, nil
		}
	}

	periodStart, periodEnd := RequestWindow(target, loc)

	c.logger.Printf("fetching day-ahead prices for entity %d (%s), date %s, window %s - %s",
		entityID, mapping.DomainCode, target.Format("2006-01-02"),
		periodStart.Format(time.RFC3339), periodEnd.Format(time.RFC3339))

	raw, err := c.fetcher.Fetch(ctx, mapping.DomainCode, periodStart, periodEnd)
	if err != nil {
		return 0, fmt.Errorf("fetch market document: %w", err)
	}

	prices, err := entsoe.ParseDayAheadPrices(raw, target, loc, c.logger)
	if err != nil {
		return 0, fmt.Errorf("parse market document: %w", err)
	}

	if len(prices) == 0 {
		return 0, fmt.Errorf("entity %d, date %s: %w", entityID, target.Format("2006-01-02"), ErrNoData)
	}

	fetchedAt := c.now().UTC()
	count := 0
	var lastErr error
	revisions := make([]*domain.PriceRevision, 0, len(prices))

	for i, hp := range prices {
		point := &domain.PricePoint{
			EntityID:  entityID,
			PriceDate: target,
			Hour:      hp.Hour,
			Price:     hp.Price,
		}
		// One row per fetch retains the raw document, bounding audit storage.
		if i == 0 {
			point.RawDocument = &raw
		}

		applied, err := c.priceStore.Upsert(ctx, point)
		if err != nil {
			lastErr = err
			c.logger.Printf("entity %d: upsert hour %d failed: %v", entityID, hp.Hour, err)
			if c.metrics != nil {
				c.metrics.PointsRejected.Inc()
			}
			continue
		}
		if applied {
			count++
			if c.metrics != nil {
				c.metrics.PointsStored.Inc()
			}
			revisions = append(revisions, &domain.PriceRevision{
				EntityID:  entityID,
				PriceDate: target,
				Hour:      hp.Hour,
				Price:     hp.Price,
				FetchedAt: fetchedAt,
			})
		}
	}

	if count == 0 && lastErr != nil {
		return 0, fmt.Errorf("no points stored: %w", lastErr)
	}

	c.appendRevisions(ctx, revisions)

	c.logger.Printf("stored %d price points for entity %d, date %s",
		count, entityID, target.Format("2006-01-02"))

	return count, nil
}

// appendRevisions writes the audit batch. Revision logging is best
// effort: a failure is logged and the fetch still succeeds.
func (c *Collector) appendRevisions(ctx context.Context, revisions []*domain.PriceRevision) {
	if c.revisionStore == nil || len(revisions) == 0 {
		return
	}
	if err := c.revisionStore.InsertBulk(ctx, revisions); err != nil {
		c.logger.Printf("append %d price revisions failed: %v", len(revisions), err)
		return
	}
	if c.metrics != nil {
		c.metrics.RevisionsLogged.Add(float64(len(revisions)))
	}
}

// BatchResult summarizes one scheduled batch run.
type BatchResult struct {
	Succeeded int
	Failed    int
	Points    int
}

// RunBatch fetches yesterday's prices for every entity with a configured
// zone mapping. "Yesterday" is evaluated on each zone's local clock.
// Individual entity failures are logged and do not abort the batch.
func (c *Collector) RunBatch(ctx context.Context) (BatchResult, error) {
	var result BatchResult

	mappings, err := c.zoneStore.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list zone mappings: %w", err)
	}

	if len(mappings) == 0 {
		c.logger.Printf("no zone mappings configured, nothing to fetch")
		return result, nil
	}

	if c.metrics != nil {
		c.metrics.BatchRunsTotal.Inc()
	}

	for _, m := range mappings {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		target, err := c.yesterdayIn(m)
		if err != nil {
			result.Failed++
			c.logger.Printf("entity %d (%s): %v", m.EntityID, m.DomainCode, err)
			continue
		}

		count, err := c.FetchAndStore(ctx, m.EntityID, target)
		if err != nil {
			result.Failed++
			if errors.Is(err, ErrNoData) {
				c.logger.Printf("entity %d (%s): no data for %s yet", m.EntityID, m.DomainCode, target.Format("2006-01-02"))
			} else {
				c.logger.Printf("entity %d (%s): fetch failed: %v", m.EntityID, m.DomainCode, err)
			}
			continue
		}

		result.Succeeded++
		result.Points += count
	}

	if c.metrics != nil {
		c.metrics.BatchEntitiesOK.Add(float64(result.Succeeded))
		c.metrics.BatchEntitiesErr.Add(float64(result.Failed))
	}

	c.logger.Printf("batch finished: %d succeeded, %d failed, %d points stored",
		result.Succeeded, result.Failed, result.Points)

	return result, nil
}

// yesterdayIn resolves yesterday's calendar date on the zone's local clock.
func (c *Collector) yesterdayIn(m *domain.ZoneMapping) (time.Time, error) {
	loc, err := m.Location()
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(c.now().In(loc).AddDate(0, 0, -1)), nil
}

// observe records fetch metrics for one run.
func (c *Collector) observe(started time.Time, err error) {
	if c.metrics == nil {
		return
	}

	c.metrics.FetchDuration.Observe(c.now().Sub(started).Seconds())

	outcome := observability.OutcomeOK
	switch {
	case err == nil:
		// keep ok
	case errors.Is(err, ErrNoData):
		outcome = observability.OutcomeNoData
	case isConfigurationError(err):
		outcome = observability.OutcomeConfiguration
	case isConnectionError(err):
		outcome = observability.OutcomeConnection
	default:
		outcome = observability.OutcomeBadDocument
	}
	c.metrics.FetchesTotal.WithLabelValues(outcome).Inc()
}

func isConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func isConnectionError(err error) bool {
	var ce *entsoe.ConnectionError
	return errors.As(err, &ce)
}
