package storage

import (
	"context"
	"time"

	"entsoe-collector/internal/domain"
)

// PricePointStore provides access to price_points storage.
// The triple (entity_id, price_date, hour) is unique; Upsert resolves
// conflicts atomically so concurrent fetches for the same key can never
// duplicate a row or fail on the race.
type PricePointStore interface {
	// Upsert inserts the point or overwrites the price (and raw document,
	// if provided) of an existing row with the same key. Returns true
	// when a row was written.
	Upsert(ctx context.Context, p *domain.PricePoint) (bool, error)

	// GetByEntityDate retrieves all points for an entity on a local date,
	// ordered by hour ASC.
	GetByEntityDate(ctx context.Context, entityID int64, date time.Time) ([]*domain.PricePoint, error)

	// ExistsForDate reports whether any point exists for (entity, date).
	ExistsForDate(ctx context.Context, entityID int64, date time.Time) (bool, error)
}

// ZoneMappingStore provides access to zone_mappings storage.
// Read-only from the collector's perspective; Upsert exists for seeding.
type ZoneMappingStore interface {
	// GetByEntityID retrieves the mapping for an entity. Returns
	// ErrNotFound if the entity has no configured domain.
	GetByEntityID(ctx context.Context, entityID int64) (*domain.ZoneMapping, error)

	// GetByDomainCode retrieves the mapping for a domain code.
	GetByDomainCode(ctx context.Context, domainCode string) (*domain.ZoneMapping, error)

	// List retrieves all mappings, ordered by entity_id ASC.
	List(ctx context.Context) ([]*domain.ZoneMapping, error)

	// Upsert inserts or replaces a mapping, keyed by entity_id.
	// Returns ErrDuplicateKey if the domain code belongs to another entity.
	Upsert(ctx context.Context, m *domain.ZoneMapping) error
}

// PriceRevisionStore provides access to the append-only price_revisions
// audit log. Revisions record every value a fetch offered to the price
// store, so operators can trace day-ahead corrections across re-fetches.
type PriceRevisionStore interface {
	// InsertBulk appends a batch of revisions.
	InsertBulk(ctx context.Context, revisions []*domain.PriceRevision) error

	// GetByEntityDate retrieves revisions for (entity, date), ordered by
	// fetched_at ASC, hour ASC.
	GetByEntityDate(ctx context.Context, entityID int64, date time.Time) ([]*domain.PriceRevision, error)
}
