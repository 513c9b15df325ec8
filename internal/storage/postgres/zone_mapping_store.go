package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// ZoneMappingStore implements storage.ZoneMappingStore using PostgreSQL.
type ZoneMappingStore struct {
	pool *Pool
}

// NewZoneMappingStore creates a new ZoneMappingStore.
func NewZoneMappingStore(pool *Pool) *ZoneMappingStore {
	return &ZoneMappingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ZoneMappingStore = (*ZoneMappingStore)(nil)

// GetByEntityID retrieves the mapping for an entity. Returns ErrNotFound
// if the entity has no configured domain.
func (s *ZoneMappingStore) GetByEntityID(ctx context.Context, entityID int64) (*domain.ZoneMapping, error) {
	query := `
		SELECT entity_id, domain_code, zone_name, timezone, fixed_offset_minutes
		FROM zone_mappings
		WHERE entity_id = $1
	`

	m, err := scanZoneMapping(s.pool.QueryRow(ctx, query, entityID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get zone mapping by entity: %w", err)
	}
	return m, nil
}

// GetByDomainCode retrieves the mapping for an ENTSO-E domain code.
func (s *ZoneMappingStore) GetByDomainCode(ctx context.Context, domainCode string) (*domain.ZoneMapping, error) {
	query := `
		SELECT entity_id, domain_code, zone_name, timezone, fixed_offset_minutes
		FROM zone_mappings
		WHERE domain_code = $1
	`

	m, err := scanZoneMapping(s.pool.QueryRow(ctx, query, domainCode))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get zone mapping by domain code: %w", err)
	}
	return m, nil
}

// List retrieves all mappings, ordered by entity_id ASC.
func (s *ZoneMappingStore) List(ctx context.Context) ([]*domain.ZoneMapping, error) {
	query := `
		SELECT entity_id, domain_code, zone_name, timezone, fixed_offset_minutes
		FROM zone_mappings
		ORDER BY entity_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list zone mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*domain.ZoneMapping
	for rows.Next() {
		m, err := scanZoneMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zone mapping row: %w", err)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate zone mapping rows: %w", err)
	}

	return mappings, nil
}

// Upsert inserts or replaces a mapping, keyed by entity_id. A domain code
// already claimed by another entity violates the domain_code unique
// constraint and surfaces as ErrDuplicateKey.
func (s *ZoneMappingStore) Upsert(ctx context.Context, m *domain.ZoneMapping) error {
	if m == nil || m.DomainCode == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO zone_mappings (entity_id, domain_code, zone_name, timezone, fixed_offset_minutes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_id) DO UPDATE SET
			domain_code = EXCLUDED.domain_code,
			zone_name = EXCLUDED.zone_name,
			timezone = EXCLUDED.timezone,
			fixed_offset_minutes = EXCLUDED.fixed_offset_minutes
	`

	_, err := s.pool.Exec(ctx, query,
		m.EntityID,
		m.DomainCode,
		m.ZoneName,
		m.Timezone,
		m.FixedOffsetMinutes,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("upsert zone mapping: %w", err)
	}
	return nil
}

// scanZoneMapping scans a single row into a ZoneMapping.
func scanZoneMapping(row pgx.Row) (*domain.ZoneMapping, error) {
	var m domain.ZoneMapping

	err := row.Scan(
		&m.EntityID,
		&m.DomainCode,
		&m.ZoneName,
		&m.Timezone,
		&m.FixedOffsetMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
