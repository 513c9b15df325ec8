package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// PricePointStore implements storage.PricePointStore using PostgreSQL.
type PricePointStore struct {
	pool *Pool
}

// NewPricePointStore creates a new PricePointStore.
func NewPricePointStore(pool *Pool) *PricePointStore {
	return &PricePointStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PricePointStore = (*PricePointStore)(nil)

// Upsert inserts the point or overwrites an existing row with the same
// (entity_id, price_date, hour) key. The conditional insert-or-update is
// a single statement, so concurrent upserts for the same key serialize
// inside Postgres instead of racing a check-then-write.
func (s *PricePointStore) Upsert(ctx context.Context, p *domain.PricePoint) (bool, error) {
	if p == nil || p.Hour < 0 || p.Hour > 23 {
		return false, storage.ErrInvalidInput
	}

	price, err := numericFromDecimal(p.Price)
	if err != nil {
		return false, fmt.Errorf("upsert price point: %w", err)
	}

	query := `
		INSERT INTO price_points (entity_id, price_date, hour, price, raw_document, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (entity_id, price_date, hour) DO UPDATE SET
			price = EXCLUDED.price,
			raw_document = COALESCE(EXCLUDED.raw_document, price_points.raw_document),
			updated_at = now()
	`

	tag, err := s.pool.Exec(ctx, query,
		p.EntityID,
		domain.DateOnly(p.PriceDate),
		p.Hour,
		price,
		p.RawDocument,
	)
	if err != nil {
		return false, fmt.Errorf("upsert price point: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByEntityDate retrieves all points for an entity on a local date,
// ordered by hour ASC.
func (s *PricePointStore) GetByEntityDate(ctx context.Context, entityID int64, date time.Time) ([]*domain.PricePoint, error) {
	query := `
		SELECT entity_id, price_date, hour, price, raw_document, updated_at
		FROM price_points
		WHERE entity_id = $1 AND price_date = $2
		ORDER BY hour ASC
	`

	rows, err := s.pool.Query(ctx, query, entityID, domain.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("get price points by entity and date: %w", err)
	}
	defer rows.Close()

	return scanPricePoints(rows)
}

// ExistsForDate reports whether any point exists for (entity, date).
func (s *PricePointStore) ExistsForDate(ctx context.Context, entityID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM price_points WHERE entity_id = $1 AND price_date = $2
		)
	`

	var exists bool
	err := s.pool.QueryRow(ctx, query, entityID, domain.DateOnly(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check price points exist: %w", err)
	}
	return exists, nil
}

// scanPricePoints scans multiple rows into a slice of PricePoint.
func scanPricePoints(rows pgx.Rows) ([]*domain.PricePoint, error) {
	var points []*domain.PricePoint

	for rows.Next() {
		var p domain.PricePoint
		var price pgtype.Numeric

		err := rows.Scan(
			&p.EntityID,
			&p.PriceDate,
			&p.Hour,
			&price,
			&p.RawDocument,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan price point row: %w", err)
		}

		p.Price, err = decimalFromNumeric(price)
		if err != nil {
			return nil, fmt.Errorf("scan price point row: %w", err)
		}
		p.PriceDate = domain.DateOnly(p.PriceDate)
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price point rows: %w", err)
	}

	return points, nil
}
