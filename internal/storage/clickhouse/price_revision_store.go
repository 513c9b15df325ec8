package clickhouse

import (
	"context"
	"fmt"
	"time"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// PriceRevisionStore implements storage.PriceRevisionStore using ClickHouse.
// Revisions are append-only; the MergeTree table never updates in place,
// which is exactly what an audit log of price corrections wants.
type PriceRevisionStore struct {
	conn *Conn
}

// NewPriceRevisionStore creates a new PriceRevisionStore.
func NewPriceRevisionStore(conn *Conn) *PriceRevisionStore {
	return &PriceRevisionStore{conn: conn}
}

// Compile-time interface check.
var _ storage.PriceRevisionStore = (*PriceRevisionStore)(nil)

// InsertBulk appends a batch of revisions.
func (s *PriceRevisionStore) InsertBulk(ctx context.Context, revisions []*domain.PriceRevision) error {
	if len(revisions) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_revisions (
			entity_id, price_date, hour, price, fetched_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range revisions {
		if r == nil {
			return storage.ErrInvalidInput
		}
		err = batch.Append(
			r.EntityID,
			domain.DateOnly(r.PriceDate),
			uint8(r.Hour),
			r.Price,
			r.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByEntityDate retrieves revisions for (entity, date), ordered by
// fetched_at ASC, hour ASC.
func (s *PriceRevisionStore) GetByEntityDate(ctx context.Context, entityID int64, date time.Time) ([]*domain.PriceRevision, error) {
	query := `
		SELECT entity_id, price_date, hour, price, fetched_at
		FROM price_revisions
		WHERE entity_id = ? AND price_date = ?
		ORDER BY fetched_at ASC, hour ASC
	`

	rows, err := s.conn.Query(ctx, query, entityID, domain.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("get revisions by entity and date: %w", err)
	}
	defer rows.Close()

	var revisions []*domain.PriceRevision
	for rows.Next() {
		var r domain.PriceRevision
		var hour uint8

		err := rows.Scan(&r.EntityID, &r.PriceDate, &hour, &r.Price, &r.FetchedAt)
		if err != nil {
			return nil, fmt.Errorf("scan revision row: %w", err)
		}

		r.Hour = int(hour)
		r.PriceDate = domain.DateOnly(r.PriceDate)
		revisions = append(revisions, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revision rows: %w", err)
	}

	return revisions, nil
}
