package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

func TestPricePointStore_UpsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPricePointStore(pool)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	raw := "<Publication_MarketDocument/>"

	for hour := 0; hour < 24; hour++ {
		p := &domain.PricePoint{
			EntityID:  42,
			PriceDate: date,
			Hour:      hour,
			Price:     decimal.NewFromFloat(100.5).Add(decimal.NewFromInt(int64(hour))),
		}
		if hour == 0 {
			p.RawDocument = &raw
		}
		applied, err := store.Upsert(ctx, p)
		require.NoError(t, err)
		assert.True(t, applied)
	}

	points, err := store.GetByEntityDate(ctx, 42, date)
	require.NoError(t, err)
	require.Len(t, points, 24)

	for i, p := range points {
		assert.Equal(t, i, p.Hour, "points must be ordered by hour")
		assert.Equal(t, int64(42), p.EntityID)
		assert.True(t, p.PriceDate.Equal(date))
		assert.False(t, p.UpdatedAt.IsZero())
	}

	assert.True(t, points[0].Price.Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, points[23].Price.Equal(decimal.NewFromFloat(123.5)))

	require.NotNil(t, points[0].RawDocument)
	assert.Equal(t, raw, *points[0].RawDocument)
	assert.Nil(t, points[1].RawDocument)
}

func TestPricePointStore_UpsertOverwrites(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPricePointStore(pool)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	raw := "<doc version=\"1\"/>"

	first := &domain.PricePoint{
		EntityID:    7,
		PriceDate:   date,
		Hour:        12,
		Price:       decimal.NewFromFloat(55.25),
		RawDocument: &raw,
	}
	_, err := store.Upsert(ctx, first)
	require.NoError(t, err)

	// Refetch with a revised price and no raw document attached.
	second := &domain.PricePoint{
		EntityID:  7,
		PriceDate: date,
		Hour:      12,
		Price:     decimal.NewFromFloat(-4.9),
	}
	applied, err := store.Upsert(ctx, second)
	require.NoError(t, err)
	assert.True(t, applied)

	points, err := store.GetByEntityDate(ctx, 7, date)
	require.NoError(t, err)
	require.Len(t, points, 1, "overwrite must not create a second row")

	assert.True(t, points[0].Price.Equal(decimal.NewFromFloat(-4.9)))
	require.NotNil(t, points[0].RawDocument, "raw document from the first fetch must survive the overwrite")
	assert.Equal(t, raw, *points[0].RawDocument)
}

func TestPricePointStore_ConcurrentUpsertsSameKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPricePointStore(pool)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	// The single-statement ON CONFLICT upsert serializes concurrent
	// writers inside Postgres; none may fail and one row survives.
	const writers = 16

	var wg sync.WaitGroup
	errCh := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Upsert(ctx, &domain.PricePoint{
				EntityID:  11,
				PriceDate: date,
				Hour:      12,
				Price:     decimal.NewFromInt(int64(i)),
			})
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	points, err := store.GetByEntityDate(ctx, 11, date)
	require.NoError(t, err)
	require.Len(t, points, 1, "concurrent upserts for one key must leave exactly one row")
	assert.True(t, points[0].Price.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, points[0].Price.LessThan(decimal.NewFromInt(writers)))
}

func TestPricePointStore_UpsertRejectsBadHour(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPricePointStore(pool)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	for _, hour := range []int{-1, 24} {
		_, err := store.Upsert(ctx, &domain.PricePoint{
			EntityID:  1,
			PriceDate: date,
			Hour:      hour,
			Price:     decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, storage.ErrInvalidInput, "hour %d", hour)
	}

	_, err := store.Upsert(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestPricePointStore_DateNormalization(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPricePointStore(pool)

	// A timestamp with a time-of-day component keys the same row as the
	// bare date.
	noon := time.Date(2025, 7, 15, 12, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	_, err := store.Upsert(ctx, &domain.PricePoint{
		EntityID:  3,
		PriceDate: noon,
		Hour:      0,
		Price:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	exists, err := store.ExistsForDate(ctx, 3, midnight)
	require.NoError(t, err)
	assert.True(t, exists)

	points, err := store.GetByEntityDate(ctx, 3, noon)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].PriceDate.Equal(midnight))
}

func TestPricePointStore_ExistsForDate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPricePointStore(pool)

	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	exists, err := store.ExistsForDate(ctx, 9, date)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Upsert(ctx, &domain.PricePoint{
		EntityID:  9,
		PriceDate: date,
		Hour:      5,
		Price:     decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	exists, err = store.ExistsForDate(ctx, 9, date)
	require.NoError(t, err)
	assert.True(t, exists)

	// Other entities and other dates stay independent.
	exists, err = store.ExistsForDate(ctx, 10, date)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = store.ExistsForDate(ctx, 9, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, exists)
}
