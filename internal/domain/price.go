package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint represents one hourly day-ahead price for a market entity.
// Corresponds to price_points table in PostgreSQL.
type PricePoint struct {
	EntityID    int64           // market entity (bidding zone) identifier
	PriceDate   time.Time       // calendar date, local to the entity's zone (midnight UTC)
	Hour        int             // local hour, 0-23
	Price       decimal.Decimal // EUR/MWh, may be negative
	RawDocument *string         // raw API response kept for audit (nullable)
	UpdatedAt   time.Time       // last write timestamp
}

// HourlyPrice is a single parsed point before persistence.
type HourlyPrice struct {
	Hour  int
	Price decimal.Decimal
}

// PriceRevision is an append-only audit record of every price value
// offered to the store, including re-fetches that revise earlier values.
// Corresponds to price_revisions table in ClickHouse.
type PriceRevision struct {
	EntityID  int64
	PriceDate time.Time
	Hour      int
	Price     decimal.Decimal
	FetchedAt time.Time
}

// DateOnly truncates t to its calendar date, normalized to midnight UTC.
// PriceDate values are always stored in this form so that equality
// comparisons and map keys behave.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
