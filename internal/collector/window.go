package collector

import (
	"time"

	"entsoe-collector/internal/domain"
)

// windowMargin widens the request window beyond the exact UTC bounds of
// the local day. The exact bounds already cover every instant mapping to
// the target date; the margin absorbs upstream periods that start on
// round UTC hours adjacent to a DST transition.
const windowMargin = time.Hour

// RequestWindow computes the UTC period [start, end) that covers every
// UTC instant belonging to the target local calendar date in loc. The
// bounds are derived from the zone's own midnights, not from a hardcoded
// offset, so they stay correct across DST transitions.
func RequestWindow(targetDate time.Time, loc *time.Location) (start, end time.Time) {
	d := domain.DateOnly(targetDate)
	localStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	localEnd := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)

	return localStart.UTC().Add(-windowMargin), localEnd.UTC().Add(windowMargin)
}
