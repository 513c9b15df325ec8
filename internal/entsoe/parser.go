package entsoe

import (
	"encoding/xml"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"entsoe-collector/internal/domain"

	"github.com/shopspring/decimal"
)

// Accepted period start layouts. All are UTC, terminated by a literal Z.
// time.Parse also accepts fractional seconds against layoutSeconds.
const (
	layoutSeconds = "2006-01-02T15:04:05Z"
	layoutMinutes = "2006-01-02T15:04Z"
)

// ParseDayAheadPrices converts a raw market document into hourly prices
// for the requested local date. Each point's instant is the period start
// plus (position-1) hours, localized via loc; points that land outside
// targetDate are discarded.
//
// Per-point validation failures skip only that point. A period start that
// does not parse skips its whole time-series. Negative prices are valid
// market outcomes and are kept. The result is not re-sorted: duplicates
// across overlapping time-series are each emitted and left to the store.
func ParseDayAheadPrices(raw string, targetDate time.Time, loc *time.Location, logger *log.Logger) ([]domain.HourlyPrice, error) {
	if logger == nil {
		logger = log.Default()
	}

	var doc marketDocument
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}

	if len(doc.TimeSeries) == 0 {
		logger.Printf("no TimeSeries elements in market document for %s", targetDate.Format("2006-01-02"))
		return nil, nil
	}

	target := domain.DateOnly(targetDate)
	var prices []domain.HourlyPrice

	for tsIndex, ts := range doc.TimeSeries {
		seriesPrices, err := convertSeries(ts, target, loc, logger, tsIndex)
		if err != nil {
			logger.Printf("TimeSeries %d: skipping series: %v", tsIndex+1, err)
			continue
		}
		prices = append(prices, seriesPrices...)
	}

	return prices, nil
}

// convertSeries converts one time-series. A period start that does not
// parse invalidates the whole series, including points already converted
// from its other periods.
func convertSeries(ts timeSeries, target time.Time, loc *time.Location, logger *log.Logger, tsIndex int) ([]domain.HourlyPrice, error) {
	var prices []domain.HourlyPrice

	for _, p := range ts.Periods {
		start, err := parsePeriodStart(p.Start)
		if err != nil {
			return nil, fmt.Errorf("bad period start %q: %w", p.Start, err)
		}

		for _, pt := range p.Points {
			hp, ok := convertPoint(pt, start, target, loc, logger, tsIndex)
			if ok {
				prices = append(prices, hp)
			}
		}
	}

	return prices, nil
}

// parsePeriodStart parses a UTC period start timestamp. Accepted forms:
// fractional seconds, whole seconds, or minutes only, each ending in Z.
func parsePeriodStart(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(layoutSeconds, value)
	if err == nil {
		return t, nil
	}
	return time.Parse(layoutMinutes, value)
}

// convertPoint maps one ordinal point onto a local (hour, price) pair,
// reporting ok=false when the point fails validation or belongs to an
// adjacent local date.
func convertPoint(pt point, periodStart, target time.Time, loc *time.Location, logger *log.Logger, tsIndex int) (domain.HourlyPrice, bool) {
	position, err := strconv.Atoi(strings.TrimSpace(pt.Position))
	if err != nil {
		logger.Printf("TimeSeries %d: unparsable position %q", tsIndex+1, pt.Position)
		return domain.HourlyPrice{}, false
	}
	if position < 1 || position > 24 {
		logger.Printf("TimeSeries %d: position %d out of range", tsIndex+1, position)
		return domain.HourlyPrice{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(pt.Price))
	if err != nil {
		logger.Printf("TimeSeries %d: unparsable price %q at position %d", tsIndex+1, pt.Price, position)
		return domain.HourlyPrice{}, false
	}

	instant := periodStart.Add(time.Duration(position-1) * time.Hour)
	local := instant.In(loc)

	if !domain.DateOnly(local).Equal(target) {
		// Artifact of the UTC/local offset: the requested window spills
		// into adjacent local days.
		return domain.HourlyPrice{}, false
	}

	hour := local.Hour()
	if hour < 0 || hour > 23 {
		logger.Printf("TimeSeries %d: hour %d out of range at position %d", tsIndex+1, hour, position)
		return domain.HourlyPrice{}, false
	}

	return domain.HourlyPrice{Hour: hour, Price: price}, true
}
