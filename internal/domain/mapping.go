package domain

import (
	"fmt"
	"time"
)

// ZoneMapping binds a market entity to its ENTSO-E bidding-zone domain.
// Corresponds to zone_mappings table in PostgreSQL. domain_code is
// globally unique; each entity maps to at most one domain.
type ZoneMapping struct {
	EntityID           int64  // market entity identifier
	DomainCode         string // ENTSO-E EIC code, e.g. "10YRO-TEL------P"
	ZoneName           string // human-readable zone name
	Timezone           string // IANA zone name, e.g. "Europe/Bucharest"
	FixedOffsetMinutes *int   // fallback UTC offset for zones without an IANA name
}

// Location resolves the mapping's timezone to a *time.Location.
// The IANA zone takes precedence; the fixed offset is a stand-in for
// zones without DST rules.
func (m *ZoneMapping) Location() (*time.Location, error) {
	if m.Timezone != "" {
		loc, err := time.LoadLocation(m.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", m.Timezone, err)
		}
		return loc, nil
	}
	if m.FixedOffsetMinutes != nil {
		offset := *m.FixedOffsetMinutes
		name := fmt.Sprintf("UTC%+03d:%02d", offset/60, abs(offset%60))
		return time.FixedZone(name, offset*60), nil
	}
	return nil, fmt.Errorf("zone mapping for entity %d has no timezone", m.EntityID)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
