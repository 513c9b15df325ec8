// Package registry carries the built-in bidding-zone table used to seed
// the zone mapping store. Domain codes are ENTSO-E EIC area codes.
package registry

import (
	"context"
	"errors"
	"fmt"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// BuiltinZones lists the bidding zones the collector knows out of the
// box. Every zone here has DST rules, so each carries an IANA name and
// no fixed-offset fallback.
func BuiltinZones() []*domain.ZoneMapping {
	return []*domain.ZoneMapping{
		{EntityID: 1, DomainCode: "10YRO-TEL------P", ZoneName: "Romania", Timezone: "Europe/Bucharest"},
		{EntityID: 2, DomainCode: "10Y1001C--00003F", ZoneName: "Ukraine IPS", Timezone: "Europe/Kyiv"},
		{EntityID: 3, DomainCode: "10YPL-AREA-----S", ZoneName: "Poland", Timezone: "Europe/Warsaw"},
		{EntityID: 4, DomainCode: "10YCZ-CEPS-----N", ZoneName: "Czech Republic", Timezone: "Europe/Prague"},
		{EntityID: 5, DomainCode: "10YSK-SEPS-----K", ZoneName: "Slovakia", Timezone: "Europe/Bratislava"},
		{EntityID: 6, DomainCode: "10YHU-MAVIR----U", ZoneName: "Hungary", Timezone: "Europe/Budapest"},
		{EntityID: 7, DomainCode: "10YCA-BULGARIA-R", ZoneName: "Bulgaria", Timezone: "Europe/Sofia"},
		{EntityID: 8, DomainCode: "10Y1001A1001A82H", ZoneName: "Germany-Luxembourg", Timezone: "Europe/Berlin"},
		{EntityID: 9, DomainCode: "10YFR-RTE------C", ZoneName: "France", Timezone: "Europe/Paris"},
	}
}

// Seed inserts the built-in zones that are not in the store yet. An
// entity that already has a mapping is left untouched, so operator
// edits to the built-in set survive restarts.
func Seed(ctx context.Context, store storage.ZoneMappingStore) error {
	for _, zone := range BuiltinZones() {
		_, err := store.GetByEntityID(ctx, zone.EntityID)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("seed zone %s: %w", zone.ZoneName, err)
		}
		if err := store.Upsert(ctx, zone); err != nil {
			return fmt.Errorf("seed zone %s: %w", zone.ZoneName, err)
		}
	}
	return nil
}
