package domain

import (
	"testing"
	"time"
)

func TestZoneMapping_Location_IANA(t *testing.T) {
	m := &ZoneMapping{EntityID: 1, DomainCode: "10YRO-TEL------P", Timezone: "Europe/Bucharest"}

	loc, err := m.Location()
	if err != nil {
		t.Fatalf("Location() error: %v", err)
	}

	// Bucharest is UTC+3 in summer.
	ts := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC).In(loc)
	if ts.Hour() != 15 {
		t.Errorf("expected hour 15 in Bucharest, got %d", ts.Hour())
	}
}

func TestZoneMapping_Location_FixedOffset(t *testing.T) {
	offset := 330 // UTC+05:30
	m := &ZoneMapping{EntityID: 2, FixedOffsetMinutes: &offset}

	loc, err := m.Location()
	if err != nil {
		t.Fatalf("Location() error: %v", err)
	}

	ts := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC).In(loc)
	if ts.Hour() != 5 || ts.Minute() != 30 {
		t.Errorf("expected 05:30, got %02d:%02d", ts.Hour(), ts.Minute())
	}
}

func TestZoneMapping_Location_Errors(t *testing.T) {
	m := &ZoneMapping{EntityID: 3, Timezone: "Not/AZone"}
	if _, err := m.Location(); err == nil {
		t.Error("expected error for unknown IANA zone")
	}

	m = &ZoneMapping{EntityID: 4}
	if _, err := m.Location(); err == nil {
		t.Error("expected error for mapping without timezone")
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := time.Date(2025, 7, 15, 23, 45, 12, 999, loc)

	got := DateOnly(ts)
	want := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", ts, got, want)
	}
}
