package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// pointKey is the uniqueness key for price points.
type pointKey struct {
	entityID int64
	date     string // YYYY-MM-DD
	hour     int
}

func newPointKey(entityID int64, date time.Time, hour int) pointKey {
	return pointKey{entityID: entityID, date: domain.DateOnly(date).Format("2006-01-02"), hour: hour}
}

// PricePointStore is an in-memory implementation of storage.PricePointStore.
type PricePointStore struct {
	mu   sync.RWMutex
	data map[pointKey]*domain.PricePoint
}

// NewPricePointStore creates a new in-memory price point store.
func NewPricePointStore() *PricePointStore {
	return &PricePointStore{
		data: make(map[pointKey]*domain.PricePoint),
	}
}

// Compile-time interface check.
var _ storage.PricePointStore = (*PricePointStore)(nil)

// Upsert inserts the point or overwrites an existing row with the same key.
func (s *PricePointStore) Upsert(_ context.Context, p *domain.PricePoint) (bool, error) {
	if p == nil || p.Hour < 0 || p.Hour > 23 {
		return false, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := newPointKey(p.EntityID, p.PriceDate, p.Hour)

	stored := *p
	stored.PriceDate = domain.DateOnly(p.PriceDate)
	stored.UpdatedAt = time.Now().UTC()

	if existing, ok := s.data[key]; ok && stored.RawDocument == nil {
		// Keep the previously stored raw document when the update
		// does not carry one.
		stored.RawDocument = existing.RawDocument
	}
	s.data[key] = &stored

	return true, nil
}

// GetByEntityDate retrieves all points for an entity on a local date,
// ordered by hour ASC.
func (s *PricePointStore) GetByEntityDate(_ context.Context, entityID int64, date time.Time) ([]*domain.PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(date)
	var result []*domain.PricePoint
	for _, p := range s.data {
		if p.EntityID == entityID && p.PriceDate.Equal(day) {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Hour < result[j].Hour
	})

	return result, nil
}

// ExistsForDate reports whether any point exists for (entity, date).
func (s *PricePointStore) ExistsForDate(_ context.Context, entityID int64, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(date)
	for _, p := range s.data {
		if p.EntityID == entityID && p.PriceDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of stored points.
func (s *PricePointStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
