package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// PriceRevisionStore is an in-memory implementation of storage.PriceRevisionStore.
type PriceRevisionStore struct {
	mu   sync.RWMutex
	data []*domain.PriceRevision
}

// NewPriceRevisionStore creates a new in-memory price revision store.
func NewPriceRevisionStore() *PriceRevisionStore {
	return &PriceRevisionStore{}
}

// Compile-time interface check.
var _ storage.PriceRevisionStore = (*PriceRevisionStore)(nil)

// InsertBulk appends a batch of revisions.
func (s *PriceRevisionStore) InsertBulk(_ context.Context, revisions []*domain.PriceRevision) error {
	if len(revisions) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range revisions {
		if r == nil {
			return storage.ErrInvalidInput
		}
		revisionCopy := *r
		revisionCopy.PriceDate = domain.DateOnly(r.PriceDate)
		s.data = append(s.data, &revisionCopy)
	}
	return nil
}

// GetByEntityDate retrieves revisions for (entity, date), ordered by
// fetched_at ASC, hour ASC.
func (s *PriceRevisionStore) GetByEntityDate(_ context.Context, entityID int64, date time.Time) ([]*domain.PriceRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(date)
	var result []*domain.PriceRevision
	for _, r := range s.data {
		if r.EntityID == entityID && r.PriceDate.Equal(day) {
			revisionCopy := *r
			result = append(result, &revisionCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].FetchedAt.Equal(result[j].FetchedAt) {
			return result[i].FetchedAt.Before(result[j].FetchedAt)
		}
		return result[i].Hour < result[j].Hour
	})

	return result, nil
}
