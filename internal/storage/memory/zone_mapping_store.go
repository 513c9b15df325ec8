package memory

import (
	"context"
	"sort"
	"sync"

	"entsoe-collector/internal/domain"
	"entsoe-collector/internal/storage"
)

// ZoneMappingStore is an in-memory implementation of storage.ZoneMappingStore.
type ZoneMappingStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.ZoneMapping // keyed by entity_id
}

// NewZoneMappingStore creates a new in-memory zone mapping store.
func NewZoneMappingStore() *ZoneMappingStore {
	return &ZoneMappingStore{
		data: make(map[int64]*domain.ZoneMapping),
	}
}

// Compile-time interface check.
var _ storage.ZoneMappingStore = (*ZoneMappingStore)(nil)

// GetByEntityID retrieves the mapping for an entity.
func (s *ZoneMappingStore) GetByEntityID(_ context.Context, entityID int64) (*domain.ZoneMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[entityID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	mappingCopy := *m
	return &mappingCopy, nil
}

// GetByDomainCode retrieves the mapping for an ENTSO-E domain code.
func (s *ZoneMappingStore) GetByDomainCode(_ context.Context, domainCode string) (*domain.ZoneMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.data {
		if m.DomainCode == domainCode {
			mappingCopy := *m
			return &mappingCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

// List retrieves all mappings, ordered by entity_id ASC.
func (s *ZoneMappingStore) List(_ context.Context) ([]*domain.ZoneMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ZoneMapping
	for _, m := range s.data {
		mappingCopy := *m
		result = append(result, &mappingCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].EntityID < result[j].EntityID
	})

	return result, nil
}

// Upsert inserts or replaces a mapping, keyed by entity_id.
func (s *ZoneMappingStore) Upsert(_ context.Context, m *domain.ZoneMapping) error {
	if m == nil || m.DomainCode == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.data {
		if existing.DomainCode == m.DomainCode && id != m.EntityID {
			return storage.ErrDuplicateKey
		}
	}

	mappingCopy := *m
	s.data[m.EntityID] = &mappingCopy
	return nil
}
