package out

import (
	"context"
	"sync"

	"drill/internal/modules/exercise/domain"
	exerciseout "drill/internal/modules/exercise/port/out"
)

// MemoryCatalogStore keeps the active catalog for the lifetime of the
// process. The CLI, the watcher and the TUI may touch it from different
// goroutines.
type MemoryCatalogStore struct {
	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewMemoryCatalogStore() exerciseout.CatalogStore {
	return &MemoryCatalogStore{catalog: domain.NewCatalog()}
}

func (s *MemoryCatalogStore) Replace(_ context.Context, catalog domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	return nil
}

func (s *MemoryCatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, nil
}
