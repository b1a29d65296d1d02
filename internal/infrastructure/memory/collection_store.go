// Package memory implementa el CollectionStore en memoria del proceso (dev y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.ExclusiveStore = (*CollectionStore)(nil)

// CollectionStore guarda una copia de los bytes de cada colección.
type CollectionStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writer sync.Mutex // una sección exclusiva a la vez, aunque haya varios runners
}

// NewCollectionStore construye un store vacío.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{data: make(map[string][]byte)}
}

func (s *CollectionStore) Get(_ context.Context, name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[name]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (s *CollectionStore) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = clone(data)
	return nil
}

// PutBatch aplica todas las escrituras bajo el mismo candado.
func (s *CollectionStore) PutBatch(_ context.Context, batch map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, data := range batch {
		s.data[name] = clone(data)
	}
	return nil
}

// RunExclusive serializa fn contra cualquier otra sección exclusiva sobre este store.
func (s *CollectionStore) RunExclusive(_ context.Context, fn func(repository.Session) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	return fn(s)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
