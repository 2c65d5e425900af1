package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
)

// MemoryStore keeps documents in process memory. It backs local development
// (STORE_BACKEND=memory) and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	newID       func() string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		newID:       uuid.NewString,
	}
}

func (m *MemoryStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		m.collections[collection] = docs
	}
	id := m.newID()
	docs[id] = cloneFields(fields)
	return id, nil
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.collections[collection][id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &Document{ID: id, Fields: cloneFields(fields)}, nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.collections[collection][id]
	if !ok {
		return apperr.ErrNotFound
	}
	for k, v := range fields {
		existing[k] = cloneValue(v)
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, collection, orderBy string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Document, 0, len(m.collections[collection]))
	for id, fields := range m.collections[collection] {
		out = append(out, Document{ID: id, Fields: cloneFields(fields)})
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Fields[orderBy], out[j].Fields[orderBy]
		if less(b, a) {
			return true
		}
		if less(a, b) {
			return false
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemoryStore) Close() error { return nil }
