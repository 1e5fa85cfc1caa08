package store

import (
	"context"
	"sort"
	"sync"

	"github.com/scanform/scanform/pkg/errors"
)

// Memory is an in-process Catalog guarded by a mutex. It is the default
// backend for local runs and tests; counts do not survive a restart.
type Memory struct {
	mu    sync.Mutex
	items map[string]Product
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]Product)}
}

// List returns all products sorted by key.
func (m *Memory) List(ctx context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get returns the product with the given key.
func (m *Memory) Get(ctx context.Context, key string) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.items[key]
	if !ok {
		return Product{}, errors.New(errors.ErrCodeNotFound, "product %q not found", key)
	}
	return p, nil
}

// Put creates or replaces a product entry.
func (m *Memory) Put(ctx context.Context, p Product) error {
	if p.Key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "product key must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.Key] = p
	return nil
}

// Rename updates the name of an existing product.
func (m *Memory) Rename(ctx context.Context, key, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.items[key]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "product %q not found", key)
	}
	p.Name = name
	m.items[key] = p
	return nil
}

// Increment adds delta to the product's count. Unknown keys are created
// with the key as provisional name.
func (m *Memory) Increment(ctx context.Context, key string, delta int) (Product, error) {
	if key == "" {
		return Product{}, errors.New(errors.ErrCodeInvalidInput, "product key must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.items[key]
	if !ok {
		p = Product{Key: key, Name: key}
	}
	p.Count += delta
	m.items[key] = p
	return p, nil
}

// Close does nothing for the in-memory catalog.
func (m *Memory) Close(ctx context.Context) error {
	return nil
}

var _ Catalog = (*Memory)(nil)
