package repository

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryRepository returns a process-local repository. Contents are lost on restart.
func NewMemoryRepository() Repository {
	return &memoryRepository{slots: make(map[string]string)}
}

func (r *memoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.slots[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *memoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = value
	return nil
}

func (r *memoryRepository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, key)
	return nil
}
