package store

import (
	"context"
	"sync"

	"github.com/vitalog/vita/internal/domain"
)

// MemoryKV is an in-memory store for tests and ephemeral runs. It carries
// both the KV surface and the event log. GetErr, SetErr and AppendErr, when
// set, are returned by every matching call — used to exercise the
// storage-failure paths.
type MemoryKV struct {
	mu     sync.RWMutex
	m      map[string]string
	events []domain.ActivityEvent

	GetErr    error
	SetErr    error
	AppendErr error
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

// Get retrieves a value.
func (k *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if k.GetErr != nil {
		return "", false, k.GetErr
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.m[key]
	return v, ok, nil
}

// Set stores a value.
func (k *MemoryKV) Set(_ context.Context, key, value string) error {
	if k.SetErr != nil {
		return k.SetErr
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

// AppendEvent records one activity event, skipping IDs already recorded.
func (k *MemoryKV) AppendEvent(_ context.Context, e domain.ActivityEvent) error {
	if k.AppendErr != nil {
		return k.AppendErr
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, have := range k.events {
		if have.ID == e.ID {
			return nil
		}
	}
	k.events = append(k.events, e)
	return nil
}

// Events returns a copy of the recorded history.
func (k *MemoryKV) Events(_ context.Context) ([]domain.ActivityEvent, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]domain.ActivityEvent, len(k.events))
	copy(out, k.events)
	return out, nil
}
