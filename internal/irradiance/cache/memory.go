package cache

import (
	"context"
	"sync"
	"time"

	"solar_potential_backend/internal/irradiance/transport"
)

type memoryEntry struct {
	data      transport.IrradianceData
	expiresAt time.Time
}

// Memory is an in-process cache for single-instance deployments.
type Memory struct {
	mu      sync.RWMutex
	entries map[Key]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[Key]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the entry for key if it has not expired.
func (m *Memory) Get(_ context.Context, key Key) (transport.IrradianceData, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return transport.IrradianceData{}, false, nil
	}
	now := m.now()
	if !now.After(entry.expiresAt) {
		return entry.data, true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// A Set may have landed between the two locks.
	current, ok := m.entries[key]
	if !ok {
		return transport.IrradianceData{}, false, nil
	}
	if !now.After(current.expiresAt) {
		return current.data, true, nil
	}
	delete(m.entries, key)
	return transport.IrradianceData{}, false, nil
}

// Set stores data under key for ttl.
func (m *Memory) Set(_ context.Context, key Key, data transport.IrradianceData, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		data:      data,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
