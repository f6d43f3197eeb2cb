package repository

import (
	"context"
	"sort"
	"sync"

	"solar_potential_backend/platform/apperr"

	"github.com/google/uuid"
)

// Memory keeps estimates in process. It backs deployments without DATABASE_URL and
// service tests; contents are lost on restart.
type Memory struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Estimate
}

// NewMemory creates an empty in-process repository.
func NewMemory() *Memory {
	return &Memory{items: make(map[uuid.UUID]Estimate)}
}

// Create stores an estimate.
func (m *Memory) Create(_ context.Context, e Estimate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.ID] = e
	return nil
}

// GetByID returns one estimate.
func (m *Memory) GetByID(_ context.Context, id uuid.UUID) (Estimate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[id]
	if !ok {
		return Estimate{}, apperr.NotFound(estimateNotFoundMsg)
	}
	return e, nil
}

// List pages through estimates newest first.
func (m *Memory) List(_ context.Context, params ListParams) (*ListResult, error) {
	m.mu.RLock()
	matched := make([]Estimate, 0, len(m.items))
	for _, e := range m.items {
		if params.Source != nil && e.Source != *params.Source {
			continue
		}
		matched = append(matched, e)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := (params.Page - 1) * params.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &ListResult{
		Items:      matched[start:end],
		Total:      len(matched),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(len(matched), params.PageSize),
	}, nil
}
