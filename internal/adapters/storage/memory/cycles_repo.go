package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-care-tracker/internal/domain/cycles"
)

type cyclesRepo struct {
	mu   sync.RWMutex
	byID map[string]cycles.Cycle
}

func NewCyclesRepo() cycles.Repository {
	return &cyclesRepo{
		byID: make(map[string]cycles.Cycle),
	}
}

func (r *cyclesRepo) Create(ctx context.Context, c cycles.Cycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cycle id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("cycle already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *cyclesRepo) Update(ctx context.Context, c cycles.Cycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return cycles.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *cyclesRepo) GetByID(ctx context.Context, id string) (cycles.Cycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cycles.Cycle{}, cycles.ErrNotFound
	}
	return c, nil
}

func (r *cyclesRepo) ListByAnimal(ctx context.Context, animalID string) ([]cycles.Cycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cycles.Cycle, 0)
	for _, c := range r.byID {
		if c.AnimalID == animalID {
			out = append(out, c)
		}
	}

	// StartDate desc: el más reciente primero.
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (r *cyclesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

func (r *cyclesRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.byID {
		if c.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}
