package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-care-tracker/internal/domain/health"
)

type healthRepo struct {
	mu   sync.RWMutex
	byID map[string]health.Record
}

func NewHealthRepo() health.Repository {
	return &healthRepo{
		byID: make(map[string]health.Record),
	}
}

func (r *healthRepo) Create(ctx context.Context, rec health.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("health record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("health record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRepo) Update(ctx context.Context, rec health.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return health.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return health.Record{}, health.ErrNotFound
	}
	return rec, nil
}

func (r *healthRepo) ListByAnimal(ctx context.Context, animalID string) ([]health.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]health.Record, 0)
	for _, rec := range r.byID {
		if rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *healthRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

func (r *healthRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}
