package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-care-tracker/internal/domain/care"
)

type careRepo struct {
	mu   sync.RWMutex
	byID map[string]care.Record
}

func NewCareRepo() care.Repository {
	return &careRepo{
		byID: make(map[string]care.Record),
	}
}

func (r *careRepo) Create(ctx context.Context, rec care.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("care record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("care record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *careRepo) Update(ctx context.Context, rec care.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return care.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *careRepo) GetByID(ctx context.Context, id string) (care.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return care.Record{}, care.ErrNotFound
	}
	return rec, nil
}

func (r *careRepo) ListByAnimal(ctx context.Context, animalID string, kind care.Kind) ([]care.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]care.Record, 0)
	for _, rec := range r.byID {
		if rec.AnimalID != animalID {
			continue
		}
		if kind != "" && rec.Kind != kind {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *careRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

func (r *careRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}
