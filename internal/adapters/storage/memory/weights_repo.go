package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-care-tracker/internal/domain/health"
)

type weightsRepo struct {
	mu   sync.RWMutex
	byID map[string]health.WeightRecord
}

func NewWeightsRepo() health.WeightRepository {
	return &weightsRepo{
		byID: make(map[string]health.WeightRecord),
	}
}

func (r *weightsRepo) Create(ctx context.Context, rec health.WeightRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("weight record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("weight record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *weightsRepo) Update(ctx context.Context, rec health.WeightRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return health.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *weightsRepo) GetByID(ctx context.Context, id string) (health.WeightRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return health.WeightRecord{}, health.ErrNotFound
	}
	return rec, nil
}

func (r *weightsRepo) ListByAnimal(ctx context.Context, animalID string) ([]health.WeightRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]health.WeightRecord, 0)
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

func (r *weightsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

func (r *weightsRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}
