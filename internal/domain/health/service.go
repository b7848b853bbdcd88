package health

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("health record not found")
)

type AnimalDirectory interface {
	Exists(ctx context.Context, animalID string) (bool, error)
}

type Service struct {
	repo    Repository
	weights WeightRepository
	animals AnimalDirectory
}

func NewService(repo Repository, weights WeightRepository, animals AnimalDirectory) *Service {
	return &Service{
		repo:    repo,
		weights: weights,
		animals: animals,
	}
}

type CreateInput struct {
	AnimalID      string
	Date          time.Time
	Weight        *float64
	Temperature   *float64
	Appetite      Appetite
	ActivityLevel ActivityLevel
	Notes         string
}

func (s *Service) Add(ctx context.Context, in CreateInput) (Record, error) {
	if strings.TrimSpace(in.AnimalID) == "" || in.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if !ValidAppetite(in.Appetite) || !ValidActivityLevel(in.ActivityLevel) {
		return Record{}, ErrInvalidInput
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return Record{}, ErrInvalidInput
	}

	ok, err := s.animals.Exists(ctx, in.AnimalID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, ErrInvalidInput
	}

	rec := Record{
		ID:            uuid.NewString(),
		AnimalID:      strings.TrimSpace(in.AnimalID),
		Date:          in.Date,
		Weight:        in.Weight,
		Temperature:   in.Temperature,
		Appetite:      in.Appetite,
		ActivityLevel: in.ActivityLevel,
		Notes:         strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.ID) == "" || rec.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if !ValidAppetite(rec.Appetite) || !ValidActivityLevel(rec.ActivityLevel) {
		return Record{}, ErrInvalidInput
	}

	prev, err := s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return Record{}, err
	}
	if rec.AnimalID != prev.AnimalID {
		ok, err := s.animals.Exists(ctx, rec.AnimalID)
		if err != nil {
			return Record{}, err
		}
		if !ok {
			return Record{}, ErrInvalidInput
		}
	}

	rec.Notes = strings.TrimSpace(rec.Notes)
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Record, error) {
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByAnimal borra chequeos y pesos del animal (cascade delete).
func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) error {
	if err := s.repo.DeleteByAnimal(ctx, animalID); err != nil {
		return err
	}
	return s.weights.DeleteByAnimal(ctx, animalID)
}

// --- WeightRecord ---

type WeightInput struct {
	AnimalID string
	Date     time.Time
	Weight   float64
	Notes    string
}

func (s *Service) AddWeight(ctx context.Context, in WeightInput) (WeightRecord, error) {
	if strings.TrimSpace(in.AnimalID) == "" || in.Date.IsZero() || in.Weight <= 0 {
		return WeightRecord{}, ErrInvalidInput
	}

	ok, err := s.animals.Exists(ctx, in.AnimalID)
	if err != nil {
		return WeightRecord{}, err
	}
	if !ok {
		return WeightRecord{}, ErrInvalidInput
	}

	rec := WeightRecord{
		ID:       uuid.NewString(),
		AnimalID: strings.TrimSpace(in.AnimalID),
		Date:     in.Date,
		Weight:   in.Weight,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if err := s.weights.Create(ctx, rec); err != nil {
		return WeightRecord{}, err
	}
	return rec, nil
}

func (s *Service) UpdateWeight(ctx context.Context, rec WeightRecord) (WeightRecord, error) {
	if strings.TrimSpace(rec.ID) == "" || rec.Date.IsZero() || rec.Weight <= 0 {
		return WeightRecord{}, ErrInvalidInput
	}
	prev, err := s.weights.GetByID(ctx, rec.ID)
	if err != nil {
		return WeightRecord{}, err
	}
	if rec.AnimalID != prev.AnimalID {
		ok, err := s.animals.Exists(ctx, rec.AnimalID)
		if err != nil {
			return WeightRecord{}, err
		}
		if !ok {
			return WeightRecord{}, ErrInvalidInput
		}
	}
	rec.Notes = strings.TrimSpace(rec.Notes)
	if err := s.weights.Update(ctx, rec); err != nil {
		return WeightRecord{}, err
	}
	return rec, nil
}

func (s *Service) ListWeights(ctx context.Context, animalID string) ([]WeightRecord, error) {
	return s.weights.ListByAnimal(ctx, animalID)
}

func (s *Service) DeleteWeight(ctx context.Context, id string) error {
	return s.weights.Delete(ctx, id)
}

// WeightHistory devuelve la serie de peso del animal combinando los
// WeightRecord explícitos con los pesos embebidos en los chequeos de salud,
// ordenada por fecha descendente.
func (s *Service) WeightHistory(ctx context.Context, animalID string) ([]WeightRecord, error) {
	explicit, err := s.weights.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	out := make([]WeightRecord, 0, len(explicit)+len(records))
	out = append(out, explicit...)
	for _, rec := range records {
		if rec.Weight == nil {
			continue
		}
		out = append(out, WeightRecord{
			ID:       rec.ID,
			AnimalID: rec.AnimalID,
			Date:     rec.Date,
			Weight:   *rec.Weight,
			Notes:    rec.Notes,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
