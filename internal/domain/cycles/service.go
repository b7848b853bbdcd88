package cycles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cycle not found")
)

// AnimalDirectory valida la FK animalId. Lo implementa animals.Service;
// se declara acá para no acoplar módulos.
type AnimalDirectory interface {
	Exists(ctx context.Context, animalID string) (bool, error)
}

type Service struct {
	repo    Repository
	animals AnimalDirectory
	now     func() time.Time
}

func NewService(repo Repository, animals AnimalDirectory) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		now:     time.Now,
	}
}

type CreateInput struct {
	AnimalID  string
	StartDate time.Time
	EndDate   *time.Time
	Intensity Intensity
	Notes     string
}

func (s *Service) Add(ctx context.Context, in CreateInput) (Cycle, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return Cycle{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return Cycle{}, ErrInvalidInput
	}
	// Intensidad sin especificar = medium, igual que en la capa HTTP.
	if in.Intensity == 0 {
		in.Intensity = IntensityMedium
	}
	if !ValidIntensity(in.Intensity) {
		return Cycle{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Cycle{}, ErrInvalidInput
	}

	ok, err := s.animals.Exists(ctx, in.AnimalID)
	if err != nil {
		return Cycle{}, err
	}
	if !ok {
		return Cycle{}, ErrInvalidInput
	}

	c := Cycle{
		ID:         uuid.NewString(),
		AnimalID:   strings.TrimSpace(in.AnimalID),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Intensity:  in.Intensity,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cycle{}, err
	}
	return c, nil
}

// Update reemplaza el ciclo completo. No permite mover el registro a un
// animal inexistente.
func (s *Service) Update(ctx context.Context, c Cycle) (Cycle, error) {
	if strings.TrimSpace(c.ID) == "" {
		return Cycle{}, ErrInvalidInput
	}
	if c.Intensity == 0 {
		c.Intensity = IntensityMedium
	}
	if c.StartDate.IsZero() || !ValidIntensity(c.Intensity) {
		return Cycle{}, ErrInvalidInput
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return Cycle{}, ErrInvalidInput
	}

	prev, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return Cycle{}, err
	}

	if c.AnimalID != prev.AnimalID {
		ok, err := s.animals.Exists(ctx, c.AnimalID)
		if err != nil {
			return Cycle{}, err
		}
		if !ok {
			return Cycle{}, ErrInvalidInput
		}
	}

	c.Notes = strings.TrimSpace(c.Notes)
	c.RecordedAt = prev.RecordedAt

	if err := s.repo.Update(ctx, c); err != nil {
		return Cycle{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Cycle{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Cycle, error) {
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByAnimal es parte del cascade delete de un animal.
func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) error {
	return s.repo.DeleteByAnimal(ctx, animalID)
}

// PredictForAnimal corre el predictor sobre el historial almacenado.
func (s *Service) PredictForAnimal(ctx context.Context, animalID string) (time.Time, error) {
	history, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return time.Time{}, err
	}
	return PredictNext(history, s.now())
}
