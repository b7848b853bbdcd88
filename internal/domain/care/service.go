package care

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("care record not found")
)

// staleWindow: al buscar el próximo cuidado agendado se ignoran fechas
// vencidas hace más de 30 días.
const staleWindow = 30 * 24 * time.Hour

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
	AnimalID          string
	Kind              Kind
	Label             string
	Date              time.Time
	NextScheduledDate *time.Time
	IntervalDays      *int
	Notes             string
	Color             string
}

func (s *Service) Add(ctx context.Context, in CreateInput) (Record, error) {
	if strings.TrimSpace(in.AnimalID) == "" || in.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if !ValidKind(in.Kind) {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Label) == "" {
		return Record{}, ErrInvalidInput
	}
	// Intervalo cero o negativo es input inválido, no "sin intervalo".
	if in.IntervalDays != nil && *in.IntervalDays <= 0 {
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
		ID:                uuid.NewString(),
		AnimalID:          strings.TrimSpace(in.AnimalID),
		Kind:              in.Kind,
		Label:             strings.TrimSpace(in.Label),
		Date:              in.Date,
		NextScheduledDate: in.NextScheduledDate,
		IntervalDays:      in.IntervalDays,
		Notes:             strings.TrimSpace(in.Notes),
		Color:             strings.TrimSpace(in.Color),
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
	if !ValidKind(rec.Kind) || strings.TrimSpace(rec.Label) == "" {
		return Record{}, ErrInvalidInput
	}
	if rec.IntervalDays != nil && *rec.IntervalDays <= 0 {
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

	rec.Label = strings.TrimSpace(rec.Label)
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

func (s *Service) ListByAnimal(ctx context.Context, animalID string, kind Kind) ([]Record, error) {
	if kind != "" && !ValidKind(kind) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID, kind)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByAnimal es parte del cascade delete de un animal.
func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) error {
	return s.repo.DeleteByAnimal(ctx, animalID)
}

// NextScheduled devuelve el registro con la próxima fecha comprometida más
// cercana para el animal (y tipo, si se indica). Ignora registros sin fecha
// y fechas vencidas hace más de 30 días. nil si no hay nada agendado.
func (s *Service) NextScheduled(ctx context.Context, animalID string, kind Kind) (*Record, error) {
	records, err := s.repo.ListByAnimal(ctx, animalID, kind)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-staleWindow)

	var winner *Record
	for i := range records {
		rec := records[i]
		if rec.NextScheduledDate == nil || rec.NextScheduledDate.Before(cutoff) {
			continue
		}
		if winner == nil || rec.NextScheduledDate.Before(*winner.NextScheduledDate) {
			winner = &rec
		}
	}
	return winner, nil
}
