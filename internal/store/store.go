// Package store es la fachada del Entity Store: único dueño de las
// mutaciones. Serializa cada mutación (y su cascade) con un mutex, valida
// las FKs a través de los services de dominio y dispara el coordinador de
// recordatorios después de cada cambio. Las lecturas no toman el lock: los
// repos garantizan snapshots consistentes.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"animal-care-tracker/internal/domain/animals"
	"animal-care-tracker/internal/domain/care"
	"animal-care-tracker/internal/domain/cycles"
	"animal-care-tracker/internal/domain/health"
	"animal-care-tracker/internal/platform/metrics"
	"animal-care-tracker/internal/reminder"
)

type Store struct {
	mu sync.Mutex

	animals *animals.Service
	cycles  *cycles.Service
	health  *health.Service
	care    *care.Service

	// rem puede ser nil: el store funciona sin recordatorios (tests,
	// herramientas de import).
	rem *reminder.Coordinator
}

func New(a *animals.Service, cy *cycles.Service, h *health.Service, ca *care.Service, rem *reminder.Coordinator) *Store {
	return &Store{
		animals: a,
		cycles:  cy,
		health:  h,
		care:    ca,
		rem:     rem,
	}
}

// --- Animals ---

func (s *Store) AddAnimal(ctx context.Context, in animals.CreateInput) (animals.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.animals.Add(ctx, in)
	if err != nil {
		return animals.Animal{}, err
	}
	metrics.StoreMutations.WithLabelValues("animal", "add").Inc()
	return a, nil
}

func (s *Store) UpdateAnimal(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.animals.GetByID(ctx, a.ID)
	if err != nil {
		return animals.Animal{}, err
	}

	updated, err := s.animals.Update(ctx, a)
	if err != nil {
		return animals.Animal{}, err
	}
	metrics.StoreMutations.WithLabelValues("animal", "update").Inc()

	// El nombre participa del identificador determinístico de los
	// recordatorios: si cambió hay que re-sincronizar todo el animal.
	if prev.Name != updated.Name {
		s.resyncAnimal(ctx, updated)
	}
	return updated, nil
}

func (s *Store) UpdateAnimalColor(ctx context.Context, id, color string) (animals.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animals.UpdateColor(ctx, id, color)
}

// DeleteAnimal borra el animal y, en cascada, todos sus registros
// dependientes y recordatorios. Idempotente: un id inexistente no es error.
func (s *Store) DeleteAnimal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.animals.GetByID(ctx, id); err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return nil
		}
		return err
	}

	// El animal primero: en los backends SQL el esquema declara
	// ON DELETE CASCADE, así que ese único DELETE arrastra a todos los
	// dependientes atómicamente. El barrido de dependientes que sigue es
	// por el backend de memoria (sin FKs); sobre SQL no borra nada.
	if err := s.animals.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.deleteDependents(ctx, id); err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues("animal", "delete").Inc()

	if s.rem != nil {
		s.rem.CancelForAnimal(id)
	}
	return nil
}

func (s *Store) GetAnimal(ctx context.Context, id string) (animals.Animal, error) {
	return s.animals.GetByID(ctx, id)
}

func (s *Store) ListAnimals(ctx context.Context) ([]animals.Animal, error) {
	return s.animals.List(ctx)
}

// AnimalCount existe para los consumidores de solo lectura (límite de
// registración de billing, export).
func (s *Store) AnimalCount(ctx context.Context) (int, error) {
	return s.animals.Count(ctx)
}

// --- Cycles ---

func (s *Store) AddCycle(ctx context.Context, in cycles.CreateInput) (cycles.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cycles.Add(ctx, in)
	if err != nil {
		return cycles.Cycle{}, err
	}
	metrics.StoreMutations.WithLabelValues("cycle", "add").Inc()
	s.syncCyclePrediction(ctx, c.AnimalID)
	return c, nil
}

func (s *Store) UpdateCycle(ctx context.Context, c cycles.Cycle) (cycles.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.cycles.GetByID(ctx, c.ID)
	if err != nil {
		return cycles.Cycle{}, err
	}

	updated, err := s.cycles.Update(ctx, c)
	if err != nil {
		return cycles.Cycle{}, err
	}
	metrics.StoreMutations.WithLabelValues("cycle", "update").Inc()

	// Si el ciclo cambió de animal, el historial del animal viejo también
	// cambió: su predicción debe recalcularse (o cancelarse).
	if prev.AnimalID != updated.AnimalID {
		s.syncCyclePrediction(ctx, prev.AnimalID)
	}
	s.syncCyclePrediction(ctx, updated.AnimalID)
	return updated, nil
}

func (s *Store) DeleteCycle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cycles.ErrNotFound) {
			return nil // idempotente
		}
		return err
	}
	if err := s.cycles.Delete(ctx, id); err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues("cycle", "delete").Inc()
	s.syncCyclePrediction(ctx, prev.AnimalID)
	return nil
}

func (s *Store) CyclesForAnimal(ctx context.Context, animalID string) ([]cycles.Cycle, error) {
	return s.cycles.ListByAnimal(ctx, animalID)
}

func (s *Store) GetCycle(ctx context.Context, id string) (cycles.Cycle, error) {
	return s.cycles.GetByID(ctx, id)
}

func (s *Store) PredictNextCycle(ctx context.Context, animalID string) (time.Time, error) {
	return s.cycles.PredictForAnimal(ctx, animalID)
}

// --- Health ---

func (s *Store) AddHealthRecord(ctx context.Context, in health.CreateInput) (health.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.health.Add(ctx, in)
	if err != nil {
		return health.Record{}, err
	}
	metrics.StoreMutations.WithLabelValues("health", "add").Inc()
	return rec, nil
}

func (s *Store) UpdateHealthRecord(ctx context.Context, rec health.Record) (health.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.health.Update(ctx, rec)
	if err != nil {
		return health.Record{}, err
	}
	metrics.StoreMutations.WithLabelValues("health", "update").Inc()
	return updated, nil
}

func (s *Store) DeleteHealthRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.health.Delete(ctx, id); err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues("health", "delete").Inc()
	return nil
}

func (s *Store) HealthRecordsForAnimal(ctx context.Context, animalID string) ([]health.Record, error) {
	return s.health.ListByAnimal(ctx, animalID)
}

func (s *Store) GetHealthRecord(ctx context.Context, id string) (health.Record, error) {
	return s.health.GetByID(ctx, id)
}

func (s *Store) AddWeightRecord(ctx context.Context, in health.WeightInput) (health.WeightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.health.AddWeight(ctx, in)
	if err != nil {
		return health.WeightRecord{}, err
	}
	metrics.StoreMutations.WithLabelValues("weight", "add").Inc()
	return rec, nil
}

func (s *Store) UpdateWeightRecord(ctx context.Context, rec health.WeightRecord) (health.WeightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.health.UpdateWeight(ctx, rec)
	if err != nil {
		return health.WeightRecord{}, err
	}
	metrics.StoreMutations.WithLabelValues("weight", "update").Inc()
	return updated, nil
}

func (s *Store) DeleteWeightRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.health.DeleteWeight(ctx, id); err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues("weight", "delete").Inc()
	return nil
}

func (s *Store) WeightRecordsForAnimal(ctx context.Context, animalID string) ([]health.WeightRecord, error) {
	return s.health.ListWeights(ctx, animalID)
}

func (s *Store) WeightHistory(ctx context.Context, animalID string) ([]health.WeightRecord, error) {
	return s.health.WeightHistory(ctx, animalID)
}

// --- Care records ---

func (s *Store) AddCareRecord(ctx context.Context, in care.CreateInput) (care.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.care.Add(ctx, in)
	if err != nil {
		return care.Record{}, err
	}
	metrics.StoreMutations.WithLabelValues(string(rec.Kind), "add").Inc()
	s.syncCareReminder(ctx, rec)
	return rec, nil
}

func (s *Store) UpdateCareRecord(ctx context.Context, rec care.Record) (care.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.care.Update(ctx, rec)
	if err != nil {
		return care.Record{}, err
	}
	metrics.StoreMutations.WithLabelValues(string(updated.Kind), "update").Inc()
	s.syncCareReminder(ctx, updated)
	return updated, nil
}

func (s *Store) DeleteCareRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.care.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, care.ErrNotFound) {
			return nil // idempotente
		}
		return err
	}
	if err := s.care.Delete(ctx, id); err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues(string(prev.Kind), "delete").Inc()

	if s.rem != nil {
		s.rem.RemoveCareRecord(id)
	}
	return nil
}

func (s *Store) CareRecordsForAnimal(ctx context.Context, animalID string, kind care.Kind) ([]care.Record, error) {
	return s.care.ListByAnimal(ctx, animalID, kind)
}

func (s *Store) GetCareRecord(ctx context.Context, id string) (care.Record, error) {
	return s.care.GetByID(ctx, id)
}

func (s *Store) NextScheduledCare(ctx context.Context, animalID string, kind care.Kind) (*care.Record, error) {
	return s.care.NextScheduled(ctx, animalID, kind)
}

// --- internals ---

func (s *Store) deleteDependents(ctx context.Context, animalID string) error {
	if err := s.care.DeleteByAnimal(ctx, animalID); err != nil {
		return err
	}
	if err := s.cycles.DeleteByAnimal(ctx, animalID); err != nil {
		return err
	}
	return s.health.DeleteByAnimal(ctx, animalID)
}

func (s *Store) syncCyclePrediction(ctx context.Context, animalID string) {
	if s.rem == nil {
		return
	}
	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return
	}
	history, err := s.cycles.ListByAnimal(ctx, animalID)
	if err != nil {
		return
	}
	s.rem.SyncCyclePrediction(a, history)
}

func (s *Store) syncCareReminder(ctx context.Context, rec care.Record) {
	if s.rem == nil {
		return
	}
	a, err := s.animals.GetByID(ctx, rec.AnimalID)
	if err != nil {
		return
	}
	s.rem.SyncCareRecord(a, rec)
}

// resyncAnimal re-emite los recordatorios del animal (predicción de ciclo
// y cuidados con recordatorio) con el estado actual.
func (s *Store) resyncAnimal(ctx context.Context, a animals.Animal) {
	if s.rem == nil {
		return
	}
	s.syncCyclePrediction(ctx, a.ID)

	records, err := s.care.ListByAnimal(ctx, a.ID, "")
	if err != nil {
		return
	}
	for _, rec := range records {
		s.rem.SyncCareRecord(a, rec)
	}
}
