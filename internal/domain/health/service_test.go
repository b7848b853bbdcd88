package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Record
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Record{}} }

func (r *testRepo) Create(ctx context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}

type testWeightRepo struct {
	byID map[string]WeightRecord
}

func newTestWeightRepo() *testWeightRepo { return &testWeightRepo{byID: map[string]WeightRecord{}} }

func (r *testWeightRepo) Create(ctx context.Context, rec WeightRecord) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testWeightRepo) Update(ctx context.Context, rec WeightRecord) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testWeightRepo) GetByID(ctx context.Context, id string) (WeightRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return WeightRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *testWeightRepo) ListByAnimal(ctx context.Context, animalID string) ([]WeightRecord, error) {
	out := make([]WeightRecord, 0)
	for _, rec := range r.byID {
		if rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testWeightRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *testWeightRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeDirectory struct {
	known map[string]bool
}

func (f *fakeDirectory) Exists(ctx context.Context, animalID string) (bool, error) {
	return f.known[animalID], nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *testRepo, *testWeightRepo) {
	repo := newTestRepo()
	weights := newTestWeightRepo()
	svc := NewService(repo, weights, &fakeDirectory{known: map[string]bool{"a1": true}})
	return svc, repo, weights
}

func TestAdd_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	bad := -1.0

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing animal", CreateInput{Date: day(2024, 4, 1), Appetite: AppetiteNormal, ActivityLevel: ActivityNormal}},
		{"unknown animal", CreateInput{AnimalID: "ghost", Date: day(2024, 4, 1), Appetite: AppetiteNormal, ActivityLevel: ActivityNormal}},
		{"zero date", CreateInput{AnimalID: "a1", Appetite: AppetiteNormal, ActivityLevel: ActivityNormal}},
		{"bad appetite", CreateInput{AnimalID: "a1", Date: day(2024, 4, 1), Appetite: 9, ActivityLevel: ActivityNormal}},
		{"negative weight", CreateInput{AnimalID: "a1", Date: day(2024, 4, 1), Appetite: AppetiteNormal, ActivityLevel: ActivityNormal, Weight: &bad}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Add = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestWeightHistory_MergesBothSources(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	w1 := 4.0
	// Chequeo con peso embebido (el más reciente).
	if _, err := svc.Add(ctx, CreateInput{
		AnimalID: "a1", Date: day(2024, 4, 10), Weight: &w1,
		Appetite: AppetiteNormal, ActivityLevel: ActivityNormal,
	}); err != nil {
		t.Fatalf("Add record: %v", err)
	}
	// Chequeo sin peso: no aparece en la serie.
	if _, err := svc.Add(ctx, CreateInput{
		AnimalID: "a1", Date: day(2024, 4, 5),
		Appetite: AppetiteNormal, ActivityLevel: ActivityNormal,
	}); err != nil {
		t.Fatalf("Add record: %v", err)
	}
	// Peso suelto, anterior.
	if _, err := svc.AddWeight(ctx, WeightInput{
		AnimalID: "a1", Date: day(2024, 4, 1), Weight: 3.8,
	}); err != nil {
		t.Fatalf("AddWeight: %v", err)
	}

	history, err := svc.WeightHistory(ctx, "a1")
	if err != nil {
		t.Fatalf("WeightHistory: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	// Orden descendente por fecha: primero el embebido del 10/4.
	if history[0].Weight != 4.0 || !history[0].Date.Equal(day(2024, 4, 10)) {
		t.Errorf("history[0] = %+v", history[0])
	}
	if history[1].Weight != 3.8 || !history[1].Date.Equal(day(2024, 4, 1)) {
		t.Errorf("history[1] = %+v", history[1])
	}
}

func TestDeleteByAnimal_RemovesRecordsAndWeights(t *testing.T) {
	svc, repo, weights := newTestService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, CreateInput{
		AnimalID: "a1", Date: day(2024, 4, 1),
		Appetite: AppetiteNormal, ActivityLevel: ActivityNormal,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.AddWeight(ctx, WeightInput{AnimalID: "a1", Date: day(2024, 4, 1), Weight: 4.2}); err != nil {
		t.Fatalf("AddWeight: %v", err)
	}

	if err := svc.DeleteByAnimal(ctx, "a1"); err != nil {
		t.Fatalf("DeleteByAnimal: %v", err)
	}

	if len(repo.byID) != 0 || len(weights.byID) != 0 {
		t.Errorf("leftovers after cascade: records=%d weights=%d", len(repo.byID), len(weights.byID))
	}
}

func TestAddWeight_RequiresPositiveWeight(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddWeight(context.Background(), WeightInput{
		AnimalID: "a1", Date: day(2024, 4, 1), Weight: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
