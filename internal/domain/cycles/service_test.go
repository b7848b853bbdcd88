package cycles

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Cycle
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Cycle{}}
}

func (r *testRepo) Create(ctx context.Context, c Cycle) error {
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Cycle) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Cycle, error) {
	c, ok := r.byID[id]
	if !ok {
		return Cycle{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]Cycle, error) {
	out := make([]Cycle, 0)
	for _, c := range r.byID {
		if c.AnimalID == animalID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	for id, c := range r.byID {
		if c.AnimalID == animalID {
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

func newTestService(repo Repository) *Service {
	svc := NewService(repo, &fakeDirectory{known: map[string]bool{"a1": true}})
	svc.now = func() time.Time {
		return time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestAdd_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	early := day(2024, 2, 1)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing animal", CreateInput{StartDate: day(2024, 3, 1)}},
		{"unknown animal", CreateInput{AnimalID: "ghost", StartDate: day(2024, 3, 1)}},
		{"zero start", CreateInput{AnimalID: "a1"}},
		{"bad intensity", CreateInput{AnimalID: "a1", StartDate: day(2024, 3, 1), Intensity: 9}},
		{"end before start", CreateInput{AnimalID: "a1", StartDate: day(2024, 3, 1), EndDate: &early}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Add = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAdd_DefaultsIntensityToMedium(t *testing.T) {
	svc := newTestService(newTestRepo())

	// Sin intensidad: vale y queda en medium, igual que por HTTP.
	c, err := svc.Add(context.Background(), CreateInput{
		AnimalID: "a1", StartDate: day(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("Add without intensity: %v", err)
	}
	if c.Intensity != IntensityMedium {
		t.Errorf("Intensity = %v, want medium", c.Intensity)
	}
}

func TestUpdate_DefaultsIntensityToMedium(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	c, err := svc.Add(ctx, CreateInput{AnimalID: "a1", StartDate: day(2024, 3, 1), Intensity: IntensityHeavy})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	c.Intensity = 0
	updated, err := svc.Update(ctx, c)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Intensity != IntensityMedium {
		t.Errorf("Intensity = %v, want medium", updated.Intensity)
	}
}

func TestUpdate_RejectsMoveToUnknownAnimal(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	c, err := svc.Add(ctx, CreateInput{AnimalID: "a1", StartDate: day(2024, 3, 1)})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	c.AnimalID = "ghost"
	if _, err := svc.Update(ctx, c); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput moving to unknown animal, got %v", err)
	}
}
