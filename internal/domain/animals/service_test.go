package animals

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
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Animal, error) {
	out := make([]Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) {
	return len(r.byID), nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// fakeResolver simula la capa de billing.
type fakeResolver struct {
	unlimited bool
	err       error
}

func (f *fakeResolver) Has(ctx context.Context, capability string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.unlimited, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, nil)
	svc.now = func() time.Time {
		return time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	}
	svc.pickColor = func() string { return palette[0] }
	return svc
}

func TestAdd_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{Species: "cat"}},
		{"empty species", CreateInput{Name: "Luna"}},
		{"bad gender", CreateInput{Name: "Luna", Species: "cat", Gender: "robot"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Add(%+v) = %v, want ErrInvalidInput", tc.in, err)
			}
		})
	}
}

func TestAdd_Defaults(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	a, err := svc.Add(ctx, CreateInput{Name: "  Luna  ", Species: "cat"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if a.ID == "" {
		t.Error("expected generated ID")
	}
	if a.Name != "Luna" {
		t.Errorf("Name = %q, want trimmed Luna", a.Name)
	}
	if a.Gender != GenderUnknown {
		t.Errorf("Gender = %q, want unknown default", a.Gender)
	}
	if a.Color != palette[0] {
		t.Errorf("Color = %q, want assigned from palette", a.Color)
	}
	if a.CreatedAt.IsZero() || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Errorf("timestamps: created=%v updated=%v", a.CreatedAt, a.UpdatedAt)
	}
}

func TestAdd_RegistrationLimit(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	caps := &fakeResolver{}
	svc.caps = caps
	ctx := context.Background()

	for i := 0; i < FreeAnimalLimit; i++ {
		if _, err := svc.Add(ctx, CreateInput{Name: "A", Species: "cat"}); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
	}

	// Cuarto animal sin capability: rechazado.
	if _, err := svc.Add(ctx, CreateInput{Name: "B", Species: "cat"}); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	// Con animals.unlimited pasa.
	caps.unlimited = true
	if _, err := svc.Add(ctx, CreateInput{Name: "B", Species: "cat"}); err != nil {
		t.Fatalf("Add with capability: %v", err)
	}

	// Billing caído no permite saltarse el límite.
	caps.unlimited = false
	caps.err = errors.New("upstream down")
	if _, err := svc.Add(ctx, CreateInput{Name: "C", Species: "cat"}); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached on billing error, got %v", err)
	}
}

func TestAdd_NoLimitWithoutResolver(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	for i := 0; i < FreeAnimalLimit+2; i++ {
		if _, err := svc.Add(ctx, CreateInput{Name: "A", Species: "cat"}); err != nil {
			t.Fatalf("Add #%d without resolver: %v", i, err)
		}
	}
}

func TestUpdate_ImmutableFields(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	a, err := svc.Add(ctx, CreateInput{Name: "Luna", Species: "cat"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	later := a.CreatedAt.Add(48 * time.Hour)
	svc.now = func() time.Time { return later }

	updated, err := svc.Update(ctx, Animal{
		ID:      a.ID,
		Name:    "Luna II",
		Species: "cat",
		Gender:  GenderFemale,
		// CreatedAt deliberadamente en cero: el service lo preserva.
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !updated.CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", a.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, later)
	}
	if updated.Color != a.Color {
		t.Errorf("Color = %q, want preserved %q", updated.Color, a.Color)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newTestRepo())

	_, err := svc.Update(context.Background(), Animal{
		ID: "ghost", Name: "X", Species: "cat", Gender: GenderUnknown,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateColor(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	a, _ := svc.Add(ctx, CreateInput{Name: "Luna", Species: "cat"})

	updated, err := svc.UpdateColor(ctx, a.ID, "#48CFAD")
	if err != nil {
		t.Fatalf("UpdateColor: %v", err)
	}
	if updated.Color != "#48CFAD" {
		t.Errorf("Color = %q", updated.Color)
	}

	if _, err := svc.UpdateColor(ctx, a.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank color, got %v", err)
	}
}

func TestExists(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	a, _ := svc.Add(ctx, CreateInput{Name: "Luna", Species: "cat"})

	ok, err := svc.Exists(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("Exists(%s) = %v, %v", a.ID, ok, err)
	}

	ok, err = svc.Exists(ctx, "ghost")
	if err != nil || ok {
		t.Fatalf("Exists(ghost) = %v, %v; want false, nil", ok, err)
	}
}
