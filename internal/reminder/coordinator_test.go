package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"animal-care-tracker/internal/domain/animals"
	"animal-care-tracker/internal/domain/care"
	"animal-care-tracker/internal/domain/cycles"
	"animal-care-tracker/internal/platform/logger"
	"animal-care-tracker/internal/ports/notify"
)

// fakeNotifier registra las operaciones en orden.
type fakeNotifier struct {
	mu        sync.Mutex
	scheduled []notify.Request
	cancelled []string
	ops       []string // "schedule:<id>" | "cancel:<id>" | "cancelAll"
}

func (f *fakeNotifier) Schedule(ctx context.Context, req notify.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, req)
	f.ops = append(f.ops, "schedule:"+req.ID)
	return nil
}

func (f *fakeNotifier) Cancel(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	f.ops = append(f.ops, "cancel:"+id)
	return nil
}

func (f *fakeNotifier) CancelAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "cancelAll")
	return nil
}

func (f *fakeNotifier) snapshotOps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCoordinator(now time.Time) (*Coordinator, *fakeNotifier) {
	fn := &fakeNotifier{}
	c := NewCoordinator(fn, logger.New(logger.Options{Level: logger.Error}))
	c.now = func() time.Time { return now }
	return c, fn
}

var luna = animals.Animal{ID: "a1", Name: "Luna"}

func TestIdentifier_Deterministic(t *testing.T) {
	target := day(2024, 4, 29)
	got := Identifier(KindCycle, "Luna", target)
	want := "physiological-Luna-" + "1714348800"
	if got != want {
		t.Errorf("Identifier = %q, want %q", got, want)
	}

	// Mismo evento lógico ⇒ mismo identificador.
	if again := Identifier(KindCycle, "Luna", target); again != got {
		t.Errorf("identifier not stable: %q vs %q", again, got)
	}
}

func TestSyncCyclePrediction_SchedulesWithLead(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)

	history := []cycles.Cycle{
		{ID: "c1", AnimalID: "a1", StartDate: day(2024, 3, 1)},
		{ID: "c2", AnimalID: "a1", StartDate: day(2024, 3, 29)},
	}

	if out := c.SyncCyclePrediction(luna, history); out != OutcomeScheduled {
		t.Fatalf("outcome = %v, want scheduled", out)
	}
	c.Close()

	if len(fn.scheduled) != 1 {
		t.Fatalf("scheduled = %d requests, want 1", len(fn.scheduled))
	}
	req := fn.scheduled[0]

	// Predicción: 1/4 + 28 días = 29/4. Recordatorio: un día antes.
	if want := Identifier(KindCycle, "Luna", day(2024, 4, 29)); req.ID != want {
		t.Errorf("ID = %q, want %q", req.ID, want)
	}
	if want := day(2024, 4, 28); !req.FireAt.Equal(want) {
		t.Errorf("FireAt = %v, want %v", req.FireAt, want)
	}
	if req.Category != "PHYSIOLOGICAL" {
		t.Errorf("Category = %q", req.Category)
	}
}

func TestSync_OverwriteCancelsOldBeforeSchedulingNew(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)

	history := []cycles.Cycle{
		{ID: "c1", AnimalID: "a1", StartDate: day(2024, 3, 1)},
		{ID: "c2", AnimalID: "a1", StartDate: day(2024, 3, 29)},
	}
	c.SyncCyclePrediction(luna, history)

	// Nuevo ciclo: la predicción cambia y el identificador viejo se cancela.
	history = append(history, cycles.Cycle{ID: "c3", AnimalID: "a1", StartDate: day(2024, 4, 20)})
	c.SyncCyclePrediction(luna, history)
	c.Close()

	oldID := Identifier(KindCycle, "Luna", day(2024, 4, 29))
	newID := Identifier(KindCycle, "Luna", day(2024, 4, 23)) // 1/4 + 22 días

	want := []string{"schedule:" + oldID, "cancel:" + oldID, "schedule:" + newID}
	ops := fn.snapshotOps()
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops[%d] = %q, want %q (full: %v)", i, ops[i], want[i], ops)
		}
	}

	if c.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1 (overwrite, no duplicado)", c.LiveCount())
	}
}

func TestSyncCareRecord_OnlyCheckupsAndVaccinesNotify(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)

	next := day(2024, 5, 1)
	vaccine := care.Record{
		ID: "k1", AnimalID: "a1", Kind: care.KindVaccine, Label: "rabies",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	}
	if out := c.SyncCareRecord(luna, vaccine); out != OutcomeScheduled {
		t.Fatalf("vaccine outcome = %v", out)
	}

	grooming := care.Record{
		ID: "k2", AnimalID: "a1", Kind: care.KindGrooming, Label: "bath",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	}
	if out := c.SyncCareRecord(luna, grooming); out != OutcomeNone {
		t.Fatalf("grooming outcome = %v, want none", out)
	}
	c.Close()

	if len(fn.scheduled) != 1 {
		t.Fatalf("scheduled = %d, want only the vaccine", len(fn.scheduled))
	}
	if want := Identifier(KindVaccine, "Luna", next); fn.scheduled[0].ID != want {
		t.Errorf("ID = %q, want %q", fn.scheduled[0].ID, want)
	}
}

func TestSync_SkipsUnresolvableDue(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)

	// Vencimiento mañana: fireAt = hoy, ya no se puede anticipar.
	next := day(2024, 4, 2)
	rec := care.Record{
		ID: "k1", AnimalID: "a1", Kind: care.KindCheckup, Label: "annual",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	}
	if out := c.SyncCareRecord(luna, rec); out != OutcomeSkipped {
		t.Fatalf("outcome = %v, want skipped", out)
	}
	c.Close()

	if len(fn.scheduled) != 0 {
		t.Errorf("scheduled = %d, want 0", len(fn.scheduled))
	}
	if c.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", c.LiveCount())
	}
}

func TestSyncCareRecord_ClearedScheduleCancels(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)

	next := day(2024, 5, 1)
	rec := care.Record{
		ID: "k1", AnimalID: "a1", Kind: care.KindCheckup, Label: "annual",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	}
	c.SyncCareRecord(luna, rec)

	// El usuario borra la fecha comprometida: el recordatorio muere.
	rec.NextScheduledDate = nil
	if out := c.SyncCareRecord(luna, rec); out != OutcomeCancelled {
		t.Fatalf("outcome = %v, want cancelled", out)
	}
	c.Close()

	id := Identifier(KindCheckup, "Luna", next)
	found := false
	for _, cancelled := range fn.cancelled {
		if cancelled == id {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cancel of %q, got %v", id, fn.cancelled)
	}
	if c.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", c.LiveCount())
	}
}

func TestCancelForAnimal(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)

	next := day(2024, 5, 1)
	c.SyncCareRecord(luna, care.Record{
		ID: "k1", AnimalID: "a1", Kind: care.KindVaccine, Label: "rabies",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	})
	c.SyncCyclePrediction(luna, []cycles.Cycle{
		{ID: "c1", AnimalID: "a1", StartDate: day(2024, 3, 1)},
		{ID: "c2", AnimalID: "a1", StartDate: day(2024, 3, 29)},
	})

	if n := c.CancelForAnimal("a1"); n != 2 {
		t.Fatalf("CancelForAnimal = %d, want 2", n)
	}
	c.Close()

	if c.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", c.LiveCount())
	}
	if len(fn.cancelled) != 2 {
		t.Errorf("cancelled = %v, want 2 ids", fn.cancelled)
	}
}

func TestHandleDelivered(t *testing.T) {
	now := day(2024, 4, 1)
	c, _ := newTestCoordinator(now)
	defer c.Close()

	next := day(2024, 5, 1)
	c.SyncCareRecord(luna, care.Record{
		ID: "k1", AnimalID: "a1", Kind: care.KindVaccine, Label: "rabies",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	})

	id := Identifier(KindVaccine, "Luna", next)
	if !c.HandleDelivered(id) {
		t.Fatal("expected HandleDelivered to find the live reminder")
	}
	if c.HandleDelivered(id) {
		t.Fatal("second delivery of the same identifier must report false")
	}
	if c.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", c.LiveCount())
	}
}

func TestReset(t *testing.T) {
	now := day(2024, 4, 1)
	c, fn := newTestCoordinator(now)
	defer c.Close()

	next := day(2024, 5, 1)
	c.SyncCareRecord(luna, care.Record{
		ID: "k1", AnimalID: "a1", Kind: care.KindVaccine, Label: "rabies",
		Date: day(2024, 3, 1), NextScheduledDate: &next,
	})

	if err := c.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", c.LiveCount())
	}

	fn.mu.Lock()
	defer fn.mu.Unlock()
	found := false
	for _, op := range fn.ops {
		if op == "cancelAll" {
			found = true
		}
	}
	if !found {
		t.Error("expected CancelAll on the notifier")
	}
}
