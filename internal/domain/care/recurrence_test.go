package care

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDue_ExplicitDateWins(t *testing.T) {
	explicit := day(2024, 6, 1)
	interval := 30

	rec := Record{
		Kind:              KindVaccine,
		Date:              day(2024, 5, 1),
		NextScheduledDate: &explicit,
		IntervalDays:      &interval,
	}

	due := NextDue(rec)
	if due == nil {
		t.Fatal("expected a due date")
	}
	// Con fecha explícita el intervalo no participa.
	if !due.Equal(explicit) {
		t.Errorf("due = %v, want %v", due, explicit)
	}
}

func TestNextDue_FromInterval(t *testing.T) {
	interval := 365
	rec := Record{
		Kind:         KindVaccine,
		Date:         day(2024, 5, 1),
		IntervalDays: &interval,
	}

	due := NextDue(rec)
	if due == nil {
		t.Fatal("expected a due date")
	}
	if want := day(2025, 5, 1); !due.Equal(want) {
		t.Errorf("due = %v, want %v", due, want)
	}

	// El cálculo es consultivo: el registro no cambia.
	if rec.NextScheduledDate != nil {
		t.Error("NextDue must not persist the computed date")
	}
}

func TestNextDue_Unscheduled(t *testing.T) {
	rec := Record{
		Kind: KindCheckup,
		Date: day(2024, 5, 1),
	}
	if due := NextDue(rec); due != nil {
		t.Errorf("expected nil due, got %v", due)
	}
}

func TestNextDue_PastDateIsStillDue(t *testing.T) {
	// Una fecha comprometida en el pasado significa "vencido", no inválido.
	past := day(2020, 1, 1)
	rec := Record{
		Kind:              KindCheckup,
		Date:              day(2019, 12, 1),
		NextScheduledDate: &past,
	}

	due := NextDue(rec)
	if due == nil || !due.Equal(past) {
		t.Errorf("due = %v, want %v", due, past)
	}
}

func TestScheduledDate_SentinelForUnscheduled(t *testing.T) {
	explicit := day(2024, 6, 1)
	with := Record{NextScheduledDate: &explicit}
	if got := with.ScheduledDate(); !got.Equal(explicit) {
		t.Errorf("ScheduledDate = %v, want %v", got, explicit)
	}

	// Sin fecha comprometida devuelve "ahora" como centinela.
	before := time.Now()
	got := Record{}.ScheduledDate()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("sentinel ScheduledDate = %v, want within [%v, %v]", got, before, after)
	}
}
