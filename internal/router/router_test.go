package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	notifymem "animal-care-tracker/internal/adapters/notify/memory"
	"animal-care-tracker/internal/adapters/storage/memory"
	"animal-care-tracker/internal/domain/animals"
	"animal-care-tracker/internal/domain/care"
	"animal-care-tracker/internal/domain/cycles"
	"animal-care-tracker/internal/domain/health"
	"animal-care-tracker/internal/platform/logger"
	"animal-care-tracker/internal/reminder"
	"animal-care-tracker/internal/store"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	animalsSvc := animals.NewService(memory.NewAnimalsRepo(), nil)
	cyclesSvc := cycles.NewService(memory.NewCyclesRepo(), animalsSvc)
	healthSvc := health.NewService(memory.NewHealthRepo(), memory.NewWeightsRepo(), animalsSvc)
	careSvc := care.NewService(memory.NewCareRepo(), animalsSvc)

	rem := reminder.NewCoordinator(notifymem.NewNotifier(), logger.New(logger.Options{Level: logger.Error}))
	t.Cleanup(rem.Close)

	st := store.New(animalsSvc, cyclesSvc, healthSvc, careSvc, rem)
	return NewRouter(Options{Store: st, Reminders: rem})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestAnimalCRUDFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/animals", map[string]any{
		"name":    "Luna",
		"species": "cat",
		"gender":  "female",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /animals = %d (body %s)", rec.Code, rec.Body.String())
	}
	var created struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	decode(t, rec, &created)
	if created.ID == "" || created.Color == "" {
		t.Fatalf("created = %+v, want generated id and color", created)
	}

	rec = do(t, h, http.MethodGet, "/animals", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /animals = %d", rec.Code)
	}
	var listed []struct {
		ID string `json:"id"`
	}
	decode(t, rec, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("listed = %+v", listed)
	}

	rec = do(t, h, http.MethodGet, "/animals/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /animals/{id} = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/animals/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /animals/ghost = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/animals/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /animals/{id} = %d", rec.Code)
	}
	// Idempotente.
	rec = do(t, h, http.MethodDelete, "/animals/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("second DELETE = %d, want 204", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/animals/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET after delete = %d, want 404", rec.Code)
	}
}

func TestCyclePredictionFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/animals", map[string]any{"name": "Luna", "species": "cat"})
	var a struct {
		ID string `json:"id"`
	}
	decode(t, rec, &a)

	rec = do(t, h, http.MethodPost, "/animals/"+a.ID+"/cycles", map[string]any{
		"start_date": "2024-03-01",
		"intensity":  "medium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST cycle = %d (body %s)", rec.Code, rec.Body.String())
	}

	// Un solo ciclo: todavía no hay predicción.
	rec = do(t, h, http.MethodGet, "/animals/"+a.ID+"/cycles/prediction", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("prediction with 1 cycle = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/animals/"+a.ID+"/cycles", map[string]any{
		"start_date": "2024-03-29",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST second cycle = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/animals/"+a.ID+"/cycles/prediction", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("prediction = %d (body %s)", rec.Code, rec.Body.String())
	}
	var pred struct {
		AnimalID      string `json:"animal_id"`
		PredictedDate string `json:"predicted_date"`
	}
	decode(t, rec, &pred)
	if pred.AnimalID != a.ID || pred.PredictedDate == "" {
		t.Fatalf("prediction = %+v", pred)
	}
}

func TestCareNextScheduledFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/animals", map[string]any{"name": "Luna", "species": "cat"})
	var a struct {
		ID string `json:"id"`
	}
	decode(t, rec, &a)

	// Sin registros: nada agendado.
	rec = do(t, h, http.MethodGet, "/animals/"+a.ID+"/care/next-scheduled", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("next-scheduled empty = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/animals/"+a.ID+"/care", map[string]any{
		"kind":                "vaccine",
		"label":               "rabies",
		"date":                "2024-03-01",
		"next_scheduled_date": "2100-01-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST care = %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/animals/"+a.ID+"/care/next-scheduled", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next-scheduled = %d (body %s)", rec.Code, rec.Body.String())
	}
	var next struct {
		Label string `json:"label"`
		Kind  string `json:"kind"`
	}
	decode(t, rec, &next)
	if next.Label != "rabies" || next.Kind != "vaccine" {
		t.Fatalf("next-scheduled = %+v", next)
	}

	// Filtro por tipo sin resultados.
	rec = do(t, h, http.MethodGet, "/animals/"+a.ID+"/care/next-scheduled?kind=checkup", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("next-scheduled?kind=checkup = %d, want 404", rec.Code)
	}
}

func TestReminderEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/reminders/unknown-id/delivered", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delivered unknown = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/reminders", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /reminders = %d, want 204", rec.Code)
	}
}

func TestReminderEndpointsDisabled(t *testing.T) {
	animalsSvc := animals.NewService(memory.NewAnimalsRepo(), nil)
	cyclesSvc := cycles.NewService(memory.NewCyclesRepo(), animalsSvc)
	healthSvc := health.NewService(memory.NewHealthRepo(), memory.NewWeightsRepo(), animalsSvc)
	careSvc := care.NewService(memory.NewCareRepo(), animalsSvc)
	st := store.New(animalsSvc, cyclesSvc, healthSvc, careSvc, nil)

	h := NewRouter(Options{Store: st})

	rec := do(t, h, http.MethodDelete, "/reminders", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("DELETE /reminders without coordinator = %d, want 503", rec.Code)
	}
}
