package cycles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Commands es lo que el handler necesita del store.
type Commands interface {
	AddCycle(ctx context.Context, in CreateInput) (Cycle, error)
	UpdateCycle(ctx context.Context, c Cycle) (Cycle, error)
	DeleteCycle(ctx context.Context, id string) error
	GetCycle(ctx context.Context, id string) (Cycle, error)
	CyclesForAnimal(ctx context.Context, animalID string) ([]Cycle, error)
	PredictNextCycle(ctx context.Context, animalID string) (time.Time, error)
}

func RegisterRoutes(r chi.Router, store Commands) {
	r.Route("/animals/{animalID}/cycles", func(cr chi.Router) {
		cr.Post("/", createCycleHandler(store))
		cr.Get("/", listCyclesHandler(store))
		cr.Get("/prediction", predictionHandler(store))
	})

	r.Route("/cycles/{cycleID}", func(cr chi.Router) {
		cr.Get("/", getCycleHandler(store))
		cr.Put("/", updateCycleHandler(store))
		cr.Delete("/", deleteCycleHandler(store))
	})
}

type cycleRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD opcional
	Intensity string `json:"intensity"`  // light|medium|heavy, default medium
	Notes     string `json:"notes"`
}

type cycleResponse struct {
	ID         string     `json:"id"`
	AnimalID   string     `json:"animal_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Intensity  string     `json:"intensity"`
	Notes      string     `json:"notes,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
}

type predictionResponse struct {
	AnimalID      string    `json:"animal_id"`
	PredictedDate time.Time `json:"predicted_date"`
}

func createCycleHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cycleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, ok := toCreateInput(chi.URLParam(r, "animalID"), req)
		if !ok {
			http.Error(w, "invalid cycle payload", http.StatusBadRequest)
			return
		}

		c, err := store.AddCycle(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCycleResponse(c))
	}
}

func listCyclesHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.CyclesForAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]cycleResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCycleResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// predictionHandler responde 404 si no hay historial suficiente: la
// predicción necesita al menos dos ciclos registrados.
func predictionHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")

		predicted, err := store.PredictNextCycle(r.Context(), animalID)
		if err != nil {
			if errors.Is(err, ErrNotEnoughHistory) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, predictionResponse{
			AnimalID:      animalID,
			PredictedDate: predicted,
		})
	}
}

func getCycleHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCycle(r.Context(), chi.URLParam(r, "cycleID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCycleResponse(c))
	}
}

func updateCycleHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			cycleRequest
			AnimalID string `json:"animal_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, ok := toCreateInput(req.AnimalID, req.cycleRequest)
		if !ok {
			http.Error(w, "invalid cycle payload", http.StatusBadRequest)
			return
		}

		c, err := store.UpdateCycle(r.Context(), Cycle{
			ID:        chi.URLParam(r, "cycleID"),
			AnimalID:  in.AnimalID,
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Intensity: in.Intensity,
			Notes:     in.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCycleResponse(c))
	}
}

func deleteCycleHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteCycle(r.Context(), chi.URLParam(r, "cycleID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCreateInput(animalID string, req cycleRequest) (CreateInput, bool) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return CreateInput{}, false
	}

	var end *time.Time
	if strings.TrimSpace(req.EndDate) != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return CreateInput{}, false
		}
		end = &t
	}

	intensity, ok := ParseIntensity(strings.TrimSpace(req.Intensity))
	if !ok {
		return CreateInput{}, false
	}

	return CreateInput{
		AnimalID:  animalID,
		StartDate: start,
		EndDate:   end,
		Intensity: intensity,
		Notes:     req.Notes,
	}, true
}

func toCycleResponse(c Cycle) cycleResponse {
	return cycleResponse{
		ID:         c.ID,
		AnimalID:   c.AnimalID,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		Intensity:  c.Intensity.String(),
		Notes:      c.Notes,
		RecordedAt: c.RecordedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cycle not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
