package care

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
	AddCareRecord(ctx context.Context, in CreateInput) (Record, error)
	UpdateCareRecord(ctx context.Context, rec Record) (Record, error)
	DeleteCareRecord(ctx context.Context, id string) error
	GetCareRecord(ctx context.Context, id string) (Record, error)
	CareRecordsForAnimal(ctx context.Context, animalID string, kind Kind) ([]Record, error)
	NextScheduledCare(ctx context.Context, animalID string, kind Kind) (*Record, error)
}

func RegisterRoutes(r chi.Router, store Commands) {
	r.Route("/animals/{animalID}/care", func(cr chi.Router) {
		cr.Post("/", createCareHandler(store))
		cr.Get("/", listCareHandler(store))
		cr.Get("/next-scheduled", nextScheduledHandler(store))
	})

	r.Route("/care-records/{recordID}", func(cr chi.Router) {
		cr.Get("/", getCareHandler(store))
		cr.Put("/", updateCareHandler(store))
		cr.Delete("/", deleteCareHandler(store))
	})
}

type careRequest struct {
	Kind              string `json:"kind"`  // checkup|vaccine|medication|grooming
	Label             string `json:"label"` // nombre de vacuna, chequeo, etc.
	Date              string `json:"date"`  // YYYY-MM-DD
	NextScheduledDate string `json:"next_scheduled_date"`
	IntervalDays      *int   `json:"interval_days"`
	Notes             string `json:"notes"`
	Color             string `json:"color"`
}

type careResponse struct {
	ID                string     `json:"id"`
	AnimalID          string     `json:"animal_id"`
	Kind              string     `json:"kind"`
	Label             string     `json:"label"`
	Date              time.Time  `json:"date"`
	NextScheduledDate *time.Time `json:"next_scheduled_date,omitempty"`
	IntervalDays      *int       `json:"interval_days,omitempty"`
	NextDue           *time.Time `json:"next_due,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Color             string     `json:"color,omitempty"`
}

// createCareHandler godoc
// @Summary Crear registro de cuidado
// @Description Crea un registro de cuidado (checkup, vaccine, medication o grooming) para el animal. Si trae next_scheduled_date o un interval_days positivo, el coordinador agenda el recordatorio correspondiente.
// @Tags care
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body careRequest true "Datos del cuidado; fechas en formato YYYY-MM-DD"
// @Success 201 {object} careResponse
// @Failure 400 {string} string "payload inválido o animal inexistente"
// @Router /animals/{animalID}/care [post]
func createCareHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req careRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, ok := toCreateInput(chi.URLParam(r, "animalID"), req)
		if !ok {
			http.Error(w, "invalid care payload", http.StatusBadRequest)
			return
		}

		rec, err := store.AddCareRecord(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCareResponse(rec))
	}
}

// listCareHandler godoc
// @Summary Listar cuidados de un animal
// @Description Lista los registros de cuidado del animal, ordenados por fecha descendente. Permite filtrar por tipo con ?kind=.
// @Tags care
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param kind query string false "checkup | vaccine | medication | grooming"
// @Success 200 {array} careResponse
// @Router /animals/{animalID}/care [get]
func listCareHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(strings.TrimSpace(r.URL.Query().Get("kind")))

		items, err := store.CareRecordsForAnimal(r.Context(), chi.URLParam(r, "animalID"), kind)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]careResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toCareResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// nextScheduledHandler godoc
// @Summary Próximo cuidado agendado
// @Description Devuelve el registro con la próxima fecha comprometida más cercana para el animal (opcionalmente filtrado por tipo). Ignora fechas vencidas hace más de 30 días. 404 si no hay nada agendado.
// @Tags care
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param kind query string false "checkup | vaccine | medication | grooming"
// @Success 200 {object} careResponse
// @Failure 404 {string} string "sin cuidados agendados"
// @Router /animals/{animalID}/care/next-scheduled [get]
func nextScheduledHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(strings.TrimSpace(r.URL.Query().Get("kind")))

		rec, err := store.NextScheduledCare(r.Context(), chi.URLParam(r, "animalID"), kind)
		if err != nil {
			writeError(w, err)
			return
		}
		if rec == nil {
			http.Error(w, "no scheduled care", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCareResponse(*rec))
	}
}

func getCareHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetCareRecord(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCareResponse(rec))
	}
}

func updateCareHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			careRequest
			AnimalID string `json:"animal_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, ok := toCreateInput(req.AnimalID, req.careRequest)
		if !ok {
			http.Error(w, "invalid care payload", http.StatusBadRequest)
			return
		}

		rec, err := store.UpdateCareRecord(r.Context(), Record{
			ID:                chi.URLParam(r, "recordID"),
			AnimalID:          in.AnimalID,
			Kind:              in.Kind,
			Label:             in.Label,
			Date:              in.Date,
			NextScheduledDate: in.NextScheduledDate,
			IntervalDays:      in.IntervalDays,
			Notes:             in.Notes,
			Color:             in.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCareResponse(rec))
	}
}

func deleteCareHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteCareRecord(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCreateInput(animalID string, req careRequest) (CreateInput, bool) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return CreateInput{}, false
	}

	var next *time.Time
	if strings.TrimSpace(req.NextScheduledDate) != "" {
		t, err := time.Parse("2006-01-02", req.NextScheduledDate)
		if err != nil {
			return CreateInput{}, false
		}
		next = &t
	}

	return CreateInput{
		AnimalID:          animalID,
		Kind:              Kind(strings.TrimSpace(req.Kind)),
		Label:             req.Label,
		Date:              date,
		NextScheduledDate: next,
		IntervalDays:      req.IntervalDays,
		Notes:             req.Notes,
		Color:             req.Color,
	}, true
}

func toCareResponse(rec Record) careResponse {
	return careResponse{
		ID:                rec.ID,
		AnimalID:          rec.AnimalID,
		Kind:              string(rec.Kind),
		Label:             rec.Label,
		Date:              rec.Date,
		NextScheduledDate: rec.NextScheduledDate,
		IntervalDays:      rec.IntervalDays,
		NextDue:           NextDue(rec),
		Notes:             rec.Notes,
		Color:             rec.Color,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "care record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
