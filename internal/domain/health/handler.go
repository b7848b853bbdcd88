package health

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
	AddHealthRecord(ctx context.Context, in CreateInput) (Record, error)
	UpdateHealthRecord(ctx context.Context, rec Record) (Record, error)
	DeleteHealthRecord(ctx context.Context, id string) error
	GetHealthRecord(ctx context.Context, id string) (Record, error)
	HealthRecordsForAnimal(ctx context.Context, animalID string) ([]Record, error)

	AddWeightRecord(ctx context.Context, in WeightInput) (WeightRecord, error)
	UpdateWeightRecord(ctx context.Context, rec WeightRecord) (WeightRecord, error)
	DeleteWeightRecord(ctx context.Context, id string) error
	WeightRecordsForAnimal(ctx context.Context, animalID string) ([]WeightRecord, error)
	WeightHistory(ctx context.Context, animalID string) ([]WeightRecord, error)
}

func RegisterRoutes(r chi.Router, store Commands) {
	r.Route("/animals/{animalID}/health", func(hr chi.Router) {
		hr.Post("/", createRecordHandler(store))
		hr.Get("/", listRecordsHandler(store))
	})

	r.Route("/health-records/{recordID}", func(hr chi.Router) {
		hr.Get("/", getRecordHandler(store))
		hr.Put("/", updateRecordHandler(store))
		hr.Delete("/", deleteRecordHandler(store))
	})

	r.Route("/animals/{animalID}/weights", func(wr chi.Router) {
		wr.Post("/", createWeightHandler(store))
		wr.Get("/", listWeightsHandler(store))
	})
	r.Get("/animals/{animalID}/weights/history", weightHistoryHandler(store))

	r.Route("/weights/{recordID}", func(wr chi.Router) {
		wr.Put("/", updateWeightHandler(store))
		wr.Delete("/", deleteWeightHandler(store))
	})
}

type recordRequest struct {
	Date          string   `json:"date"` // YYYY-MM-DD
	Weight        *float64 `json:"weight"`
	Temperature   *float64 `json:"temperature"`
	Appetite      string   `json:"appetite"`       // poor|normal|good, default normal
	ActivityLevel string   `json:"activity_level"` // low|normal|high, default normal
	Notes         string   `json:"notes"`
}

type recordResponse struct {
	ID            string    `json:"id"`
	AnimalID      string    `json:"animal_id"`
	Date          time.Time `json:"date"`
	Weight        *float64  `json:"weight,omitempty"`
	Temperature   *float64  `json:"temperature,omitempty"`
	Appetite      string    `json:"appetite"`
	ActivityLevel string    `json:"activity_level"`
	Notes         string    `json:"notes,omitempty"`
}

type weightRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

type weightResponse struct {
	ID       string    `json:"id"`
	AnimalID string    `json:"animal_id"`
	Date     time.Time `json:"date"`
	Weight   float64   `json:"weight"`
	Notes    string    `json:"notes,omitempty"`
}

func createRecordHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, ok := toCreateInput(chi.URLParam(r, "animalID"), req)
		if !ok {
			http.Error(w, "invalid health record payload", http.StatusBadRequest)
			return
		}

		rec, err := store.AddHealthRecord(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func listRecordsHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.HealthRecordsForAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetHealthRecord(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func updateRecordHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			recordRequest
			AnimalID string `json:"animal_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, ok := toCreateInput(req.AnimalID, req.recordRequest)
		if !ok {
			http.Error(w, "invalid health record payload", http.StatusBadRequest)
			return
		}

		rec, err := store.UpdateHealthRecord(r.Context(), Record{
			ID:            chi.URLParam(r, "recordID"),
			AnimalID:      in.AnimalID,
			Date:          in.Date,
			Weight:        in.Weight,
			Temperature:   in.Temperature,
			Appetite:      in.Appetite,
			ActivityLevel: in.ActivityLevel,
			Notes:         in.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteHealthRecord(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createWeightHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req weightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := store.AddWeightRecord(r.Context(), WeightInput{
			AnimalID: chi.URLParam(r, "animalID"),
			Date:     date,
			Weight:   req.Weight,
			Notes:    req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toWeightResponse(rec))
	}
}

func listWeightsHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.WeightRecordsForAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeWeightList(w, items)
	}
}

// weightHistoryHandler devuelve la serie combinada: pesos sueltos más los
// embebidos en chequeos de salud.
func weightHistoryHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.WeightHistory(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeWeightList(w, items)
	}
}

func updateWeightHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			weightRequest
			AnimalID string `json:"animal_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := store.UpdateWeightRecord(r.Context(), WeightRecord{
			ID:       chi.URLParam(r, "recordID"),
			AnimalID: req.AnimalID,
			Date:     date,
			Weight:   req.Weight,
			Notes:    req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightResponse(rec))
	}
}

func deleteWeightHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteWeightRecord(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCreateInput(animalID string, req recordRequest) (CreateInput, bool) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return CreateInput{}, false
	}

	appetite, ok := ParseAppetite(strings.TrimSpace(req.Appetite))
	if !ok {
		return CreateInput{}, false
	}
	activity, ok := ParseActivityLevel(strings.TrimSpace(req.ActivityLevel))
	if !ok {
		return CreateInput{}, false
	}

	return CreateInput{
		AnimalID:      animalID,
		Date:          date,
		Weight:        req.Weight,
		Temperature:   req.Temperature,
		Appetite:      appetite,
		ActivityLevel: activity,
		Notes:         req.Notes,
	}, true
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		AnimalID:      rec.AnimalID,
		Date:          rec.Date,
		Weight:        rec.Weight,
		Temperature:   rec.Temperature,
		Appetite:      rec.Appetite.String(),
		ActivityLevel: rec.ActivityLevel.String(),
		Notes:         rec.Notes,
	}
}

func toWeightResponse(rec WeightRecord) weightResponse {
	return weightResponse{
		ID:       rec.ID,
		AnimalID: rec.AnimalID,
		Date:     rec.Date,
		Weight:   rec.Weight,
		Notes:    rec.Notes,
	}
}

func writeWeightList(w http.ResponseWriter, items []WeightRecord) {
	out := make([]weightResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, toWeightResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "health record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
