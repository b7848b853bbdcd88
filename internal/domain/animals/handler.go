package animals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Commands es lo que el handler necesita del store. Se declara acá para
// no importar la fachada (el store ya importa este paquete).
type Commands interface {
	AddAnimal(ctx context.Context, in CreateInput) (Animal, error)
	UpdateAnimal(ctx context.Context, a Animal) (Animal, error)
	UpdateAnimalColor(ctx context.Context, id, color string) (Animal, error)
	DeleteAnimal(ctx context.Context, id string) error
	GetAnimal(ctx context.Context, id string) (Animal, error)
	ListAnimals(ctx context.Context) ([]Animal, error)
}

func RegisterRoutes(r chi.Router, store Commands) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(store))
		ar.Get("/", listAnimalsHandler(store))

		ar.Get("/{animalID}", getAnimalHandler(store))
		ar.Put("/{animalID}", updateAnimalHandler(store))
		ar.Patch("/{animalID}/color", updateColorHandler(store))
		ar.Delete("/{animalID}", deleteAnimalHandler(store))
	})
}

type createAnimalRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	ImageRef  string `json:"image_ref"`
	Color     string `json:"color"`
}

type animalResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	ImageRef  string     `json:"image_ref,omitempty"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type updateColorRequest struct {
	Color string `json:"color"`
}

func createAnimalHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, ok := parseOptionalDate(req.BirthDate)
		if !ok {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := store.AddAnimal(r.Context(), CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: bd,
			ImageRef:  req.ImageRef,
			Color:     req.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.ListAnimals(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.GetAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateAnimalHandler reemplaza el perfil completo (PUT). ID y created_at
// son inmutables; el body los ignora.
func updateAnimalHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, ok := parseOptionalDate(req.BirthDate)
		if !ok {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := store.UpdateAnimal(r.Context(), Animal{
			ID:        chi.URLParam(r, "animalID"),
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    Gender(strings.TrimSpace(req.Gender)),
			BirthDate: bd,
			ImageRef:  req.ImageRef,
			Color:     req.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateColorHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateColorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := store.UpdateAnimalColor(r.Context(), chi.URLParam(r, "animalID"), req.Color)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func deleteAnimalHandler(store Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteAnimal(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:        a.ID,
		Name:      a.Name,
		Species:   a.Species,
		Breed:     a.Breed,
		Gender:    string(a.Gender),
		BirthDate: a.BirthDate,
		ImageRef:  a.ImageRef,
		Color:     a.Color,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func parseOptionalDate(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrLimitReached):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no acoplarlos por un helper trivial.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
