package router

import (
	"net/http"

	"animal-care-tracker/internal/domain/animals"
	"animal-care-tracker/internal/domain/care"
	"animal-care-tracker/internal/domain/cycles"
	"animal-care-tracker/internal/domain/health"
	"animal-care-tracker/internal/platform/metrics"
	"animal-care-tracker/internal/reminder"
	"animal-care-tracker/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "animal-care-tracker/docs" // registro del spec swagger generado
)

type Options struct {
	Store *store.Store

	// Reminders puede ser nil: los endpoints de recordatorios responden 503.
	Reminders *reminder.Coordinator
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	animals.RegisterRoutes(r, opts.Store)
	cycles.RegisterRoutes(r, opts.Store)
	health.RegisterRoutes(r, opts.Store)
	care.RegisterRoutes(r, opts.Store)

	registerReminderRoutes(r, opts.Reminders)

	return r
}

// registerReminderRoutes expone el callback de entrega del servicio de
// notificaciones y el reset administrativo.
func registerReminderRoutes(r chi.Router, rem *reminder.Coordinator) {
	r.Post("/reminders/{identifier}/delivered", func(w http.ResponseWriter, req *http.Request) {
		if rem == nil {
			http.Error(w, "reminders disabled", http.StatusServiceUnavailable)
			return
		}
		if !rem.HandleDelivered(chi.URLParam(req, "identifier")) {
			http.Error(w, "unknown reminder", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Delete("/reminders", func(w http.ResponseWriter, req *http.Request) {
		if rem == nil {
			http.Error(w, "reminders disabled", http.StatusServiceUnavailable)
			return
		}
		if err := rem.Reset(req.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
