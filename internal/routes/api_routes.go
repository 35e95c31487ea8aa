package routes

import (
	"github.com/go-chi/chi/v5"

	"skyward/tower/internal/api"
)

// RegisterAPIRoutes mounts the versioned scheduling endpoints.
func RegisterAPIRoutes(r chi.Router, h *api.Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/airplanes", func(r chi.Router) {
			r.Post("/", h.CreateAirplaneHandler())
			r.Get("/", h.ListAirplanesHandler())
			r.Get("/{id}", h.GetAirplaneHandler())
			r.Patch("/{id}", h.UpdateAirplaneHandler())
			r.Delete("/{id}", h.DeleteAirplaneHandler())
		})

		r.Route("/flights", func(r chi.Router) {
			r.Post("/", h.CreateFlightHandler())
			r.Get("/", h.ListFlightsHandler())
			r.Get("/{id}", h.GetFlightHandler())
			r.Patch("/{id}", h.UpdateFlightHandler())
			r.Delete("/{id}", h.DeleteFlightHandler())
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", h.CreateReservationHandler())
			r.Get("/", h.ListReservationsHandler())
			r.Get("/{id}", h.GetReservationHandler())
			r.Patch("/{id}", h.UpdateReservationHandler())
			r.Delete("/{id}", h.DeleteReservationHandler())
		})
	})
}
