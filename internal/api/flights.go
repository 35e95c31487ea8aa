package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/models/dtos"
)

// CreateFlightHandler handles POST /api/v1/flights
func (h *Handlers) CreateFlightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inp dtos.CreateFlightInput
		if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		flight, err := h.deps.Services.Flights.Create(r.Context(), inp)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, dtos.NewFlightResponse(flight))
	}
}

// GetFlightHandler handles GET /api/v1/flights/{id}
func (h *Handlers) GetFlightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}

		flight, err := h.deps.Services.Flights.Get(r.Context(), id)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.NewFlightResponse(flight))
	}
}

// ListFlightsHandler handles GET /api/v1/flights
func (h *Handlers) ListFlightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := repositories.FlightFilters{
			AirplaneID:  queryUint(r, "airplane_id"),
			Departure:   r.URL.Query().Get("departure"),
			Destination: r.URL.Query().Get("destination"),
			Search:      r.URL.Query().Get("search"),
		}
		filters.DepartureAfter = queryTime(r, "departure_after")
		filters.DepartureBefore = queryTime(r, "departure_before")
		filters.ArrivalAfter = queryTime(r, "arrival_after")
		filters.ArrivalBefore = queryTime(r, "arrival_before")

		flights, err := h.deps.Repo.FlightSearch.List(r.Context(), filters)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &flights)
	}
}

// UpdateFlightHandler handles PATCH /api/v1/flights/{id}
func (h *Handlers) UpdateFlightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}

		var inp dtos.UpdateFlightInput
		if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		flight, err := h.deps.Services.Flights.Update(r.Context(), id, inp)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.NewFlightResponse(flight))
	}
}

// DeleteFlightHandler handles DELETE /api/v1/flights/{id}
func (h *Handlers) DeleteFlightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}

		if err := h.deps.Services.Flights.SoftDelete(r.Context(), id); err != nil {
			respondWithDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func queryTime(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
