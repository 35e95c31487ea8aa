package api

import (
	"encoding/json"
	"net/http"

	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/models/dtos"
)

// CreateReservationHandler handles POST /api/v1/reservations
func (h *Handlers) CreateReservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inp dtos.MakeReservationInput
		if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if inp.FlightID == 0 {
			respondWithError(w, http.StatusBadRequest, "flight_id is required")
			return
		}

		res, err := h.deps.Services.Reservations.Make(r.Context(), inp)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, dtos.NewReservationResponse(res))
	}
}

// GetReservationHandler handles GET /api/v1/reservations/{id}
func (h *Handlers) GetReservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid reservation id")
			return
		}

		res, err := h.deps.Services.Reservations.Get(r.Context(), id)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.NewReservationResponse(res))
	}
}

// ListReservationsHandler handles GET /api/v1/reservations
func (h *Handlers) ListReservationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := repositories.ReservationFilters{
			ReservationCode: r.URL.Query().Get("reservation_code"),
			FlightID:        queryUint(r, "flight_id"),
			PassengerEmail:  r.URL.Query().Get("passenger_email"),
			PassengerName:   r.URL.Query().Get("passenger_name"),
			Ordering:        r.URL.Query().Get("ordering"),
		}

		reservations, err := h.deps.Repo.ReservationSearch.List(r.Context(), filters)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &reservations)
	}
}

// UpdateReservationHandler handles PATCH /api/v1/reservations/{id}
func (h *Handlers) UpdateReservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid reservation id")
			return
		}

		var inp dtos.UpdateReservationInput
		if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := h.deps.Services.Reservations.Update(r.Context(), id, inp)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.NewReservationResponse(res))
	}
}

// DeleteReservationHandler handles DELETE /api/v1/reservations/{id}
func (h *Handlers) DeleteReservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid reservation id")
			return
		}

		if err := h.deps.Services.Reservations.SoftDelete(r.Context(), id); err != nil {
			respondWithDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
