package api

import (
	"encoding/json"
	"net/http"

	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/models/dtos"
)

// CreateAirplaneHandler handles POST /api/v1/airplanes
func (h *Handlers) CreateAirplaneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inp dtos.CreateAirplaneInput
		if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		airplane, err := h.deps.Services.Airplanes.Create(r.Context(), inp)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, dtos.NewAirplaneResponse(airplane))
	}
}

// GetAirplaneHandler handles GET /api/v1/airplanes/{id}
func (h *Handlers) GetAirplaneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid airplane id")
			return
		}

		airplane, err := h.deps.Services.Airplanes.Get(r.Context(), id)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.NewAirplaneResponse(airplane))
	}
}

// ListAirplanesHandler handles GET /api/v1/airplanes
func (h *Handlers) ListAirplanesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := repositories.AirplaneFilters{
			TailNumber:  r.URL.Query().Get("tail_number"),
			Model:       r.URL.Query().Get("model"),
			MinCapacity: queryInt(r, "min_capacity"),
			MaxCapacity: queryInt(r, "max_capacity"),
		}

		airplanes, err := h.deps.Repo.AirplaneSearch.List(r.Context(), filters)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &airplanes)
	}
}

// UpdateAirplaneHandler handles PATCH /api/v1/airplanes/{id}
func (h *Handlers) UpdateAirplaneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid airplane id")
			return
		}

		var inp dtos.UpdateAirplaneInput
		if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		airplane, err := h.deps.Services.Airplanes.Update(r.Context(), id, inp)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.NewAirplaneResponse(airplane))
	}
}

// DeleteAirplaneHandler handles DELETE /api/v1/airplanes/{id}
func (h *Handlers) DeleteAirplaneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid airplane id")
			return
		}

		if err := h.deps.Services.Airplanes.SoftDelete(r.Context(), id); err != nil {
			respondWithDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
