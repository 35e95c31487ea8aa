package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyward/tower/internal/models/dtos"
)

func TestCreateFlight_Created(t *testing.T) {
	env := newTestEnv(t)
	airplane := env.seedAirplane(t, 150)

	dep := time.Now().UTC().Add(24 * time.Hour)
	rec := env.do(t, http.MethodPost, "/api/v1/flights", map[string]any{
		"flight_number":  "SW201",
		"departure":      "IST",
		"destination":    "AMS",
		"departure_time": dep.Format(time.RFC3339),
		"arrival_time":   dep.Add(3 * time.Hour).Format(time.RFC3339),
		"airplane_id":    airplane.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var flight dtos.FlightResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &flight))
	assert.Equal(t, "SW201", flight.FlightNumber)
	require.NotNil(t, flight.Airplane)
	assert.Equal(t, airplane.ID, flight.Airplane.ID)
}

func TestCreateFlight_ScheduleConflict(t *testing.T) {
	env := newTestEnv(t)
	airplane := env.seedAirplane(t, 150)

	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	env.seedFlight(t, airplane.ID, base, base.Add(2*time.Hour))

	rec := env.do(t, http.MethodPost, "/api/v1/flights", map[string]any{
		"flight_number":  "SW202",
		"departure":      "AMS",
		"destination":    "IST",
		"departure_time": base.Add(2*time.Hour + 30*time.Minute).Format(time.RFC3339),
		"arrival_time":   base.Add(5 * time.Hour).Format(time.RFC3339),
		"airplane_id":    airplane.ID,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeEnvelope(t, rec).Category)
}

func TestCreateFlight_UnknownAirplane(t *testing.T) {
	env := newTestEnv(t)

	dep := time.Now().UTC().Add(24 * time.Hour)
	rec := env.do(t, http.MethodPost, "/api/v1/flights", map[string]any{
		"flight_number":  "SW203",
		"departure":      "IST",
		"destination":    "AMS",
		"departure_time": dep.Format(time.RFC3339),
		"arrival_time":   dep.Add(3 * time.Hour).Format(time.RFC3339),
		"airplane_id":    9999,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFlight_BlockedByReservations(t *testing.T) {
	env := newTestEnv(t)
	airplane := env.seedAirplane(t, 3)
	now := time.Now().UTC()
	flight := env.seedFlight(t, airplane.ID, now.Add(2*time.Hour), now.Add(4*time.Hour))

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"passenger_name":  "Jamie Doe",
		"passenger_email": "jamie@example.com",
		"flight_id":       flight.ID,
	}).Code)

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/flights/%d", flight.ID), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAirplane_CreatedAndFetched(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/airplanes", map[string]any{
		"tail_number":     "tc-abc",
		"model":           "A321",
		"capacity":        180,
		"production_year": 2019,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var airplane dtos.AirplaneResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &airplane))
	assert.Equal(t, "TC-ABC", airplane.TailNumber)

	got := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/airplanes/%d", airplane.ID), nil)
	require.Equal(t, http.StatusOK, got.Code)
}

func TestCreateAirplane_ValidationFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/airplanes", map[string]any{
		"tail_number":     " ",
		"model":           "A321",
		"capacity":        0,
		"production_year": 1700,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Contains(t, body.Fields, "tail_number")
	assert.Contains(t, body.Fields, "capacity")
	assert.Contains(t, body.Fields, "production_year")
}
