package dtos

import (
	"time"

	gormModels "skyward/tower/internal/models/gorm"
)

// APIResponse is the shared JSON envelope for every endpoint.
type APIResponse[T any] struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Data      *T                `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`
	Category  string            `json:"category,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type AirplaneResponse struct {
	ID             uint   `json:"id"`
	TailNumber     string `json:"tail_number"`
	Model          string `json:"model"`
	Capacity       int    `json:"capacity"`
	ProductionYear int    `json:"production_year"`
	Status         bool   `json:"status"`
	Deleted        bool   `json:"deleted"`
}

func NewAirplaneResponse(a *gormModels.Airplane) *AirplaneResponse {
	return &AirplaneResponse{
		ID:             a.ID,
		TailNumber:     a.TailNumber,
		Model:          a.Model,
		Capacity:       a.Capacity,
		ProductionYear: a.ProductionYear,
		Status:         a.Status,
		Deleted:        a.Deleted,
	}
}

type FlightResponse struct {
	ID            uint              `json:"id"`
	FlightNumber  string            `json:"flight_number"`
	Departure     string            `json:"departure"`
	Destination   string            `json:"destination"`
	DepartureTime time.Time         `json:"departure_time"`
	ArrivalTime   time.Time         `json:"arrival_time"`
	AirplaneID    uint              `json:"airplane_id"`
	Airplane      *AirplaneResponse `json:"airplane,omitempty"`
	Deleted       bool              `json:"deleted"`
}

func NewFlightResponse(f *gormModels.Flight) *FlightResponse {
	resp := &FlightResponse{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Departure:     f.Departure,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		AirplaneID:    f.AirplaneID,
		Deleted:       f.Deleted,
	}
	if f.Airplane.ID != 0 {
		resp.Airplane = NewAirplaneResponse(&f.Airplane)
	}
	return resp
}

type ReservationResponse struct {
	ID              uint      `json:"id"`
	ReservationCode string    `json:"reservation_code"`
	PassengerName   string    `json:"passenger_name"`
	PassengerEmail  string    `json:"passenger_email"`
	FlightID        uint      `json:"flight_id"`
	Status          bool      `json:"status"`
	Deleted         bool      `json:"deleted"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewReservationResponse(r *gormModels.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		ReservationCode: r.ReservationCode,
		PassengerName:   r.PassengerName,
		PassengerEmail:  r.PassengerEmail,
		FlightID:        r.FlightID,
		Status:          r.Status,
		Deleted:         r.Deleted,
		CreatedAt:       r.CreatedAt,
	}
}
