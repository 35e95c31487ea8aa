package dtos

import "time"

// Create inputs carry every required field. Update inputs are merge
// patches: only non-nil fields override the stored record, absent fields
// keep their current values.

type CreateAirplaneInput struct {
	TailNumber     string `json:"tail_number"`
	Model          string `json:"model"`
	Capacity       int    `json:"capacity"`
	ProductionYear int    `json:"production_year"`
	Status         *bool  `json:"status,omitempty"`
}

type UpdateAirplaneInput struct {
	TailNumber     *string `json:"tail_number,omitempty"`
	Model          *string `json:"model,omitempty"`
	Capacity       *int    `json:"capacity,omitempty"`
	ProductionYear *int    `json:"production_year,omitempty"`
	Status         *bool   `json:"status,omitempty"`
}

func (in UpdateAirplaneInput) Empty() bool {
	return in.TailNumber == nil && in.Model == nil && in.Capacity == nil &&
		in.ProductionYear == nil && in.Status == nil
}

type CreateFlightInput struct {
	FlightNumber  string    `json:"flight_number"`
	Departure     string    `json:"departure"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	AirplaneID    uint      `json:"airplane_id"`
}

type UpdateFlightInput struct {
	FlightNumber  *string    `json:"flight_number,omitempty"`
	Departure     *string    `json:"departure,omitempty"`
	Destination   *string    `json:"destination,omitempty"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`
	AirplaneID    *uint      `json:"airplane_id,omitempty"`
}

func (in UpdateFlightInput) Empty() bool {
	return in.FlightNumber == nil && in.Departure == nil && in.Destination == nil &&
		in.DepartureTime == nil && in.ArrivalTime == nil && in.AirplaneID == nil
}

type MakeReservationInput struct {
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	FlightID       uint   `json:"flight_id"`
	// Status defaults to true when omitted.
	Status *bool `json:"status,omitempty"`
}

type UpdateReservationInput struct {
	PassengerName  *string `json:"passenger_name,omitempty"`
	PassengerEmail *string `json:"passenger_email,omitempty"`
	Status         *bool   `json:"status,omitempty"`
}

func (in UpdateReservationInput) Empty() bool {
	return in.PassengerName == nil && in.PassengerEmail == nil && in.Status == nil
}
