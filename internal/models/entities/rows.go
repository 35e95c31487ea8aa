package entities

import "time"

// Row types scanned by the sqlx read-side repositories. Mutations go
// through the GORM models; these exist only for list/search queries.

type AirplaneRow struct {
	ID             uint      `db:"id" json:"id"`
	TailNumber     string    `db:"tail_number" json:"tail_number"`
	Model          string    `db:"model" json:"model"`
	Capacity       int       `db:"capacity" json:"capacity"`
	ProductionYear int       `db:"production_year" json:"production_year"`
	Status         bool      `db:"status" json:"status"`
	Deleted        bool      `db:"deleted" json:"deleted"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`
}

type FlightRow struct {
	ID            uint      `db:"id" json:"id"`
	FlightNumber  string    `db:"flight_number" json:"flight_number"`
	Departure     string    `db:"departure" json:"departure"`
	Destination   string    `db:"destination" json:"destination"`
	DepartureTime time.Time `db:"departure_time" json:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time" json:"arrival_time"`
	AirplaneID    uint      `db:"airplane_id" json:"airplane_id"`
	Deleted       bool      `db:"deleted" json:"deleted"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
	UpdatedAt     time.Time `db:"updated_at" json:"-"`
}

type ReservationRow struct {
	ID              uint      `db:"id" json:"id"`
	ReservationCode string    `db:"reservation_code" json:"reservation_code"`
	PassengerName   string    `db:"passenger_name" json:"passenger_name"`
	PassengerEmail  string    `db:"passenger_email" json:"passenger_email"`
	FlightID        uint      `db:"flight_id" json:"flight_id"`
	Status          bool      `db:"status" json:"status"`
	Deleted         bool      `db:"deleted" json:"deleted"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"-"`
}
