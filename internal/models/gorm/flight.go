package gorm

import "time"

// Flight is a scheduled leg on a single airplane. Two non-deleted flights
// on the same airplane must be separated by at least one hour on both
// sides of their departure/arrival window.
type Flight struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	FlightNumber  string    `gorm:"column:flight_number;uniqueIndex;size:20"`
	Departure     string    `gorm:"column:departure;size:20"`
	Destination   string    `gorm:"column:destination;size:20"`
	DepartureTime time.Time `gorm:"column:departure_time;index"`
	ArrivalTime   time.Time `gorm:"column:arrival_time"`
	AirplaneID    uint      `gorm:"column:airplane_id;index"`
	Deleted       bool      `gorm:"column:deleted;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Airplane     Airplane      `gorm:"foreignKey:AirplaneID;constraint:OnDelete:RESTRICT"`
	Reservations []Reservation `gorm:"foreignKey:FlightID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}
