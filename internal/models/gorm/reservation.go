package gorm

import "time"

// Reservation is one booked seat on a flight. A reservation counts
// against the airplane's capacity while Status is true and Deleted is
// false. The code is server-generated, never client-supplied.
type Reservation struct {
	ID              uint      `gorm:"column:id;primaryKey"`
	ReservationCode string    `gorm:"column:reservation_code;uniqueIndex;size:40"`
	PassengerName   string    `gorm:"column:passenger_name;index;size:40"`
	PassengerEmail  string    `gorm:"column:passenger_email;index;size:40"`
	FlightID        uint      `gorm:"column:flight_id;index"`
	Status          bool      `gorm:"column:status"`
	Deleted         bool      `gorm:"column:deleted;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Flight Flight `gorm:"foreignKey:FlightID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (Reservation) TableName() string {
	return "reservations"
}
