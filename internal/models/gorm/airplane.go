package gorm

import "time"

// Airplane is a physical aircraft. Rows are never physically removed:
// flights hold a protected reference, so removal is the Deleted flag.
type Airplane struct {
	ID             uint      `gorm:"column:id;primaryKey"`
	TailNumber     string    `gorm:"column:tail_number;uniqueIndex;size:20"`
	Model          string    `gorm:"column:model;size:20;index"`
	Capacity       int       `gorm:"column:capacity"`
	ProductionYear int       `gorm:"column:production_year"`
	Status         bool      `gorm:"column:status"`
	Deleted        bool      `gorm:"column:deleted;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Flights []Flight `gorm:"foreignKey:AirplaneID"`
}

// TableName specifies the table name for GORM
func (Airplane) TableName() string {
	return "airplanes"
}
