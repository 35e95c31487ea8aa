package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	towerdb "skyward/tower/internal/db"
	"skyward/tower/internal/db/repositories"
	gormModels "skyward/tower/internal/models/gorm"
	"skyward/tower/internal/notifications"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// An in-memory sqlite database exists per connection; a second
	// pooled connection would see empty tables.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gormModels.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func newAirplaneService(db *gorm.DB) *AirplaneService {
	return NewAirplaneService(
		repositories.NewAirplaneRepository(db),
		repositories.NewFlightRepository(db),
		nil,
	)
}

func newFlightService(db *gorm.DB) *FlightService {
	return NewFlightService(
		repositories.NewFlightRepository(db),
		repositories.NewAirplaneRepository(db),
		repositories.NewReservationRepository(db),
	)
}

func newReservationService(db *gorm.DB, pub EventPublisher) *ReservationService {
	return NewReservationService(
		db,
		repositories.NewFlightRepository(db),
		repositories.NewReservationRepository(db),
		towerdb.NewKeyedFlightLocker(0),
		pub,
		nil,
	)
}

// seedSeq keeps seeded tail and flight numbers unique within a test
// binary; timestamps collide when fixtures share a departure base.
var seedSeq uint64

func nextSeedID() uint64 {
	return atomic.AddUint64(&seedSeq, 1)
}

func seedAirplane(t *testing.T, db *gorm.DB, capacity int) *gormModels.Airplane {
	t.Helper()

	airplane := &gormModels.Airplane{
		TailNumber:     fmt.Sprintf("TC-%04d", nextSeedID()),
		Model:          "B738",
		Capacity:       capacity,
		ProductionYear: 2015,
		Status:         true,
	}
	if err := db.Create(airplane).Error; err != nil {
		t.Fatalf("Failed to seed airplane: %v", err)
	}
	return airplane
}

func seedFlight(t *testing.T, db *gorm.DB, airplaneID uint, departure, arrival time.Time) *gormModels.Flight {
	t.Helper()

	flight := &gormModels.Flight{
		FlightNumber:  fmt.Sprintf("SW%04d", nextSeedID()),
		Departure:     "IST",
		Destination:   "AMS",
		DepartureTime: departure,
		ArrivalTime:   arrival,
		AirplaneID:    airplaneID,
	}
	if err := db.Create(flight).Error; err != nil {
		t.Fatalf("Failed to seed flight: %v", err)
	}
	return flight
}

func seedReservation(t *testing.T, db *gorm.DB, flightID uint, status, deleted bool) *gormModels.Reservation {
	t.Helper()

	res := &gormModels.Reservation{
		ReservationCode: NewReservationCode(),
		PassengerName:   "Jamie Doe",
		PassengerEmail:  "jamie@example.com",
		FlightID:        flightID,
		Status:          status,
		Deleted:         deleted,
	}
	if err := db.Create(res).Error; err != nil {
		t.Fatalf("Failed to seed reservation: %v", err)
	}
	return res
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []notifications.ReservationBookedEvent
}

func (p *capturingPublisher) Publish(_ context.Context, kind string, payload any) {
	if kind != notifications.EventReservationBooked {
		return
	}
	ev, ok := payload.(notifications.ReservationBookedEvent)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
