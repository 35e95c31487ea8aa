package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skyward/tower/internal/domain"
	"skyward/tower/internal/models/dtos"
	gormModels "skyward/tower/internal/models/gorm"
)

func TestFlightService_Create_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	dep := time.Now().UTC().Add(24 * time.Hour)
	flight, err := svc.Create(context.Background(), dtos.CreateFlightInput{
		FlightNumber:  "SW101",
		Departure:     "IST",
		Destination:   "AMS",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(3 * time.Hour),
		AirplaneID:    airplane.ID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if flight.Airplane.ID != airplane.ID {
		t.Error("Expected the airplane to be attached to the created flight")
	}
}

func TestFlightService_Create_AirplaneMissingOrInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)

	dep := time.Now().UTC().Add(24 * time.Hour)
	inp := dtos.CreateFlightInput{
		FlightNumber:  "SW102",
		Departure:     "IST",
		Destination:   "AMS",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(3 * time.Hour),
		AirplaneID:    9999,
	}

	if _, err := svc.Create(context.Background(), inp); !domain.IsNotFound(err) {
		t.Fatalf("Expected not found for a missing airplane, got %v", err)
	}

	airplane := seedAirplane(t, db, 150)
	if err := db.Model(airplane).Update("status", false).Error; err != nil {
		t.Fatalf("Failed to deactivate airplane: %v", err)
	}
	inp.AirplaneID = airplane.ID
	if _, err := svc.Create(context.Background(), inp); !domain.IsNotFound(err) {
		t.Fatalf("Expected not found for an inactive airplane, got %v", err)
	}
}

func TestFlightService_Create_FieldValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	dep := time.Now().UTC().Add(24 * time.Hour)
	_, err := svc.Create(context.Background(), dtos.CreateFlightInput{
		FlightNumber:  "SW103",
		Departure:     "IST",
		Destination:   "ist",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(-time.Hour),
		AirplaneID:    airplane.ID,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("Expected *domain.Error, got %T", err)
	}
	if _, ok := de.Fields["destination"]; !ok {
		t.Errorf("Expected destination field error, got %v", de.Fields)
	}
	if _, ok := de.Fields["arrival_time"]; !ok {
		t.Errorf("Expected arrival_time field error, got %v", de.Fields)
	}
}

func TestFlightService_Create_ScheduleConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))

	// Departs 30 minutes after the existing arrival: inside the pad.
	_, err := svc.Create(context.Background(), dtos.CreateFlightInput{
		FlightNumber:  "SW104",
		Departure:     "AMS",
		Destination:   "IST",
		DepartureTime: base.Add(2*time.Hour + 30*time.Minute),
		ArrivalTime:   base.Add(5 * time.Hour),
		AirplaneID:    airplane.ID,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("Expected conflict inside the one-hour pad, got %v", err)
	}
}

func TestFlightService_Create_GapEqualToBufferPasses(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))

	// Departs exactly one hour after the existing arrival.
	_, err := svc.Create(context.Background(), dtos.CreateFlightInput{
		FlightNumber:  "SW105",
		Departure:     "AMS",
		Destination:   "IST",
		DepartureTime: base.Add(3 * time.Hour),
		ArrivalTime:   base.Add(5 * time.Hour),
		AirplaneID:    airplane.ID,
	})
	if err != nil {
		t.Fatalf("Expected a gap equal to the buffer to pass, got %v", err)
	}
}

func TestFlightService_Create_IgnoresDeletedFlights(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	stale := seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))
	if err := db.Model(stale).Update("deleted", true).Error; err != nil {
		t.Fatalf("Failed to mark flight deleted: %v", err)
	}

	_, err := svc.Create(context.Background(), dtos.CreateFlightInput{
		FlightNumber:  "SW106",
		Departure:     "AMS",
		Destination:   "IST",
		DepartureTime: base,
		ArrivalTime:   base.Add(2 * time.Hour),
		AirplaneID:    airplane.ID,
	})
	if err != nil {
		t.Fatalf("Expected deleted flights to be excluded from the scan, got %v", err)
	}
}

func TestFlightService_Update_ExcludesSelfFromConflictScan(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	flight := seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))

	newArrival := base.Add(2*time.Hour + 15*time.Minute)
	got, err := svc.Update(context.Background(), flight.ID, dtos.UpdateFlightInput{
		ArrivalTime: &newArrival,
	})
	if err != nil {
		t.Fatalf("Expected shifting a flight's own window to pass, got %v", err)
	}
	if !got.ArrivalTime.Equal(newArrival) {
		t.Errorf("Expected arrival %v, got %v", newArrival, got.ArrivalTime)
	}
}

func TestFlightService_Update_ConflictWithOtherFlight(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))
	other := seedFlight(t, db, airplane.ID, base.Add(4*time.Hour), base.Add(6*time.Hour))

	// Pull the second flight's departure inside the first one's pad.
	newDeparture := base.Add(2*time.Hour + 30*time.Minute)
	_, err := svc.Update(context.Background(), other.ID, dtos.UpdateFlightInput{
		DepartureTime: &newDeparture,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("Expected conflict, got %v", err)
	}
}

func TestFlightService_Update_EmptyPatchIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour)
	flight := seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))

	got, err := svc.Update(context.Background(), flight.ID, dtos.UpdateFlightInput{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.FlightNumber != flight.FlightNumber {
		t.Errorf("Expected flight unchanged, got %s", got.FlightNumber)
	}
}

func TestFlightService_SoftDelete_BlockedByActiveReservations(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	now := time.Now().UTC()
	flight := seedFlight(t, db, airplane.ID, now.Add(2*time.Hour), now.Add(4*time.Hour))
	seedReservation(t, db, flight.ID, true, false)

	err := svc.SoftDelete(context.Background(), flight.ID)
	if !domain.IsConflict(err) {
		t.Fatalf("Expected conflict for a future flight with active reservations, got %v", err)
	}
}

func TestFlightService_SoftDelete_CancelledReservationsDoNotBlock(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	now := time.Now().UTC()
	flight := seedFlight(t, db, airplane.ID, now.Add(2*time.Hour), now.Add(4*time.Hour))
	seedReservation(t, db, flight.ID, false, false)
	seedReservation(t, db, flight.ID, true, true)

	if err := svc.SoftDelete(context.Background(), flight.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestFlightService_SoftDelete_PassedFlightWithReservations(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	now := time.Now().UTC()
	flight := seedFlight(t, db, airplane.ID, now.Add(-4*time.Hour), now.Add(-2*time.Hour))
	seedReservation(t, db, flight.ID, true, false)

	if err := svc.SoftDelete(context.Background(), flight.ID); err != nil {
		t.Fatalf("Expected a passed flight to be deletable, got %v", err)
	}

	var stored gormModels.Flight
	if err := db.First(&stored, flight.ID).Error; err != nil {
		t.Fatalf("Flight not found: %v", err)
	}
	if !stored.Deleted {
		t.Error("Expected deleted flag to be set")
	}
}

func TestFlightService_SoftDelete_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newFlightService(db)
	airplane := seedAirplane(t, db, 150)

	now := time.Now().UTC()
	flight := seedFlight(t, db, airplane.ID, now.Add(-4*time.Hour), now.Add(-2*time.Hour))

	if err := svc.SoftDelete(context.Background(), flight.ID); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}
	if err := svc.SoftDelete(context.Background(), flight.ID); err != nil {
		t.Fatalf("Second delete should be a no-op, got %v", err)
	}
}
