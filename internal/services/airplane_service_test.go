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

func TestAirplaneService_Create_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)

	airplane, err := svc.Create(context.Background(), dtos.CreateAirplaneInput{
		TailNumber:     "  tc-jfk ",
		Model:          "A321",
		Capacity:       180,
		ProductionYear: 2018,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if airplane.TailNumber != "TC-JFK" {
		t.Errorf("Expected normalized tail number TC-JFK, got %s", airplane.TailNumber)
	}
	if !airplane.Status {
		t.Error("Expected status to default to true")
	}

	var stored gormModels.Airplane
	if err := db.First(&stored, airplane.ID).Error; err != nil {
		t.Fatalf("Airplane not found in database: %v", err)
	}
}

func TestAirplaneService_Create_ExplicitInactiveStatusPersists(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)

	inactive := false
	airplane, err := svc.Create(context.Background(), dtos.CreateAirplaneInput{
		TailNumber:     "TC-INA",
		Model:          "A321",
		Capacity:       180,
		ProductionYear: 2018,
		Status:         &inactive,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var stored gormModels.Airplane
	if err := db.First(&stored, airplane.ID).Error; err != nil {
		t.Fatalf("Airplane not found: %v", err)
	}
	if stored.Status {
		t.Fatal("Expected an explicit inactive status to be persisted as false")
	}
}

func TestAirplaneService_Create_FieldValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)

	_, err := svc.Create(context.Background(), dtos.CreateAirplaneInput{
		TailNumber:     "   ",
		Model:          "A321",
		Capacity:       0,
		ProductionYear: 1890,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("Expected *domain.Error, got %T", err)
	}
	for _, field := range []string{"tail_number", "capacity", "production_year"} {
		if _, ok := de.Fields[field]; !ok {
			t.Errorf("Expected field error for %s, got %v", field, de.Fields)
		}
	}
}

func TestAirplaneService_Update_EmptyPatchIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)
	airplane := seedAirplane(t, db, 150)
	updatedAt := airplane.UpdatedAt

	got, err := svc.Update(context.Background(), airplane.ID, dtos.UpdateAirplaneInput{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Capacity != 150 {
		t.Errorf("Expected capacity unchanged, got %d", got.Capacity)
	}

	var stored gormModels.Airplane
	if err := db.First(&stored, airplane.ID).Error; err != nil {
		t.Fatalf("Airplane not found: %v", err)
	}
	if !stored.UpdatedAt.Equal(updatedAt) {
		t.Error("Expected no write for an empty patch")
	}
}

func TestAirplaneService_Update_CapacityShrinkGuard(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)
	airplane := seedAirplane(t, db, 150)

	base := time.Now().UTC().Add(24 * time.Hour)
	seedFlight(t, db, airplane.ID, base, base.Add(2*time.Hour))
	seedFlight(t, db, airplane.ID, base.Add(5*time.Hour), base.Add(7*time.Hour))

	capacity := 1
	_, err := svc.Update(context.Background(), airplane.ID, dtos.UpdateAirplaneInput{Capacity: &capacity})
	if !domain.IsValidation(err) {
		t.Fatalf("Expected validation error for capacity below flight count, got %v", err)
	}

	capacity = 2
	if _, err := svc.Update(context.Background(), airplane.ID, dtos.UpdateAirplaneInput{Capacity: &capacity}); err != nil {
		t.Fatalf("Expected capacity equal to flight count to pass, got %v", err)
	}
}

func TestAirplaneService_SoftDelete_BlockedByFutureFlight(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)
	airplane := seedAirplane(t, db, 150)

	now := time.Now().UTC()
	seedFlight(t, db, airplane.ID, now.Add(time.Hour), now.Add(3*time.Hour))

	err := svc.SoftDelete(context.Background(), airplane.ID)
	if !domain.IsConflict(err) {
		t.Fatalf("Expected conflict while a flight has not arrived, got %v", err)
	}
}

func TestAirplaneService_SoftDelete_AfterFlightsArrived(t *testing.T) {
	db := setupTestDB(t)
	svc := newAirplaneService(db)
	airplane := seedAirplane(t, db, 150)

	now := time.Now().UTC()
	seedFlight(t, db, airplane.ID, now.Add(-4*time.Hour), now.Add(-2*time.Hour))

	if err := svc.SoftDelete(context.Background(), airplane.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var stored gormModels.Airplane
	if err := db.First(&stored, airplane.ID).Error; err != nil {
		t.Fatalf("Airplane not found: %v", err)
	}
	if !stored.Deleted {
		t.Error("Expected deleted flag to be set")
	}
	if stored.Status {
		t.Error("Expected status flag to be cleared")
	}
}
