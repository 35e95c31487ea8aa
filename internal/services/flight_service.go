package services

import (
	"context"
	"strings"
	"time"

	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/domain"
	"skyward/tower/internal/logging"
	"skyward/tower/internal/models/dtos"
	gormModels "skyward/tower/internal/models/gorm"
)

// FlightService owns flight lifecycle rules: the airplane-availability
// check, the padded schedule-conflict scan, and soft-delete eligibility.
type FlightService struct {
	flights      *repositories.FlightRepository
	airplanes    *repositories.AirplaneRepository
	reservations *repositories.ReservationRepository
}

func NewFlightService(
	flights *repositories.FlightRepository,
	airplanes *repositories.AirplaneRepository,
	reservations *repositories.ReservationRepository,
) *FlightService {
	return &FlightService{
		flights:      flights,
		airplanes:    airplanes,
		reservations: reservations,
	}
}

// Get returns a non-deleted flight with its airplane preloaded.
func (s *FlightService) Get(ctx context.Context, id uint) (*gormModels.Flight, error) {
	flight, err := s.flights.GetCurrentWithAirplane(ctx, id)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, domain.NotFoundf("flight %d not found", id)
	}
	return flight, nil
}

// Create schedules a new flight. The airplane must exist, be active and
// not deleted; the padded window must not overlap any other flight on
// the same airplane.
func (s *FlightService) Create(ctx context.Context, inp dtos.CreateFlightInput) (*gormModels.Flight, error) {
	airplane, err := s.airplanes.GetAvailable(ctx, inp.AirplaneID)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, domain.NotFoundf("airplane %d does not exist or is not active", inp.AirplaneID)
	}

	flight := &gormModels.Flight{
		FlightNumber:  strings.TrimSpace(inp.FlightNumber),
		Departure:     strings.TrimSpace(inp.Departure),
		Destination:   strings.TrimSpace(inp.Destination),
		DepartureTime: inp.DepartureTime,
		ArrivalTime:   inp.ArrivalTime,
		AirplaneID:    airplane.ID,
	}

	if err := validateFlight(flight); err != nil {
		return nil, err
	}

	if err := s.checkConflict(ctx, airplane.ID, flight.DepartureTime, flight.ArrivalTime, 0); err != nil {
		return nil, err
	}

	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	flight.Airplane = *airplane

	logging.Info("Flight scheduled",
		"flight_id", flight.ID,
		"flight_number", flight.FlightNumber,
		"airplane_id", airplane.ID,
		"departure_time", flight.DepartureTime,
	)
	return flight, nil
}

// Update applies a merge patch, re-validates the owning airplane and
// re-runs the conflict scan with the merged window, excluding the flight
// itself. An empty patch returns the record unchanged without a write.
func (s *FlightService) Update(ctx context.Context, id uint, inp dtos.UpdateFlightInput) (*gormModels.Flight, error) {
	flight, err := s.flights.GetCurrent(ctx, id)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, domain.NotFoundf("flight %d not found", id)
	}

	if inp.Empty() {
		return flight, nil
	}

	changes := map[string]any{}
	if inp.FlightNumber != nil {
		flight.FlightNumber = strings.TrimSpace(*inp.FlightNumber)
		changes["flight_number"] = flight.FlightNumber
	}
	if inp.Departure != nil {
		flight.Departure = strings.TrimSpace(*inp.Departure)
		changes["departure"] = flight.Departure
	}
	if inp.Destination != nil {
		flight.Destination = strings.TrimSpace(*inp.Destination)
		changes["destination"] = flight.Destination
	}
	if inp.DepartureTime != nil {
		flight.DepartureTime = *inp.DepartureTime
		changes["departure_time"] = flight.DepartureTime
	}
	if inp.ArrivalTime != nil {
		flight.ArrivalTime = *inp.ArrivalTime
		changes["arrival_time"] = flight.ArrivalTime
	}
	if inp.AirplaneID != nil {
		flight.AirplaneID = *inp.AirplaneID
		changes["airplane_id"] = flight.AirplaneID
	}

	// Reassignment only needs the airplane to not be deleted; an
	// inactive airplane keeps its already scheduled flights editable.
	airplane, err := s.airplanes.GetCurrent(ctx, flight.AirplaneID)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, domain.NotFoundf("airplane %d does not exist", flight.AirplaneID)
	}

	if err := validateFlight(flight); err != nil {
		return nil, err
	}

	if err := s.checkConflict(ctx, airplane.ID, flight.DepartureTime, flight.ArrivalTime, flight.ID); err != nil {
		return nil, err
	}

	if err := s.flights.UpdateFields(ctx, flight.ID, changes); err != nil {
		return nil, err
	}
	return flight, nil
}

// SoftDelete retires a flight. A flight that has not yet passed can only
// be removed while it carries no active reservations. Deleting an
// already-deleted flight is a no-op.
func (s *FlightService) SoftDelete(ctx context.Context, id uint) error {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if flight == nil {
		return domain.NotFoundf("flight %d not found", id)
	}
	if flight.Deleted {
		return nil
	}

	now := time.Now().UTC()
	if !FlightPassed(flight.ArrivalTime, now) {
		active, err := s.reservations.HasActiveByFlight(ctx, flight.ID)
		if err != nil {
			return err
		}
		if active {
			return domain.Conflictf("flight %d has active reservations", flight.ID)
		}
	}

	if err := s.flights.UpdateFields(ctx, flight.ID, map[string]any{"deleted": true}); err != nil {
		return err
	}

	logging.Info("Flight soft-deleted", "flight_id", flight.ID, "flight_number", flight.FlightNumber)
	return nil
}

func (s *FlightService) checkConflict(ctx context.Context, airplaneID uint, departure, arrival time.Time, excludeID uint) error {
	windowStart, windowEnd := ConflictWindow(departure, arrival)
	conflict, err := s.flights.HasConflict(ctx, airplaneID, windowStart, windowEnd, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return domain.Conflictf("airplane %d has another flight within the ±1h window", airplaneID)
	}
	return nil
}

func validateFlight(f *gormModels.Flight) error {
	fields := map[string]string{}

	if f.FlightNumber == "" {
		fields["flight_number"] = "flight number must not be blank"
	}
	if f.Departure == "" {
		fields["departure"] = "departure must not be blank"
	}
	if f.Destination == "" {
		fields["destination"] = "destination must not be blank"
	}
	if f.Departure != "" && strings.EqualFold(f.Departure, f.Destination) {
		fields["destination"] = "destination must differ from departure"
	}
	if f.DepartureTime.IsZero() {
		fields["departure_time"] = "departure time is required"
	}
	if f.ArrivalTime.IsZero() {
		fields["arrival_time"] = "arrival time is required"
	} else if !f.ArrivalTime.After(f.DepartureTime) {
		fields["arrival_time"] = "arrival must be after departure"
	}

	if len(fields) > 0 {
		return domain.ValidationFields(fields)
	}
	return nil
}
