package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyward/tower/internal/db"
	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/domain"
	"skyward/tower/internal/logging"
	"skyward/tower/internal/metrics"
	"skyward/tower/internal/models/dtos"
	gormModels "skyward/tower/internal/models/gorm"
	"skyward/tower/internal/notifications"
)

// EventPublisher fans a domain event out to its registered handlers.
// Called strictly after the owning transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, kind string, payload any)
}

// ReservationService is the admission controller for bookings. Capacity
// is enforced with a check-then-insert under a per-flight lock: the
// count of active reservations on a flight never exceeds the airplane's
// capacity at commit time, no matter how many bookings race.
type ReservationService struct {
	db           *gorm.DB
	flights      *repositories.FlightRepository
	reservations *repositories.ReservationRepository
	locker       db.FlightLocker
	events       EventPublisher
	metrics      *metrics.MetricsRegistry
}

func NewReservationService(
	gdb *gorm.DB,
	flights *repositories.FlightRepository,
	reservations *repositories.ReservationRepository,
	locker db.FlightLocker,
	events EventPublisher,
	metricsReg *metrics.MetricsRegistry,
) *ReservationService {
	return &ReservationService{
		db:           gdb,
		flights:      flights,
		reservations: reservations,
		locker:       locker,
		events:       events,
		metrics:      metricsReg,
	}
}

// NewReservationCode derives a server-generated booking code: the first
// eight hex characters of a v4 UUID, upper-cased.
func NewReservationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Get returns a reservation whatever its flags; callers decide how to
// present cancelled ones.
func (s *ReservationService) Get(ctx context.Context, id uint) (*gormModels.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.NotFoundf("reservation %d not found", id)
	}
	return res, nil
}

// Make books a seat. The flight must exist, not be deleted and not have
// passed. The capacity count and the insert run inside one transaction
// under the per-flight lock, so two racing bookings for the last seat
// serialize and exactly one wins. The booked event fires only after the
// transaction commits.
func (s *ReservationService) Make(ctx context.Context, inp dtos.MakeReservationInput) (*gormModels.Reservation, error) {
	flight, err := s.flights.GetCurrentWithAirplane(ctx, inp.FlightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, domain.NotFoundf("flight %d not found", inp.FlightID)
	}

	now := time.Now().UTC()
	if FlightPassed(flight.ArrivalTime, now) {
		return nil, domain.Conflictf("flight %d already passed", flight.ID)
	}

	res := &gormModels.Reservation{
		ReservationCode: NewReservationCode(),
		PassengerName:   strings.TrimSpace(inp.PassengerName),
		PassengerEmail:  normalizeEmail(inp.PassengerEmail),
		FlightID:        flight.ID,
		Status:          true,
	}
	if inp.Status != nil {
		res.Status = *inp.Status
	}

	if err := validateReservation(res); err != nil {
		return nil, err
	}

	err = s.withFlightLock(ctx, flight.ID, func(tx *gorm.DB) error {
		if err := s.checkCapacityTx(tx, flight, 0); err != nil {
			return err
		}
		if err := tx.Create(res).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReservationsCreatedTotal.Inc()
	}
	logging.Info("Reservation booked",
		"reservation_id", res.ID,
		"reservation_code", res.ReservationCode,
		"flight_id", flight.ID,
	)

	s.publishBooked(ctx, res, flight)
	return res, nil
}

// Update applies a merge patch over a reservation. Reactivating a
// cancelled-status reservation can grow the active count, so that path
// re-runs the capacity check under the flight lock with the reservation
// excluded from its own count. An empty patch performs no write.
func (s *ReservationService) Update(ctx context.Context, id uint, inp dtos.UpdateReservationInput) (*gormModels.Reservation, error) {
	res, err := s.reservations.GetCurrent(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.NotFoundf("reservation %d not found", id)
	}

	if inp.Empty() {
		return res, nil
	}

	changes := map[string]any{}
	if inp.PassengerName != nil {
		res.PassengerName = strings.TrimSpace(*inp.PassengerName)
		changes["passenger_name"] = res.PassengerName
	}
	if inp.PassengerEmail != nil {
		res.PassengerEmail = normalizeEmail(*inp.PassengerEmail)
		changes["passenger_email"] = res.PassengerEmail
	}
	reactivating := false
	if inp.Status != nil {
		reactivating = *inp.Status && !res.Status
		res.Status = *inp.Status
		changes["status"] = res.Status
	}

	if err := validateReservation(res); err != nil {
		return nil, err
	}

	if !reactivating {
		if err := s.reservations.UpdateFields(ctx, res.ID, changes); err != nil {
			return nil, err
		}
		return res, nil
	}

	flight, err := s.flights.GetCurrentWithAirplane(ctx, res.FlightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, domain.NotFoundf("flight %d not found", res.FlightID)
	}
	if FlightPassed(flight.ArrivalTime, time.Now().UTC()) {
		return nil, domain.Conflictf("flight %d already passed", flight.ID)
	}

	err = s.withFlightLock(ctx, flight.ID, func(tx *gorm.DB) error {
		if err := s.checkCapacityTx(tx, flight, res.ID); err != nil {
			return err
		}
		return s.reservations.UpdateFieldsTx(tx, res.ID, changes)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SoftDelete cancels a reservation. Already-cancelled reservations are a
// no-op. Cancellation is refused inside the cutoff window before
// departure and allowed again once the flight has passed.
func (s *ReservationService) SoftDelete(ctx context.Context, id uint) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.NotFoundf("reservation %d not found", id)
	}
	if res.Deleted {
		return nil
	}

	flight, err := s.flights.GetByID(ctx, res.FlightID)
	if err != nil {
		return err
	}
	if flight == nil {
		return domain.NotFoundf("flight %d not found", res.FlightID)
	}

	now := time.Now().UTC()
	if !FlightPassed(flight.ArrivalTime, now) && DepartsWithin(flight.DepartureTime, now, CancellationCutoff) {
		return domain.Conflictf(
			"flight departs within %d minutes, the reservation can no longer be cancelled",
			int(CancellationCutoff.Minutes()),
		)
	}

	if err := s.reservations.UpdateFields(ctx, res.ID, map[string]any{"deleted": true}); err != nil {
		return err
	}

	logging.Info("Reservation cancelled", "reservation_id", res.ID, "reservation_code", res.ReservationCode)
	return nil
}

// withFlightLock runs fn inside a transaction holding the per-flight
// lock. For the advisory locker the lock dies with the transaction; the
// in-process locker's release runs right after, before any publisher
// side effects.
func (s *ReservationService) withFlightLock(ctx context.Context, flightID uint, fn func(tx *gorm.DB) error) error {
	var release func()

	lockStart := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rel, err := s.locker.LockFlight(ctx, tx, flightID)
		if err != nil {
			return err
		}
		release = rel
		if s.metrics != nil {
			s.metrics.FlightLockWaitDuration.Observe(time.Since(lockStart).Seconds())
		}
		return fn(tx)
	})
	if release != nil {
		release()
	}
	return err
}

func (s *ReservationService) checkCapacityTx(tx *gorm.DB, flight *gormModels.Flight, excludeID uint) error {
	active, err := s.reservations.CountActiveTx(tx, flight.ID, excludeID)
	if err != nil {
		return err
	}
	if active >= int64(flight.Airplane.Capacity) {
		if s.metrics != nil {
			s.metrics.CapacityConflictsTotal.Inc()
		}
		return domain.Conflictf("flight %d capacity is full", flight.ID)
	}
	return nil
}

func (s *ReservationService) publishBooked(ctx context.Context, res *gormModels.Reservation, flight *gormModels.Flight) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, notifications.EventReservationBooked, notifications.ReservationBookedEvent{
		PassengerEmail: res.PassengerEmail,
		PassengerName:  res.PassengerName,
		FlightID:       flight.ID,
		Departure:      flight.Departure,
		DepartureTime:  flight.DepartureTime.Format(time.RFC3339),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateReservation(r *gormModels.Reservation) error {
	fields := map[string]string{}

	if r.PassengerName == "" {
		fields["passenger_name"] = "passenger name must not be blank"
	}
	if r.PassengerEmail == "" {
		fields["passenger_email"] = "passenger email must not be blank"
	} else if !strings.Contains(r.PassengerEmail, "@") {
		fields["passenger_email"] = "passenger email is not a valid address"
	}

	if len(fields) > 0 {
		return domain.ValidationFields(fields)
	}
	return nil
}
