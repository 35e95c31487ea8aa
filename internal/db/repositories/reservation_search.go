package repositories

import (
	"context"
	"fmt"
	"strings"

	"skyward/tower/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type ReservationSearchRepository struct {
	db *sqlx.DB
}

func NewReservationSearchRepository(db *sqlx.DB) *ReservationSearchRepository {
	return &ReservationSearchRepository{db}
}

// ReservationFilters narrows the reservation listing. By default only
// active reservations (status true, not deleted) are returned.
type ReservationFilters struct {
	ReservationCode string
	FlightID        uint
	PassengerEmail  string
	PassengerName   string
	IncludeInactive bool
	IncludeDeleted  bool
	// Ordering accepts id, -id, created_at, -created_at; anything else
	// falls back to id.
	Ordering string
}

var reservationOrderings = map[string]string{
	"id":          "id",
	"-id":         "id DESC",
	"created_at":  "created_at",
	"-created_at": "created_at DESC",
}

func (r *ReservationSearchRepository) List(ctx context.Context, f ReservationFilters) ([]entities.ReservationRow, error) {
	where := []string{"1=1"}
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if !f.IncludeInactive {
		add("status = $%d", true)
	}
	if !f.IncludeDeleted {
		add("deleted = $%d", false)
	}
	if f.ReservationCode != "" {
		add("reservation_code = $%d", f.ReservationCode)
	}
	if f.FlightID != 0 {
		add("flight_id = $%d", f.FlightID)
	}
	if f.PassengerEmail != "" {
		add("passenger_email = $%d", strings.ToLower(strings.TrimSpace(f.PassengerEmail)))
	}
	if f.PassengerName != "" {
		add("passenger_name = $%d", f.PassengerName)
	}

	orderBy, ok := reservationOrderings[f.Ordering]
	if !ok {
		orderBy = "id"
	}

	query := fmt.Sprintf(`
		SELECT id, reservation_code, passenger_name, passenger_email,
		       flight_id, status, deleted, created_at, updated_at
		FROM reservations
		WHERE %s
		ORDER BY %s
	`, strings.Join(where, " AND "), orderBy)

	reservations := []entities.ReservationRow{}
	if err := r.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}
