package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skyward/tower/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// FlightSearchRepository serves the list/search endpoints with plain SQL.
// Mutations never go through here.
type FlightSearchRepository struct {
	db *sqlx.DB
}

func NewFlightSearchRepository(db *sqlx.DB) *FlightSearchRepository {
	return &FlightSearchRepository{db}
}

// FlightFilters narrows the flight listing. Zero values mean "not
// filtered". Deleted flights are excluded unless IncludeDeleted is set.
type FlightFilters struct {
	AirplaneID      uint
	Departure       string
	Destination     string
	DepartureAfter  *time.Time
	DepartureBefore *time.Time
	ArrivalAfter    *time.Time
	ArrivalBefore   *time.Time
	Search          string
	IncludeDeleted  bool
}

func (r *FlightSearchRepository) List(ctx context.Context, f FlightFilters) ([]entities.FlightRow, error) {
	where := []string{"1=1"}
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if !f.IncludeDeleted {
		add("deleted = $%d", false)
	}
	if f.AirplaneID != 0 {
		add("airplane_id = $%d", f.AirplaneID)
	}
	if f.Departure != "" {
		add("departure = $%d", f.Departure)
	}
	if f.Destination != "" {
		add("destination = $%d", f.Destination)
	}
	if f.DepartureAfter != nil {
		add("departure_time >= $%d", *f.DepartureAfter)
	}
	if f.DepartureBefore != nil {
		add("departure_time <= $%d", *f.DepartureBefore)
	}
	if f.ArrivalAfter != nil {
		add("arrival_time >= $%d", *f.ArrivalAfter)
	}
	if f.ArrivalBefore != nil {
		add("arrival_time <= $%d", *f.ArrivalBefore)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(flight_number ILIKE $%d OR departure ILIKE $%d OR destination ILIKE $%d)", n, n, n))
	}

	query := fmt.Sprintf(`
		SELECT id, flight_number, departure, destination, departure_time,
		       arrival_time, airplane_id, deleted, created_at, updated_at
		FROM flights
		WHERE %s
		ORDER BY departure_time
	`, strings.Join(where, " AND "))

	flights := []entities.FlightRow{}
	if err := r.db.SelectContext(ctx, &flights, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}
