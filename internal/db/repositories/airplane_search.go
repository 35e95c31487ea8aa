package repositories

import (
	"context"
	"fmt"
	"strings"

	"skyward/tower/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type AirplaneSearchRepository struct {
	db *sqlx.DB
}

func NewAirplaneSearchRepository(db *sqlx.DB) *AirplaneSearchRepository {
	return &AirplaneSearchRepository{db}
}

// AirplaneFilters narrows the airplane listing. By default only active,
// non-deleted airplanes are returned.
type AirplaneFilters struct {
	TailNumber      string
	Model           string
	MinCapacity     int
	MaxCapacity     int
	IncludeInactive bool
	IncludeDeleted  bool
}

func (r *AirplaneSearchRepository) List(ctx context.Context, f AirplaneFilters) ([]entities.AirplaneRow, error) {
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
	if f.TailNumber != "" {
		add("tail_number = $%d", strings.ToUpper(strings.TrimSpace(f.TailNumber)))
	}
	if f.Model != "" {
		add("model = $%d", f.Model)
	}
	if f.MinCapacity > 0 {
		add("capacity >= $%d", f.MinCapacity)
	}
	if f.MaxCapacity > 0 {
		add("capacity <= $%d", f.MaxCapacity)
	}

	query := fmt.Sprintf(`
		SELECT id, tail_number, model, capacity, production_year,
		       status, deleted, created_at, updated_at
		FROM airplanes
		WHERE %s
		ORDER BY tail_number
	`, strings.Join(where, " AND "))

	airplanes := []entities.AirplaneRow{}
	if err := r.db.SelectContext(ctx, &airplanes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list airplanes: %w", err)
	}
	return airplanes, nil
}
