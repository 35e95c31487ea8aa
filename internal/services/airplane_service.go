package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skyward/tower/internal/common"
	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/domain"
	"skyward/tower/internal/logging"
	"skyward/tower/internal/models/dtos"
	gormModels "skyward/tower/internal/models/gorm"
)

const (
	minProductionYear = 1950

	airplaneCacheTTL = 60 * time.Second
)

// AirplaneService owns airplane lifecycle rules: field invariants, the
// conservative capacity-shrink guard, and the dependent-flight guard on
// soft deletion.
type AirplaneService struct {
	airplanes *repositories.AirplaneRepository
	flights   *repositories.FlightRepository
	cache     *common.CacheService
}

func NewAirplaneService(
	airplanes *repositories.AirplaneRepository,
	flights *repositories.FlightRepository,
	cache *common.CacheService,
) *AirplaneService {
	return &AirplaneService{
		airplanes: airplanes,
		flights:   flights,
		cache:     cache,
	}
}

func airplaneCacheKey(id uint) string {
	return fmt.Sprintf("airplane:%d", id)
}

// Get returns a non-deleted airplane, cached briefly for the read-only
// endpoints. Lifecycle mutations always re-read the store.
func (s *AirplaneService) Get(ctx context.Context, id uint) (*gormModels.Airplane, error) {
	if s.cache != nil {
		val, err := s.cache.GetOrSet(airplaneCacheKey(id), airplaneCacheTTL, func() (any, error) {
			return s.airplanes.GetCurrent(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		if airplane, ok := val.(*gormModels.Airplane); ok && airplane != nil {
			return airplane, nil
		}
		return nil, domain.NotFoundf("airplane %d not found", id)
	}

	airplane, err := s.airplanes.GetCurrent(ctx, id)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, domain.NotFoundf("airplane %d not found", id)
	}
	return airplane, nil
}

// Create registers a new airplane. Tail numbers are stored trimmed and
// upper-cased.
func (s *AirplaneService) Create(ctx context.Context, inp dtos.CreateAirplaneInput) (*gormModels.Airplane, error) {
	airplane := &gormModels.Airplane{
		TailNumber:     strings.ToUpper(strings.TrimSpace(inp.TailNumber)),
		Model:          strings.TrimSpace(inp.Model),
		Capacity:       inp.Capacity,
		ProductionYear: inp.ProductionYear,
		Status:         true,
	}
	if inp.Status != nil {
		airplane.Status = *inp.Status
	}

	if err := validateAirplane(airplane); err != nil {
		return nil, err
	}

	if err := s.airplanes.Create(ctx, airplane); err != nil {
		return nil, err
	}

	logging.Info("Airplane created",
		"airplane_id", airplane.ID,
		"tail_number", airplane.TailNumber,
		"capacity", airplane.Capacity,
	)
	return airplane, nil
}

// Update applies a merge patch: only supplied fields override stored
// values. An empty patch returns the record unchanged without a write.
// Shrinking capacity below the number of flights ever scheduled on the
// airplane is rejected; the count deliberately includes deleted flights,
// matching the historical guard.
func (s *AirplaneService) Update(ctx context.Context, id uint, inp dtos.UpdateAirplaneInput) (*gormModels.Airplane, error) {
	airplane, err := s.airplanes.GetCurrent(ctx, id)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, domain.NotFoundf("airplane %d not found", id)
	}

	if inp.Empty() {
		return airplane, nil
	}

	changes := map[string]any{}
	if inp.TailNumber != nil {
		airplane.TailNumber = strings.ToUpper(strings.TrimSpace(*inp.TailNumber))
		changes["tail_number"] = airplane.TailNumber
	}
	if inp.Model != nil {
		airplane.Model = strings.TrimSpace(*inp.Model)
		changes["model"] = airplane.Model
	}
	if inp.Capacity != nil {
		airplane.Capacity = *inp.Capacity
		changes["capacity"] = airplane.Capacity
	}
	if inp.ProductionYear != nil {
		airplane.ProductionYear = *inp.ProductionYear
		changes["production_year"] = airplane.ProductionYear
	}
	if inp.Status != nil {
		airplane.Status = *inp.Status
		changes["status"] = airplane.Status
	}

	scheduled, err := s.flights.CountByAirplane(ctx, airplane.ID)
	if err != nil {
		return nil, err
	}
	if scheduled > int64(airplane.Capacity) {
		return nil, domain.Validationf("capacity", "there are %d flights scheduled on this airplane", scheduled)
	}

	if err := validateAirplane(airplane); err != nil {
		return nil, err
	}

	if err := s.airplanes.UpdateFields(ctx, airplane.ID, changes); err != nil {
		return nil, err
	}
	s.invalidate(airplane.ID)

	return airplane, nil
}

// SoftDelete retires an airplane. Refused while any non-deleted flight
// on it has an arrival time in the future.
func (s *AirplaneService) SoftDelete(ctx context.Context, id uint) error {
	airplane, err := s.airplanes.GetCurrent(ctx, id)
	if err != nil {
		return err
	}
	if airplane == nil {
		return domain.NotFoundf("airplane %d not found", id)
	}

	active, err := s.flights.HasFutureArrivals(ctx, airplane.ID, time.Now().UTC())
	if err != nil {
		return err
	}
	if active {
		return domain.Conflictf("airplane %d still has flights that have not arrived", airplane.ID)
	}

	if err := s.airplanes.UpdateFields(ctx, airplane.ID, map[string]any{
		"status":  false,
		"deleted": true,
	}); err != nil {
		return err
	}
	s.invalidate(airplane.ID)

	logging.Info("Airplane soft-deleted", "airplane_id", airplane.ID, "tail_number", airplane.TailNumber)
	return nil
}

func (s *AirplaneService) invalidate(id uint) {
	if s.cache != nil {
		s.cache.Delete(airplaneCacheKey(id))
	}
}

func validateAirplane(a *gormModels.Airplane) error {
	fields := map[string]string{}

	if a.TailNumber == "" {
		fields["tail_number"] = "tail number must not be blank"
	}
	if a.Model == "" {
		fields["model"] = "model must not be blank"
	}
	if a.Capacity < 1 {
		fields["capacity"] = "capacity must be at least 1"
	}
	if a.ProductionYear < minProductionYear || a.ProductionYear > time.Now().Year() {
		fields["production_year"] = "invalid production year range"
	}

	if len(fields) > 0 {
		return domain.ValidationFields(fields)
	}
	return nil
}
