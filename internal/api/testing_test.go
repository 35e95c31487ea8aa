package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skyward/tower/internal/api"
	towerdb "skyward/tower/internal/db"
	"skyward/tower/internal/db/repositories"
	gormModels "skyward/tower/internal/models/gorm"
	"skyward/tower/internal/notifications"
	"skyward/tower/internal/routes"
	"skyward/tower/internal/services"
)

type testEnv struct {
	db     *gorm.DB
	router http.Handler
	events *notifications.Dispatcher
	locker *towerdb.KeyedFlightLocker
}

// newTestEnv wires the full handler stack over an in-memory database,
// with the in-process flight locker and no external queue or broker.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormModels.AutoMigrate(db))

	repos := &api.Repositories{
		Airplanes:    repositories.NewAirplaneRepository(db),
		Flights:      repositories.NewFlightRepository(db),
		Reservations: repositories.NewReservationRepository(db),
	}

	dispatcher := notifications.NewDispatcher()
	locker := towerdb.NewKeyedFlightLocker(100 * time.Millisecond)

	svcs := &api.Services{
		Airplanes: services.NewAirplaneService(repos.Airplanes, repos.Flights, nil),
		Flights:   services.NewFlightService(repos.Flights, repos.Airplanes, repos.Reservations),
		Reservations: services.NewReservationService(
			db,
			repos.Flights,
			repos.Reservations,
			locker,
			dispatcher,
			nil,
		),
	}

	deps := &api.Dependencies{
		Repo:       repos,
		Services:   svcs,
		Dispatcher: dispatcher,
	}

	r := chi.NewRouter()
	routes.RegisterAPIRoutes(r, api.NewHandlers(deps))

	return &testEnv{db: db, router: r, events: dispatcher, locker: locker}
}

func (e *testEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status   string            `json:"status"`
	Data     json.RawMessage   `json:"data"`
	Error    string            `json:"error"`
	Category string            `json:"category"`
	Fields   map[string]string `json:"fields"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// seedSeq keeps seeded tail and flight numbers unique; timestamps
// collide when fixtures share a departure base.
var seedSeq uint64

func nextSeedID() uint64 {
	return atomic.AddUint64(&seedSeq, 1)
}

func (e *testEnv) seedAirplane(t *testing.T, capacity int) *gormModels.Airplane {
	t.Helper()

	airplane := &gormModels.Airplane{
		TailNumber:     fmt.Sprintf("TC-%04d", nextSeedID()),
		Model:          "B738",
		Capacity:       capacity,
		ProductionYear: 2015,
		Status:         true,
	}
	require.NoError(t, e.db.Create(airplane).Error)
	return airplane
}

func (e *testEnv) seedFlight(t *testing.T, airplaneID uint, departure, arrival time.Time) *gormModels.Flight {
	t.Helper()

	flight := &gormModels.Flight{
		FlightNumber:  fmt.Sprintf("SW%04d", nextSeedID()),
		Departure:     "IST",
		Destination:   "AMS",
		DepartureTime: departure,
		ArrivalTime:   arrival,
		AirplaneID:    airplaneID,
	}
	require.NoError(t, e.db.Create(flight).Error)
	return flight
}
