package api

import (
	"context"

	"github.com/redis/go-redis/v9"

	"skyward/tower/internal/common"
	"skyward/tower/internal/config"
	"skyward/tower/internal/db"
	"skyward/tower/internal/db/repositories"
	"skyward/tower/internal/logging"
	"skyward/tower/internal/metrics"
	"skyward/tower/internal/notifications"
	"skyward/tower/internal/services"
)

type Repositories struct {
	Airplanes    *repositories.AirplaneRepository
	Flights      *repositories.FlightRepository
	Reservations *repositories.ReservationRepository

	AirplaneSearch    *repositories.AirplaneSearchRepository
	FlightSearch      *repositories.FlightSearchRepository
	ReservationSearch *repositories.ReservationSearchRepository
}

type Services struct {
	Airplanes    *services.AirplaneService
	Flights      *services.FlightService
	Reservations *services.ReservationService
}

type Dependencies struct {
	Repo       *Repositories
	Services   *Services
	Dispatcher *notifications.Dispatcher
	Queue      *notifications.Queue
	Worker     *notifications.EmailWorker
	Redis      *redis.Client
}

// InitDependencies wires repositories, services and the notification
// fan-out. The booked-event route gets two handlers: the email stream
// enqueue (retried by the worker) and the AMQP mirror for external
// consumers.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Airplanes:    repositories.NewAirplaneRepository(db.PgDB),
		Flights:      repositories.NewFlightRepository(db.PgDB),
		Reservations: repositories.NewReservationRepository(db.PgDB),

		AirplaneSearch:    repositories.NewAirplaneSearchRepository(db.DB),
		FlightSearch:      repositories.NewFlightSearchRepository(db.DB),
		ReservationSearch: repositories.NewReservationSearchRepository(db.DB),
	}

	cacheSvc := common.NewCacheService(60, 600)

	redisClient := common.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	queue := notifications.NewQueue(redisClient)

	dispatcher := notifications.NewDispatcher()
	dispatcher.Register(notifications.EventReservationBooked, func(ctx context.Context, payload any) error {
		ev, ok := payload.(notifications.ReservationBookedEvent)
		if !ok {
			return nil
		}
		if err := queue.EnqueueBooking(ctx, &ev); err != nil {
			return err
		}
		metricsReg.NotificationsEnqueuedTotal.Inc()
		return nil
	})

	amqpPub := &notifications.AMQPPublisher{URL: cfg.RabbitURL}
	dispatcher.Register(notifications.EventReservationBooked, func(ctx context.Context, payload any) error {
		ev, ok := payload.(notifications.ReservationBookedEvent)
		if !ok {
			return nil
		}
		return amqpPub.Publish(ctx, &ev)
	})

	var mailer notifications.Mailer = notifications.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = &notifications.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		}
	} else {
		logging.Warn("SMTP not configured, confirmation emails will only be logged")
	}

	locker := db.NewAdvisoryFlightLocker(cfg.LockWait)

	svcs := &Services{
		Airplanes: services.NewAirplaneService(repos.Airplanes, repos.Flights, cacheSvc),
		Flights:   services.NewFlightService(repos.Flights, repos.Airplanes, repos.Reservations),
		Reservations: services.NewReservationService(
			db.PgDB,
			repos.Flights,
			repos.Reservations,
			locker,
			dispatcher,
			metricsReg,
		),
	}

	return &Dependencies{
		Repo:       repos,
		Services:   svcs,
		Dispatcher: dispatcher,
		Queue:      queue,
		Worker:     notifications.NewEmailWorker("reservation_email", queue, mailer),
		Redis:      redisClient,
	}, nil
}
