package notifications

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	emailMaxAttempts = 5
	emailBaseBackoff = time.Second
)

// EmailWorker consumes booked events from the notification stream and
// sends the confirmation email. Delivery is at-least-once, retried with
// exponential backoff and decoupled from the booking transaction: a
// failed email never touches the reservation.
type EmailWorker struct {
	workerID string
	queue    *Queue
	mailer   Mailer
}

func NewEmailWorker(workerID string, queue *Queue, mailer Mailer) *EmailWorker {
	return &EmailWorker{
		workerID: workerID,
		queue:    queue,
		mailer:   mailer,
	}
}

// Start spawns numWorkers consumer goroutines and blocks until ctx is
// cancelled.
func (w *EmailWorker) Start(ctx context.Context, numWorkers int) error {
	log.Printf("[EmailWorker] Starting %d workers with ID prefix: %s", numWorkers, w.workerID)

	if err := w.queue.CreateConsumerGroup(ctx, StreamReservationBooked, EmailConsumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	done := make(chan struct{})
	for i := 0; i < numWorkers; i++ {
		consumerName := fmt.Sprintf("%s-worker-%d", w.workerID, i)
		go func(name string) {
			defer func() { done <- struct{}{} }()
			w.processQueue(ctx, name)
		}(consumerName)
	}

	for i := 0; i < numWorkers; i++ {
		<-done
	}
	log.Printf("[EmailWorker] All workers stopped")
	return nil
}

func (w *EmailWorker) processQueue(ctx context.Context, consumerName string) {
	log.Printf("[%s] Started processing %s", consumerName, StreamReservationBooked)

	sentCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Shutting down. Sent: %d, Errors: %d", consumerName, sentCount, errorCount)
			return
		default:
			ev, messageID, err := w.queue.DequeueBooking(ctx, EmailConsumerGroup, consumerName, 5*time.Second)
			if err != nil {
				log.Printf("[%s] Dequeue error: %v", consumerName, err)
				errorCount++
				// A poison message would loop forever; drop it for the group.
				if messageID != "" {
					_ = w.queue.Ack(ctx, EmailConsumerGroup, messageID)
				}
				continue
			}
			if ev == nil {
				continue
			}

			if err := w.sendWithRetry(ctx, ev); err != nil {
				log.Printf("[%s] Giving up on %s after %d attempts: %v", consumerName, messageID, emailMaxAttempts, err)
				errorCount++
			} else {
				sentCount++
			}

			if err := w.queue.Ack(ctx, EmailConsumerGroup, messageID); err != nil {
				log.Printf("[%s] Ack failed for %s: %v", consumerName, messageID, err)
			}
		}
	}
}

func (w *EmailWorker) sendWithRetry(ctx context.Context, ev *ReservationBookedEvent) error {
	subject, body := ConfirmationEmail(ev)

	var err error
	for attempt := 0; attempt < emailMaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := emailBaseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err = w.mailer.Send(ctx, ev.PassengerEmail, subject, body); err == nil {
			return nil
		}
	}
	return err
}

// ConfirmationEmail renders the reservation confirmation message.
func ConfirmationEmail(ev *ReservationBookedEvent) (subject, body string) {
	subject = fmt.Sprintf("Reservation Confirmed (#%d)", ev.FlightID)
	body = fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your reservation for flight #%d is confirmed.\n"+
			"Departure: %s at %s\n\n"+
			"Have a nice trip!",
		ev.PassengerName, ev.FlightID, ev.Departure, ev.DepartureTime,
	)
	return subject, body
}
