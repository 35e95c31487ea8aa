package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamReservationBooked is the Redis stream carrying booked events for
// the email worker.
const StreamReservationBooked = "notifications:reservation.booked"

// EmailConsumerGroup is the consumer group the email workers read from.
const EmailConsumerGroup = "email-senders"

// Queue provides at-least-once delivery of notification events using
// Redis Streams with consumer groups. An event is acknowledged only
// after its handler gives up or succeeds, so worker crashes re-deliver.
type Queue struct {
	client *redis.Client
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

// EnqueueBooking persists a booked event on the notification stream.
func (q *Queue) EnqueueBooking(ctx context.Context, ev *ReservationBookedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal booked event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: StreamReservationBooked,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := q.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// CreateConsumerGroup creates the group if it does not already exist.
func (q *Queue) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := q.client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// DequeueBooking blocks up to block for the next undelivered event on
// the stream. Returns nil without error when the wait times out.
func (q *Queue) DequeueBooking(ctx context.Context, group, consumer string, block time.Duration) (*ReservationBookedEvent, string, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{StreamReservationBooked, ">"},
		Count:    1,
		Block:    block,
	}).Result()

	if err == redis.Nil {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	raw, ok := msg.Values["data"].(string)
	if !ok {
		return nil, msg.ID, fmt.Errorf("message %s has no data field", msg.ID)
	}

	var ev ReservationBookedEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return nil, msg.ID, fmt.Errorf("failed to unmarshal booked event: %w", err)
	}
	return &ev, msg.ID, nil
}

// Ack marks a message as processed for the group.
func (q *Queue) Ack(ctx context.Context, group, messageID string) error {
	if err := q.client.XAck(ctx, StreamReservationBooked, group, messageID).Err(); err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}
