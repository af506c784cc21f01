package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// attemptHeader carries the delivery attempt count across retries.
const attemptHeader = "x-attempt"

// Publisher enqueues pipeline jobs.
type Publisher struct {
	conn   *Connection
	logger zerolog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(conn *Connection, logger zerolog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// EnqueueOptions tune delivery of a single job.
type EnqueueOptions struct {
	// Priority orders delivery within the work queue, 0..MaxPriority.
	Priority uint8

	// Delay holds the job in the retry queue for the given duration
	// before it becomes deliverable.
	Delay time.Duration
}

// Enqueue publishes a job to the work queue. A delayed job goes through
// the retry queue and dead-letters into the work queue when its TTL
// expires.
func (p *Publisher) Enqueue(ctx context.Context, name string, payload JobPayload, opts EnqueueOptions) (string, error) {
	msg := Message{
		ID:        uuid.New().String(),
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	if err := p.publish(ctx, msg, attemptStart, opts); err != nil {
		return "", err
	}
	return msg.ID, nil
}

// Retry re-publishes a failed job through the retry queue with the
// backoff delay for the given attempt. The message keeps its identifier
// so the ledger tracks one row per job.
func (p *Publisher) Retry(ctx context.Context, msg Message, attempt int) error {
	delay := BackoffDelay(attempt - 1)
	p.logger.Info().
		Str("message_id", msg.ID).
		Str("job", msg.Name).
		Int("attempt", attempt).
		Dur("delay", delay).
		Msg("scheduling retry")
	return p.publish(ctx, msg, attempt, EnqueueOptions{Delay: delay})
}

// Fail moves a job to the failed queue after its attempts are exhausted.
func (p *Publisher) Fail(ctx context.Context, msg Message, attempt int, jobErr error) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	headers := amqp.Table{attemptHeader: int32(attempt)}
	if jobErr != nil {
		headers["x-last-error"] = jobErr.Error()
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(ctx,
			ExchangeName, failedRoutingKey,
			false, false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Headers:      headers,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to failed queue: %w", err)
		}

		p.logger.Error().
			Str("message_id", msg.ID).
			Str("job", msg.Name).
			Int("attempt", attempt).
			Msg("job moved to failed queue")
		return nil
	})
}

func (p *Publisher) publish(ctx context.Context, msg Message, attempt int, opts EnqueueOptions) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		MessageId:    msg.ID,
		Timestamp:    msg.Timestamp,
		Priority:     opts.Priority,
		Headers:      amqp.Table{attemptHeader: int32(attempt)},
		Body:         body,
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		if opts.Delay > 0 {
			// Delayed delivery: park in the retry queue with a
			// per-message TTL; expiry dead-letters into the work queue.
			pub.Expiration = strconv.FormatInt(opts.Delay.Milliseconds(), 10)
			if err := ch.PublishWithContext(ctx, "", RetryQueue, false, false, pub); err != nil {
				return fmt.Errorf("publish to retry queue: %w", err)
			}
		} else {
			if err := ch.PublishWithContext(ctx, ExchangeName, workRoutingKey, false, false, pub); err != nil {
				return fmt.Errorf("publish to work queue: %w", err)
			}
		}

		p.logger.Debug().
			Str("message_id", msg.ID).
			Str("job", msg.Name).
			Uint8("priority", opts.Priority).
			Dur("delay", opts.Delay).
			Msg("published job")
		return nil
	})
}

// DeliveryAttempt reads the attempt counter from a delivery, defaulting
// to the first attempt when the header is missing or malformed.
func DeliveryAttempt(d amqp.Delivery) int {
	if d.Headers == nil {
		return attemptStart
	}
	switch v := d.Headers[attemptHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return attemptStart
	}
}
