package queue

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange and queue names. One direct exchange feeds the work queue;
// the retry queue dead-letters expired messages back into it, and
// terminally failed jobs land in the failed queue for manual inspection.
const (
	ExchangeName = "carousel.pipeline"

	WorkQueue   = "carousel.pipeline.work"
	RetryQueue  = "carousel.pipeline.retry"
	FailedQueue = "carousel.pipeline.failed"

	workRoutingKey   = "work"
	failedRoutingKey = "failed"
)

// MaxPriority is the highest priority the work queue accepts. Higher
// numbers are delivered first.
const MaxPriority = 10

// SetupTopology declares the exchange, queues and bindings. Declarations
// are idempotent; every process runs this at startup.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			ExchangeName, // name
			"direct",     // type
			true,         // durable
			false,        // auto-deleted
			false,        // internal
			false,        // no-wait
			nil,          // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
		}

		queues := []struct {
			name string
			args amqp.Table
		}{
			// Work queue: priority delivery, poison messages dead-letter
			// into the failed queue.
			{WorkQueue, amqp.Table{
				"x-max-priority":            int32(MaxPriority),
				"x-dead-letter-exchange":    ExchangeName,
				"x-dead-letter-routing-key": failedRoutingKey,
			}},

			// Retry queue: no consumers; messages sit until their
			// per-message TTL expires, then dead-letter back into the
			// work queue.
			{RetryQueue, amqp.Table{
				"x-dead-letter-exchange":    ExchangeName,
				"x-dead-letter-routing-key": workRoutingKey,
			}},

			// Terminal failures, kept for manual inspection.
			{FailedQueue, nil},
		}

		for _, q := range queues {
			_, err := ch.QueueDeclare(
				q.name, // name
				true,   // durable
				false,  // delete when unused
				false,  // exclusive
				false,  // no-wait
				q.args, // arguments
			)
			if err != nil {
				return fmt.Errorf("declare queue %s: %w", q.name, err)
			}
		}

		bindings := []struct {
			queue      string
			routingKey string
		}{
			{WorkQueue, workRoutingKey},
			{FailedQueue, failedRoutingKey},
		}

		for _, b := range bindings {
			if err := ch.QueueBind(b.queue, b.routingKey, ExchangeName, false, nil); err != nil {
				return fmt.Errorf("bind queue %s: %w", b.queue, err)
			}
		}

		return nil
	})
}
