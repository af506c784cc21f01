package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Handler processes one delivery. The handler owns acknowledgement; the
// consumer never acks on its behalf.
type Handler func(ctx context.Context, d *Delivery) error

// Delivery is a parsed job delivery with manual ack/nack.
type Delivery struct {
	Message Message
	Attempt int
	Raw     amqp.Delivery
}

// Ack confirms successful processing.
func (d *Delivery) Ack() error {
	return d.Raw.Ack(false)
}

// Nack rejects the delivery. requeue=false dead-letters it per the work
// queue's dead-letter config.
func (d *Delivery) Nack(requeue bool) error {
	return d.Raw.Nack(false, requeue)
}

// Consumer consumes jobs from one queue.
type Consumer struct {
	conn     *Connection
	logger   zerolog.Logger
	queue    string
	handler  Handler
	prefetch int
}

// ConsumerConfig configures a Consumer.
type ConsumerConfig struct {
	Queue    string
	Handler  Handler
	Prefetch int
}

// NewConsumer creates a Consumer. Prefetch bounds the number of
// unacknowledged deliveries in flight and so caps worker concurrency.
func NewConsumer(conn *Connection, logger zerolog.Logger, cfg ConsumerConfig) *Consumer {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Consumer{
		conn:     conn,
		logger:   logger,
		queue:    cfg.Queue,
		handler:  cfg.Handler,
		prefetch: prefetch,
	}
}

// Start consumes until the context is cancelled, surviving broker
// reconnects.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		deliveries, err := c.setupConsume()
		if err != nil {
			c.logger.Error().Err(err).Str("queue", c.queue).Msg("failed to setup consume")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.conn.ReconnectNotify():
				c.logger.Info().Str("queue", c.queue).Msg("reconnected, restarting consumer")
				continue
			}
		}

		c.logger.Info().Str("queue", c.queue).Msg("consumer started")

		if err := c.processDeliveries(ctx, deliveries); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn().Str("queue", c.queue).Msg("deliveries channel closed, reconnecting")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.conn.ReconnectNotify():
				continue
			}
		}
	}
}

func (c *Consumer) setupConsume() (<-chan amqp.Delivery, error) {
	ch := c.conn.Channel()
	if ch == nil {
		return nil, fmt.Errorf("no channel available")
	}

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(
		c.queue, // queue
		"",      // consumer tag (auto-generated)
		false,   // auto-ack (acks are manual)
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume: %w", err)
	}

	return deliveries, nil
}

func (c *Consumer) processDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("deliveries channel closed")
			}
			c.handleDelivery(ctx, raw)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, raw amqp.Delivery) {
	var msg Message
	if err := json.Unmarshal(raw.Body, &msg); err != nil {
		c.logger.Error().
			Err(err).
			Str("queue", c.queue).
			Str("body", string(raw.Body)).
			Msg("failed to unmarshal message")
		// Poison message, dead-letter it.
		raw.Nack(false, false)
		return
	}

	d := &Delivery{
		Message: msg,
		Attempt: DeliveryAttempt(raw),
		Raw:     raw,
	}

	c.logger.Debug().
		Str("queue", c.queue).
		Str("message_id", msg.ID).
		Str("job", msg.Name).
		Int("attempt", d.Attempt).
		Msg("received message")

	if err := c.handler(ctx, d); err != nil {
		c.logger.Error().
			Err(err).
			Str("queue", c.queue).
			Str("message_id", msg.ID).
			Str("job", msg.Name).
			Msg("handler failed")
	}
}
