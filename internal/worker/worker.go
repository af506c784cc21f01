// Package worker binds the pipeline to the job queue: a bounded pool of
// handlers pulls jobs from the work queue, dispatches them by name and
// applies the retry policy on fatal errors.
package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/carousel-studio/internal/queue"
	"github.com/marcus/carousel-studio/internal/telemetry"
	"github.com/marcus/carousel-studio/internal/types"
)

// Pipeline is the subset of the orchestrator the worker dispatches to.
type Pipeline interface {
	Orchestrate(ctx context.Context, carouselID uuid.UUID, progress func(pct int)) (*types.PipelineResult, error)
	HandleHires(ctx context.Context, carouselID uuid.UUID, slideIDs []uuid.UUID) error
}

// Ledger tracks queue job lifecycles with bounded retention. *db.DB
// implements it.
type Ledger interface {
	RecordQueueJobStart(ctx context.Context, messageID string, jobName string, carouselID uuid.UUID, attempt int) error
	UpdateQueueJobProgress(ctx context.Context, messageID string, pct int) error
	MarkQueueJobCompleted(ctx context.Context, messageID string) error
	MarkQueueJobFailed(ctx context.Context, messageID string, jobErr error) error
}

// DefaultConcurrency bounds the worker pool when no override is set.
const DefaultConcurrency = 3

// Worker consumes pipeline jobs and executes them concurrently up to the
// configured limit.
type Worker struct {
	pipeline    Pipeline
	ledger      Ledger
	publisher   *queue.Publisher
	logger      zerolog.Logger
	metrics     *telemetry.Metrics
	concurrency int
}

// Options configures a Worker.
type Options struct {
	Pipeline    Pipeline
	Ledger      Ledger
	Publisher   *queue.Publisher
	Logger      zerolog.Logger
	Metrics     *telemetry.Metrics
	Concurrency int
}

// New creates a Worker.
func New(opts Options) *Worker {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Worker{
		pipeline:    opts.Pipeline,
		ledger:      opts.Ledger,
		publisher:   opts.Publisher,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		concurrency: concurrency,
	}
}

// Run consumes the work queue until the context is cancelled. Prefetch
// matches the pool size, so at most `concurrency` deliveries are in
// flight at once.
func (w *Worker) Run(ctx context.Context, conn *queue.Connection) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	consumer := queue.NewConsumer(conn, w.logger, queue.ConsumerConfig{
		Queue:    queue.WorkQueue,
		Prefetch: w.concurrency,
		Handler: func(_ context.Context, d *queue.Delivery) error {
			g.Go(func() error {
				w.process(gctx, d)
				return nil
			})
			return nil
		},
	})

	w.logger.Info().Int("concurrency", w.concurrency).Msg("worker starting")

	err := consumer.Start(gctx)
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return err
}

// process executes one delivery end to end, including acknowledgement.
func (w *Worker) process(ctx context.Context, d *queue.Delivery) {
	msg := d.Message
	log := w.logger.With().
		Str("message_id", msg.ID).
		Str("job", msg.Name).
		Int("attempt", d.Attempt).
		Str("carousel_id", msg.Payload.CarouselID.String()).
		Logger()

	if err := w.ledger.RecordQueueJobStart(ctx, msg.ID, msg.Name, msg.Payload.CarouselID, d.Attempt); err != nil {
		log.Error().Err(err).Msg("failed to record job start")
	}

	jobErr := w.dispatch(ctx, msg, log)
	if jobErr == nil {
		if w.metrics != nil {
			w.metrics.JobsProcessed.WithLabelValues(msg.Name, "completed").Inc()
		}
		if err := w.ledger.MarkQueueJobCompleted(ctx, msg.ID); err != nil {
			log.Error().Err(err).Msg("failed to mark job completed")
		}
		if err := d.Ack(); err != nil {
			log.Error().Err(err).Msg("failed to ack")
		}
		log.Info().Msg("job completed")
		return
	}

	log.Error().Err(jobErr).Msg("job failed")

	if d.Attempt < queue.MaxAttempts {
		// Schedule the next attempt with backoff, then settle this
		// delivery.
		if w.metrics != nil {
			w.metrics.JobRetries.Inc()
		}
		if err := w.publisher.Retry(ctx, msg, d.Attempt+1); err != nil {
			log.Error().Err(err).Msg("failed to schedule retry, redelivering instead")
			if err := d.Nack(true); err != nil {
				log.Error().Err(err).Msg("failed to nack")
			}
			return
		}
		if err := d.Ack(); err != nil {
			log.Error().Err(err).Msg("failed to ack")
		}
		return
	}

	// Attempts exhausted: record terminally and park in the failed queue.
	if w.metrics != nil {
		w.metrics.JobsProcessed.WithLabelValues(msg.Name, "failed").Inc()
		w.metrics.JobsFailed.WithLabelValues(msg.Name).Inc()
	}
	if err := w.ledger.MarkQueueJobFailed(ctx, msg.ID, jobErr); err != nil {
		log.Error().Err(err).Msg("failed to mark job failed")
	}
	if err := w.publisher.Fail(ctx, msg, d.Attempt, jobErr); err != nil {
		log.Error().Err(err).Msg("failed to publish to failed queue")
	}
	if err := d.Ack(); err != nil {
		log.Error().Err(err).Msg("failed to ack")
	}
}

// dispatch routes a job by name.
func (w *Worker) dispatch(ctx context.Context, msg queue.Message, log zerolog.Logger) error {
	switch msg.Name {
	case queue.JobOrchestrate:
		result, err := w.pipeline.Orchestrate(ctx, msg.Payload.CarouselID, func(pct int) {
			log.Debug().Int("progress", pct).Msg("pipeline progress")
			if err := w.ledger.UpdateQueueJobProgress(ctx, msg.ID, pct); err != nil {
				log.Error().Err(err).Msg("failed to record progress")
			}
		})
		if err != nil {
			return err
		}
		if !result.Success {
			// Validation failure is a normal outcome; the job completes
			// and is not retried.
			log.Warn().Int("validation_errors", len(result.Errors)).Msg("pipeline finished with validation failure")
		}
		return nil

	case queue.JobRenderHires:
		return w.pipeline.HandleHires(ctx, msg.Payload.CarouselID, msg.Payload.SlideIDs)

	default:
		return fmt.Errorf("unknown job name: %s", msg.Name)
	}
}
