package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marcus/carousel-studio/internal/config"
	"github.com/marcus/carousel-studio/internal/queue"
	"github.com/marcus/carousel-studio/internal/telemetry"
)

var enqueueCommand = &cobra.Command{
	Use:   "enqueue",
	Short: "Enqueue a pipeline job for a carousel",
	Long:  "Publishes an orchestrate or render-hires job to the work queue. Intended for manual triggering and re-runs; the API layer normally enqueues jobs itself.",
	RunE:  runEnqueueCmd,
}

var (
	enqueueJobName  string
	enqueueCarousel string
	enqueueSlides   []string
	enqueuePriority uint8
	enqueueDelay    time.Duration
)

func init() {
	enqueueCommand.Flags().StringVarP(&enqueueJobName, "job", "j", queue.JobOrchestrate, "Job name (orchestrate or render-hires)")
	enqueueCommand.Flags().StringVarP(&enqueueCarousel, "carousel", "c", "", "Carousel ID (required)")
	enqueueCommand.Flags().StringSliceVar(&enqueueSlides, "slides", nil, "Slide IDs to restrict a render-hires job to")
	enqueueCommand.Flags().Uint8VarP(&enqueuePriority, "priority", "p", 0, fmt.Sprintf("Delivery priority, 0-%d", queue.MaxPriority))
	enqueueCommand.Flags().DurationVarP(&enqueueDelay, "delay", "d", 0, "Hold the job for this long before delivery (e.g. 30s)")
	enqueueCommand.MarkFlagRequired("carousel")

	rootCmd.AddCommand(enqueueCommand)
}

func runEnqueueCmd(_ *cobra.Command, _ []string) error {
	if enqueueJobName != queue.JobOrchestrate && enqueueJobName != queue.JobRenderHires {
		return fmt.Errorf("unknown job name %q", enqueueJobName)
	}

	carouselID, err := uuid.Parse(enqueueCarousel)
	if err != nil {
		return fmt.Errorf("invalid carousel id: %w", err)
	}

	slideIDs := make([]uuid.UUID, 0, len(enqueueSlides))
	for _, raw := range enqueueSlides {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid slide id %q: %w", raw, err)
		}
		slideIDs = append(slideIDs, id)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := telemetry.NewLogger()

	conn, err := queue.NewConnection(cfg.AMQPURL, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := queue.SetupTopology(ctx, conn); err != nil {
		return err
	}

	publisher := queue.NewPublisher(conn, logger)
	msgID, err := publisher.Enqueue(ctx, enqueueJobName,
		queue.JobPayload{CarouselID: carouselID, SlideIDs: slideIDs},
		queue.EnqueueOptions{Priority: enqueuePriority, Delay: enqueueDelay},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Enqueued %s job %s for carousel %s\n", enqueueJobName, msgID, carouselID)
	return nil
}
