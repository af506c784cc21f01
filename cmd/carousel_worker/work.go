package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/carousel-studio/internal/blob"
	"github.com/marcus/carousel-studio/internal/config"
	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/imagegen"
	"github.com/marcus/carousel-studio/internal/llm"
	"github.com/marcus/carousel-studio/internal/pipeline"
	"github.com/marcus/carousel-studio/internal/queue"
	"github.com/marcus/carousel-studio/internal/render"
	"github.com/marcus/carousel-studio/internal/telemetry"
	"github.com/marcus/carousel-studio/internal/worker"
)

var workCommand = &cobra.Command{
	Use:   "work",
	Short: "Consume and process pipeline jobs until interrupted",
	RunE:  runWorkCmd,
}

func init() {
	rootCmd.AddCommand(workCommand)
}

func runWorkCmd(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := telemetry.NewLogger()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	conn, err := queue.NewConnection(cfg.AMQPURL, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := queue.SetupTopology(ctx, conn); err != nil {
		return err
	}

	llmClient, err := llm.NewClient(ctx, llm.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		return err
	}
	defer llmClient.Close()

	images, err := imagegen.NewGenerator(ctx, imagegen.Options{
		Provider: cfg.ImageProvider,
		APIKey:   cfg.ImageAPIKey,
		Model:    cfg.ImageModel,
		BaseURL:  cfg.ImageBaseURL,
	})
	if err != nil {
		return err
	}
	defer images.Close()

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return err
	}

	surface := render.NewSurface(cfg.ChromePath)
	defer surface.Close()

	metrics, registry := telemetry.NewMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := telemetry.Serve(cfg.MetricsAddr, registry); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	orchestrator := pipeline.NewOrchestrator(pipeline.Options{
		Store:         database,
		LLM:           llmClient,
		Images:        images,
		Blobs:         blobs,
		Renderer:      surface,
		Logger:        logger,
		Metrics:       metrics,
		ImageProvider: cfg.ImageProvider,
		ImageModel:    cfg.ImageModel,
	})

	w := worker.New(worker.Options{
		Pipeline:    orchestrator,
		Ledger:      database,
		Publisher:   queue.NewPublisher(conn, logger),
		Logger:      logger,
		Metrics:     metrics,
		Concurrency: cfg.Concurrency,
	})

	logger.Info().
		Str("llm_provider", cfg.LLMProvider).
		Str("image_provider", cfg.ImageProvider).
		Str("storage", cfg.StorageBackend).
		Msg("carousel worker starting")

	if err := w.Run(ctx, conn); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info().Msg("worker shut down")
	return nil
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.StorageBackend {
	case "supabase":
		return blob.NewSupabaseStore(cfg.StorageEndpoint, cfg.StorageToken, cfg.StorageBucket)
	case "filesystem":
		return blob.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
