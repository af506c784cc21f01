package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/carousel-studio/internal/config"
	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/prompts"
)

var seedPromptsCommand = &cobra.Command{
	Use:   "seed-prompts",
	Short: "Write the built-in prompt templates to the database",
	Long:  "Upserts the default layout and background prompt templates and marks them active. Run once per environment, or again to reset templates to the shipped defaults.",
	RunE:  runSeedPromptsCmd,
}

func init() {
	rootCmd.AddCommand(seedPromptsCommand)
}

func runSeedPromptsCmd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	ids, err := prompts.DefaultIDs()
	if err != nil {
		return err
	}

	for _, id := range ids {
		body, err := prompts.Default(id)
		if err != nil {
			return err
		}
		if err := database.UpsertPromptTemplate(ctx, id, body); err != nil {
			return err
		}
		fmt.Printf("Seeded prompt template %s\n", id)
	}

	return nil
}
