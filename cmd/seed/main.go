package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	fixturePath := flag.String("fixture", "seed.yaml", "Path to the YAML board fixture")
	schemaOnly := flag.Bool("schema-only", false, "Only apply the schema, do not load the fixture")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Fixture users carry well-known passwords; keep them out of prod.
	if cfg.Environment == "prod" && !*schemaOnly {
		log.Fatalf("Refusing to load fixtures in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	logger.Info("schema applied")

	if *schemaOnly {
		return
	}

	fixture, err := seed.Load(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	seeder := seed.NewSeeder(
		postgres.NewUserRepository(pool, logger),
		postgres.NewColumnRepository(pool, logger),
		postgres.NewCardRepository(pool, logger),
		postgres.NewCommentRepository(pool, logger),
		logger,
	)
	if err := seeder.Apply(ctx, fixture); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	logger.Info("seed complete", "users", len(fixture.Users))
}
