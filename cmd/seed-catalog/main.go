package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/logging"
	"github.com/tektai/ar-viewer/internal/transform"
)

// seedModel is one entry of a catalog seed file.
type seedModel struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Format      string          `yaml:"type"`
	URL         string          `yaml:"url"`
	Scale       *float64        `yaml:"scale"`
	Position    *transform.Vec3 `yaml:"position"`
	Rotation    *transform.Vec3 `yaml:"rotation"`
	Thumbnail   string          `yaml:"thumbnail"`
	Description string          `yaml:"description"`
	IsLocal     bool            `yaml:"is_local"`
}

func main() {
	file := flag.String("file", "", "YAML file with the models to upsert (defaults to the built-in gallery)")
	dryRun := flag.Bool("dry-run", false, "validate the models without writing them")
	flag.Parse()

	logger, err := logging.New("info", "console")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := initTracer(); err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	models := catalog.Defaults()
	if *file != "" {
		models, err = loadModels(*file)
		if err != nil {
			logger.Fatal("Failed to read seed file", zap.Error(err))
		}
	}
	if err := validateModels(models); err != nil {
		logger.Fatal("Validation error", zap.Error(err))
	}
	if *dryRun {
		logger.Info("Seed file is valid", zap.Int("models", len(models)))
		return
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL database")

	if err := seed(ctx, catalog.NewPostgresStore(pool), models); err != nil {
		logger.Fatal("Failed to seed catalog", zap.Error(err))
	}

	for _, m := range models {
		logger.Info("Model upserted", zap.String("id", m.ID), zap.String("name", m.Name))
	}
	logger.Info("Successfully seeded catalog", zap.Int("models", len(models)))
}

func seed(ctx context.Context, store *catalog.PostgresStore, models []catalog.Model) error {
	ctx, span := otel.Tracer("seed-catalog").Start(ctx, "seed_catalog")
	defer span.End()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	return store.Upsert(ctx, models)
}

func loadModels(path string) ([]catalog.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []seedModel
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	models := make([]catalog.Model, 0, len(entries))
	for _, e := range entries {
		models = append(models, catalog.Model{
			ID:          e.ID,
			Name:        e.Name,
			Format:      catalog.Format(strings.ToLower(e.Format)),
			URL:         e.URL,
			Scale:       e.Scale,
			Position:    e.Position,
			Rotation:    e.Rotation,
			Thumbnail:   e.Thumbnail,
			Description: e.Description,
			IsLocal:     e.IsLocal,
		})
	}
	return models, nil
}

// validateModels rejects entries the viewer could not load.
func validateModels(models []catalog.Model) error {
	var errs []error
	seen := make(map[string]bool, len(models))
	for i, m := range models {
		switch {
		case strings.TrimSpace(m.ID) == "":
			errs = append(errs, fmt.Errorf("model %d: id is required", i))
			continue
		case seen[m.ID]:
			errs = append(errs, fmt.Errorf("model %s: duplicate id", m.ID))
		}
		seen[m.ID] = true
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Errorf("model %s: name is required", m.ID))
		}
		if !m.Format.Valid() {
			errs = append(errs, fmt.Errorf("model %s: unsupported type %q", m.ID, m.Format))
		}
		if m.URL == "" {
			errs = append(errs, fmt.Errorf("model %s: url is required", m.ID))
		}
		if m.Scale != nil && *m.Scale <= 0 {
			errs = append(errs, fmt.Errorf("model %s: scale must be positive", m.ID))
		}
	}
	return errors.Join(errs...)
}

// initTracer initializes OpenTelemetry tracing
func initTracer() error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)

	return nil
}
