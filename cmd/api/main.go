package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	_ "github.com/tektai/ar-viewer/docs" // swagger docs
	"github.com/tektai/ar-viewer/internal/auth"
	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/chat"
	"github.com/tektai/ar-viewer/internal/commands"
	"github.com/tektai/ar-viewer/internal/config"
	"github.com/tektai/ar-viewer/internal/gateway"
	"github.com/tektai/ar-viewer/internal/logging"
	"github.com/tektai/ar-viewer/internal/metrics"
	"github.com/tektai/ar-viewer/internal/session"
)

// @title AR Viewer API
// @version 1.0
// @description Backend for the Tektai 3D/AR object viewer.
// @description
// @description Serves the model catalog, interprets chat messages into transform actions,
// @description and hosts viewer sessions that keep the canonical transform of the displayed object.

// @contact.name API Support
// @contact.email support@tektai.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /api

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $CONFIG_PATH)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	shutdownTracer, err := initTracer()
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	// Catalog: PostgreSQL when configured, otherwise the built-in gallery in memory.
	var store catalog.Store
	var ready gateway.ReadinessCheck
	if cfg.Database.URL != "" {
		pool, err := connectDatabase(logger, cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		pgStore := catalog.NewPostgresStore(pool)
		if err := seedCatalog(context.Background(), pgStore); err != nil {
			logger.Fatal("Failed to prepare catalog", zap.Error(err))
		}
		store = pgStore
		ready = pool.Ping
	} else {
		logger.Info("DATABASE_URL not set, using in-memory catalog")
		store = catalog.NewMemoryStore()
	}

	commandMetrics, err := metrics.NewCommandMetrics()
	if err != nil {
		logger.Fatal("Failed to create command metrics", zap.Error(err))
	}
	sessionMetrics, err := metrics.NewSessionMetrics()
	if err != nil {
		logger.Fatal("Failed to create session metrics", zap.Error(err))
	}

	// Initialize command layer
	var completer commands.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = commands.NewResponsesClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, /api/actions will reject requests")
	}
	commandService := commands.NewService(completer,
		commands.WithLogger(logger),
		commands.WithMetrics(commandMetrics),
	)

	var interpreter chat.Interpreter = commandService
	if cfg.Commands.ServiceURL != "" {
		interpreter = chat.NewCommandClient(cfg.Commands.ServiceURL)
		logger.Info("chat uses remote command service", zap.String("url", cfg.Commands.ServiceURL))
	}

	sessions := session.NewManager(store, interpreter,
		session.WithLogger(logger),
		session.WithRecorder(sessionMetrics),
	)

	var shareManager *auth.ShareManager
	if cfg.Share.Secret != "" {
		shareManager, err = auth.NewShareManager(cfg.Share.Secret, cfg.Server.PublicURL, cfg.Share.TTL)
		if err != nil {
			logger.Fatal("Failed to initialize share manager", zap.Error(err))
		}
	} else {
		logger.Warn("SHARE_SECRET not set, share links are disabled")
	}

	// Initialize gateway layer
	handler := gateway.NewHandler(commandService, store, sessions, shareManager, logger)
	stream := gateway.NewSessionStream(sessions, logger)
	router := gateway.NewRouter(handler, stream, gateway.RouterOptions{
		Logger:    logger,
		StaticDir: cfg.Server.StaticDir,
		Ready:     ready,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting AR viewer API server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown; closing the
	// sessions ends their streams.
	sessions.Close(ctx)
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracer(ctx); err != nil {
		logger.Warn("Failed to flush traces", zap.Error(err))
	}

	logger.Info("Server exited")
}

// connectDatabase opens a pool, retrying while the database starts up.
func connectDatabase(logger *zap.Logger, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	logger.Info("Connecting to PostgreSQL database...")
	attempts := max(cfg.ConnectRetries, 1)
	var pool *pgxpool.Pool
	var err error

	for i := 0; i < attempts; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.URL)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				logger.Info("Connected to PostgreSQL database")
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn("Waiting for database...",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		time.Sleep(cfg.RetryInterval)
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}

// seedCatalog creates the models table and fills an empty one with the
// built-in gallery.
func seedCatalog(ctx context.Context, store *catalog.PostgresStore) error {
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return store.Upsert(ctx, catalog.Defaults())
}

// initTracer initializes OpenTelemetry tracing
func initTracer() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
