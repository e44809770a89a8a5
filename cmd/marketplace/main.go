package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/assoumso/au-djassa/api/routes"
	"github.com/assoumso/au-djassa/internal/assistant"
	"github.com/assoumso/au-djassa/internal/checkout"
	"github.com/assoumso/au-djassa/internal/reports"
	"github.com/assoumso/au-djassa/internal/session"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/internal/syncer"
	"github.com/assoumso/au-djassa/pkg/config"
	"github.com/assoumso/au-djassa/pkg/docstore"
	"github.com/assoumso/au-djassa/pkg/genai"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/metrics"
	"github.com/assoumso/au-djassa/pkg/models"
)

// engineOrderCreator adapts the sync engine to the checkout flow. Order
// creation never fails: a rejected remote write lands in local state instead.
type engineOrderCreator struct {
	engine *syncer.Engine
}

func (c engineOrderCreator) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	created, _ := c.engine.CreateOrder(ctx, order)
	return created, nil
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "marketplace"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "marketplace",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	syncMetrics := metrics.NewSyncMetrics(registry)

	// A dead document store is not fatal. The engine degrades to the seed
	// datasets and keeps every write local.
	var remote syncer.Remote
	var subscribe syncer.SubscribeFunc
	storeClient, err := docstore.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "document store unreachable, falling back to local data")
	} else {
		remote = storeClient
		subscribe = func(ctx context.Context, collection string) (syncer.Subscription, error) {
			return storeClient.Subscribe(ctx, collection)
		}
		defer func() {
			if err := storeClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing document store", err)
			}
		}()
	}

	appState := state.New()
	engine := syncer.New(remote, subscribe, appState, logg, syncMetrics)
	engine.Start(ctx)
	defer func() {
		if err := engine.Close(); err != nil {
			logg.Error(context.Background(), "error closing sync engine", err)
		}
	}()

	sessions := session.NewManager(appState, engine, logg)
	checkouts := checkout.NewRegistry(
		engineOrderCreator{engine: engine},
		checkout.WithDismissDelay(cfg.Checkout.SuccessDismissDelay),
	)
	overview := reports.NewBuilder(appState)

	var generator assistant.TextGenerator
	if cfg.Assistant.APIKey != "" {
		opts := []genai.Option{genai.WithModel(cfg.Assistant.Model)}
		if cfg.Assistant.BaseURL != "" {
			opts = append(opts, genai.WithBaseURL(cfg.Assistant.BaseURL))
		}
		client, err := genai.NewClient(cfg.Assistant.APIKey, opts...)
		if err != nil {
			logg.Error(ctx, "failed to build generative client", err)
			os.Exit(1)
		}
		generator = client
	} else {
		logg.Warn(ctx, "no generative api key configured, assistant features disabled")
	}
	assistantSvc := assistant.NewService(generator, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting marketplace server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, appState, engine, sessions, checkouts, overview, assistantSvc, registry),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(runCtx, "marketplace server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "error shutting down server", err)
		}
	}

	logg.Info(runCtx, "marketplace shut down gracefully")
}
