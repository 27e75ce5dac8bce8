package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"beauty-dashboard/internal/config"
	"beauty-dashboard/internal/generator"
	"beauty-dashboard/internal/middleware"
	"beauty-dashboard/internal/observability"
	"beauty-dashboard/internal/server"
	"beauty-dashboard/internal/services"
	"beauty-dashboard/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	csvLoadTimeout = 30 * time.Second
	cacheMaxAge    = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// ensureDataset generates the orders CSV when it is absent. A generation
// failure is fatal; the dashboard has nothing to serve without the file.
func ensureDataset(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	if _, err := os.Stat(cfg.Data.CSVFile); err == nil {
		return nil
	}

	logger.Info("orders dataset missing, generating", "path", cfg.Data.CSVFile)
	summary, err := generator.Generate(generator.Config{
		Count:      cfg.Data.Orders,
		Seed:       cfg.Data.Seed,
		Start:      cfg.Data.Start,
		End:        cfg.Data.End,
		OutputPath: cfg.Data.CSVFile,
	}, logger)
	if err != nil {
		return err
	}

	metrics.OrdersGenerated.Add(float64(summary.Orders))
	metrics.GenerationSeconds.Set(summary.Elapsed.Seconds())
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	metrics := observability.NewMetrics()

	if err := ensureDataset(cfg, logger, metrics); err != nil {
		logger.Error("failed to generate orders dataset", "error", err)
		os.Exit(1)
	}

	analytics := services.NewAnalytics()
	ctx, cancel := context.WithTimeout(context.Background(), csvLoadTimeout)
	defer cancel()

	start := time.Now()
	if err := analytics.LoadFromCSV(ctx, cfg.Data.CSVFile); err != nil {
		logger.Error("failed to load orders CSV", "error", err)
		os.Exit(1)
	}
	duration := time.Since(start)
	logger.Info("orders CSV loaded successfully", "duration", duration)

	metrics.RecordsLoaded.Set(float64(analytics.RecordCount()))
	metrics.DatasetLoadSeconds.Set(duration.Seconds())

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(analytics, logger, metrics, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.Metrics(metrics),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down analytics service")
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
