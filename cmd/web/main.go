// Command web serves the sales analytics API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salespulse/internal/analytics"
	"salespulse/internal/annotations"
	"salespulse/internal/config"
	"salespulse/internal/generator"
	"salespulse/internal/infrastructure"
	"salespulse/internal/report"
	"salespulse/internal/store"
	transport "salespulse/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if err := run(logger, cfg); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config) error {
	var st *store.Store
	if cfg.Report.InputFile != "" {
		var err error
		st, err = store.LoadCSV(cfg.Report.InputFile)
		if err != nil {
			return err
		}
		logger.Info("loaded transaction batch",
			slog.String("input", cfg.Report.InputFile),
			slog.Int("record_count", st.Len()))
	} else {
		gcfg := generator.DefaultConfig(time.Now())
		gcfg.Seed = cfg.Report.MockSeed
		gcfg.Days = cfg.Report.MockDays
		st = store.New(generator.Generate(gcfg))
		logger.Info("generated mock transaction batch",
			slog.Int64("seed", gcfg.Seed),
			slog.Int("record_count", st.Len()))
	}

	engine := analytics.NewEngine(logger)
	service := report.NewService(logger, st, engine)
	comments := annotations.NewLog()

	handler := transport.NewReportHandler(service, st, engine, comments, logger)
	router := transport.NewRouter(handler, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
