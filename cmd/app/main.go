package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bloomify/cmd"
	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/generated/servers"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("⚠️ %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	swagger, err := servers.GetSwagger()
	if err != nil {
		log.Fatalf("Error loading OpenAPI document: %v", err)
	}
	if err = swagger.Validate(context.Background()); err != nil {
		log.Fatalf("Invalid OpenAPI document: %v", err)
	}

	app, err := cmd.NewCompositionRoot(cfg, logger)
	if err != nil {
		log.Fatalf("Error composing application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	if err = run(cfg, app, logger); err != nil {
		jobManager.StopAll()
		log.Fatalf("Server stopped: %v", err)
	}
	jobManager.StopAll()
}

func run(cfg cmd.Config, app *cmd.CompositionRoot, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := app.CreateRouter()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "🚀 Server running", "addr", cfg.Addr(), "patch_policy",
			order.ParsePatchPolicy(cfg.PatchStrict).String())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return app.Shutdown(shutdownCtx, e)
	})

	return g.Wait()
}
