package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nikolayk812/checkout-demo/internal/checkout"
	"github.com/nikolayk812/checkout-demo/internal/config"
	"github.com/nikolayk812/checkout-demo/internal/dispatch"
	"github.com/nikolayk812/checkout-demo/internal/httpapi"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/nikolayk812/checkout-demo/internal/session"
	"github.com/nikolayk812/checkout-demo/internal/tasks"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("checkout-service failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	rabbitConn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		return err
	}
	defer rabbitConn.Close()

	dispatcher, err := dispatch.NewRabbit(rabbitConn, tasks.SendConfirmationEmail)
	if err != nil {
		return err
	}
	defer dispatcher.Close()

	catalogRepo := repository.NewCatalog(pool)
	orderRepo := repository.NewOrder(pool)
	svc := checkout.NewService(orderRepo, catalogRepo, dispatcher, logger)
	handler := httpapi.NewHandler(session.NewStore(), catalogRepo, svc, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("checkout-service listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
