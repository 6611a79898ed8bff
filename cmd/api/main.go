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

	"eventify/config"
	"eventify/docs"
	"eventify/internal/adapters/email"
	httpdelivery "eventify/internal/delivery/http"
	"eventify/internal/delivery/http/controllers"
	"eventify/internal/domain"
	"eventify/internal/repository"
	"eventify/internal/services"
)

// @title Eventify API
// @version 1.0
// @description CRUD API for meetup events backed by a document store.
// @host localhost:3000
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error("startup failed", "err", err)
		if errors.Is(err, domain.ErrConnection) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := repository.Open(ctx, repository.Options{
		URL:      cfg.DBUrl,
		Database: cfg.DBName,
		Timeout:  cfg.ConnectTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := gateway.Close(closeCtx); err != nil {
			logger.Error("failed to close database", "err", err)
		}
	}()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	var announcer domain.EventAnnouncer
	if len(cfg.Email.Recipients) > 0 {
		announcer = services.NewEmailService(mailer, email.NewTemplateRenderer(), cfg.Email.Recipients, logger)
	}

	eventService := services.NewEventService(gateway.Events, announcer, logger, cfg.RequestTimeout)
	eventController := controllers.NewEventController(logger, eventService)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpdelivery.NewRouter(logger, cfg.AllowedOrigins, eventController),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "backend", gateway.Backend, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
