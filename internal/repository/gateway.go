// Package repository owns the process-wide connection to the document store.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"eventify/internal/domain"
	"eventify/internal/repository/memory"
	"eventify/internal/repository/mongodb"
	"eventify/internal/repository/postgres"
)

// Supported backends, chosen from the connection string scheme.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options configures Open.
type Options struct {
	URL string
	// Database overrides the Mongo database named in URL.
	Database string
	// Timeout bounds the single connection attempt.
	Timeout time.Duration
}

// Gateway is the explicitly constructed handle to the document store. It is created once
// at startup, shared read-only by request handlers and closed on shutdown.
type Gateway struct {
	Backend string
	Events  domain.EventRepository
	close   func(ctx context.Context) error
}

// Open makes one connection attempt. There is no retry; a failure wraps domain.ErrConnection.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Gateway, error) {
	backend, err := backendFor(opts.URL)
	if err != nil {
		logger.ErrorContext(ctx, "database connection failed", "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	log := logger.With("backend", backend, "host", redact(opts.URL), "timeout", opts.Timeout.String())

	g := &Gateway{Backend: backend}
	switch backend {
	case BackendMongo:
		client, db, cerr := mongodb.Connect(ctx, opts.URL, opts.Database, "eventify", opts.Timeout)
		if cerr != nil {
			err = cerr
			break
		}
		g.Events = mongodb.NewEventRepository(db)
		g.close = client.Disconnect
		log = log.With("database", db.Name())
	case BackendPostgres:
		db, cerr := postgres.Connect(ctx, opts.URL, opts.Timeout)
		if cerr != nil {
			err = cerr
			break
		}
		g.Events = postgres.NewEventRepository(db)
		g.close = func(context.Context) error { return db.Close() }
	case BackendMemory:
		g.Events = memory.NewEventRepository()
	}
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	log.InfoContext(ctx, "database connected")
	return g, nil
}

// Close releases the underlying connection. It is safe to call on a nil Gateway.
func (g *Gateway) Close(ctx context.Context) error {
	if g == nil || g.close == nil {
		return nil
	}
	return g.close(ctx)
}

func backendFor(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "memory":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
}

// redact returns the host part of a connection URL so credentials never reach the logs.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
