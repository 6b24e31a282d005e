// Package database provides PostgreSQL connection and schema management.
package database

import (
	"context"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultDatabaseName is used when neither the URL nor DATABASE_NAME names a database.
const DefaultDatabaseName = "money_manager"

type options struct {
	databaseName string
	tracing      bool
}

// Option configures Connect.
type Option func(*options)

// WithDatabaseName overrides the database named in the connection URL.
// An empty name keeps the URL's choice.
func WithDatabaseName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.databaseName = name
		}
	}
}

// WithTracing attaches an OpenTelemetry query tracer to every pooled connection.
func WithTracing() Option {
	return func(o *options) {
		o.tracing = true
	}
}

// Connect establishes a connection pool to the PostgreSQL database.
func Connect(ctx context.Context, databaseURL string, opts ...Option) (*pgxpool.Pool, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	if o.databaseName != "" {
		cfg.ConnConfig.Database = o.databaseName
	}
	if cfg.ConnConfig.Database == "" {
		cfg.ConnConfig.Database = DefaultDatabaseName
	}

	if o.tracing {
		cfg.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}
