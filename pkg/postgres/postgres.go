// Package postgres opens pooled PostgreSQL connections and applies schema migrations.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultConnMaxLifetime = 30 * time.Minute
	defaultMaxIdleConns    = 5
	defaultMaxOpenConns    = 25
	defaultConnectAttempts = 3
	defaultRetryDelay      = time.Second
)

type options struct {
	connMaxIdleTime time.Duration
	connMaxLifetime time.Duration
	maxIdleConns    int
	maxOpenConns    int
	connectAttempts int
	retryDelay      time.Duration
}

type Option func(*options)

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.connMaxIdleTime = d
		}
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.connMaxLifetime = d
		}
	}
}

func WithMaxIdleConns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIdleConns = n
		}
	}
}

func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxOpenConns = n
		}
	}
}

// WithConnectRetry makes New try to reach the database up to attempts times,
// waiting delay between tries. Useful when the database starts alongside the service.
func WithConnectRetry(attempts int, delay time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.connectAttempts = attempts
		}
		if delay > 0 {
			o.retryDelay = delay
		}
	}
}

// New connects to the database through the pgx driver and configures the pool.
func New(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "postgres.New"

	o := options{
		connMaxIdleTime: defaultConnMaxIdleTime,
		connMaxLifetime: defaultConnMaxLifetime,
		maxIdleConns:    defaultMaxIdleConns,
		maxOpenConns:    defaultMaxOpenConns,
		connectAttempts: defaultConnectAttempts,
		retryDelay:      defaultRetryDelay,
	}

	for _, opt := range opts {
		opt(&o)
	}

	var (
		db  *sqlx.DB
		err error
	)

	for attempt := 1; attempt <= o.connectAttempts; attempt++ {
		db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
		if err == nil {
			break
		}

		if attempt == o.connectAttempts {
			return nil, fmt.Errorf("%s: failed to connect to database after %d attempts: %w", op, attempt, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(o.retryDelay):
		}
	}

	db.SetConnMaxIdleTime(o.connMaxIdleTime)
	db.SetConnMaxLifetime(o.connMaxLifetime)
	db.SetMaxIdleConns(o.maxIdleConns)
	db.SetMaxOpenConns(o.maxOpenConns)

	return db, nil
}
