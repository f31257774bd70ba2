// Package postgres holds the relational store: connection pool, schema
// migrations and the repository implementations for users, follows,
// questions, answers and likes.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	defaultMaxRetries     = 5
	defaultRetryDelay     = time.Second
	defaultConnectTimeout = 10 * time.Second
)

// Config captures the settings required to open the connection pool.
type Config struct {
	URL            string
	MaxConns       int32
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// Connect opens a pgx pool and verifies it with a ping. Failed attempts are
// retried with exponential backoff (RetryDelay, 2×RetryDelay, ...) until
// MaxRetries is reached or ctx is cancelled.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		pool, err := open(ctx, poolCfg, cfg.ConnectTimeout)
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("connected to postgres")
			return pool, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", cfg.MaxRetries).Msg("postgres connection attempt failed")

		if attempt == cfg.MaxRetries {
			break
		}
		delay := cfg.RetryDelay * time.Duration(1<<uint(attempt-1))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("postgres connect cancelled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("postgres connect failed after %d attempts: %w", cfg.MaxRetries, lastErr)
}

func open(ctx context.Context, cfg *pgxpool.Config, timeout time.Duration) (*pgxpool.Pool, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
