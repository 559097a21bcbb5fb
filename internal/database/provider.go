package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storykeep/internal/model"
)

// DBTX is the statement surface shared by the pool, a single connection and a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (*pgxpool.Conn)(nil)
)

const pingTimeout = 5 * time.Second

// Provider hands out connections to the store.
type Provider struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect builds the pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	log := logger.Named("Database")

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.IdleTimeout > 0 {
		poolCfg.MaxConnIdleTime = cfg.IdleTimeout
	}

	log.Info("Connecting to database", zap.String("dsn", cfg.String()), zap.Int32("maxConns", poolCfg.MaxConns))
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}

	log.Info("Successfully connected to database")
	return &Provider{pool: pool, logger: log}, nil
}

// Pool exposes the pool; every statement acquires and releases its own connection.
func (p *Provider) Pool() DBTX {
	return p.pool
}

// Acquire returns one connection from the pool. The caller must Release it.
func (p *Provider) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		p.logger.Error("Failed to acquire connection", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}
	return conn, nil
}

// Hold acquires a connection dedicated to a single owner until Release.
func (p *Provider) Hold(ctx context.Context) (*Held, error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Held{conn: conn}, nil
}

func (p *Provider) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrConnectionUnavailable, err)
	}
	return nil
}

func (p *Provider) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
	p.logger.Info("Database connection closed")
}

// Held is a connection owned by one repository instance. Owners serialize
// statements with Lock/Unlock. After Release every statement fails with
// model.ErrConnectionUnavailable.
type Held struct {
	mu       sync.Mutex
	conn     *pgxpool.Conn
	released atomic.Bool
	once     sync.Once
}

var _ DBTX = (*Held)(nil)

var errReleased = fmt.Errorf("%w: connection released", model.ErrConnectionUnavailable)

func (h *Held) Lock()   { h.mu.Lock() }
func (h *Held) Unlock() { h.mu.Unlock() }

func (h *Held) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if h.released.Load() {
		return pgconn.CommandTag{}, errReleased
	}
	return h.conn.Exec(ctx, sql, arguments...)
}

func (h *Held) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if h.released.Load() {
		return nil, errReleased
	}
	return h.conn.Query(ctx, sql, args...)
}

func (h *Held) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if h.released.Load() {
		return errRow{err: errReleased}
	}
	return h.conn.QueryRow(ctx, sql, args...)
}

// Release returns the connection to the pool. Safe to call more than once.
func (h *Held) Release() {
	h.once.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.released.Store(true)
		h.conn.Release()
	})
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
