package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/extension-registry/internal/config"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// Querier is the statement surface shared by connections and transactions
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is a single acquired connection. *pgxpool.Conn satisfies it.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Provider hands out connections. The release func must always be called.
type Provider interface {
	Acquire(ctx context.Context) (Conn, func(), error)
}

// PostgresDB database connection structure
type PostgresDB struct {
	Pool           *pgxpool.Pool
	connectTimeout time.Duration
}

// NewPostgresDB creates a PostgreSQL connection pool. The pool connects lazily, so an
// unreachable server surfaces on the first Acquire instead of at startup.
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = 0
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout()

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	return &PostgresDB{Pool: pool, connectTimeout: cfg.ConnectTimeout()}, nil
}

// Acquire checks out one connection for the duration of a single operation
func (db *PostgresDB) Acquire(ctx context.Context) (Conn, func(), error) {
	acquireCtx, cancel := context.WithTimeout(ctx, db.connectTimeout)
	defer cancel()

	conn, err := db.Pool.Acquire(acquireCtx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to acquire database connection")
		return nil, func() {}, fmt.Errorf("%w: %v", apperrors.ErrConnectivity, err)
	}
	return conn, conn.Release, nil
}

// Close closing method
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// fixedProvider hands out the same connection every time and never closes it
type fixedProvider struct {
	conn Conn
}

// Fixed returns a Provider around an already-open connection. The caller keeps ownership.
func Fixed(conn Conn) Provider {
	return fixedProvider{conn: conn}
}

func (p fixedProvider) Acquire(context.Context) (Conn, func(), error) {
	if p.conn == nil {
		return nil, func() {}, apperrors.ErrConnectivity
	}
	return p.conn, func() {}, nil
}

// WithConn acquires a connection, runs fn and releases the connection whatever fn returns
func WithConn(ctx context.Context, p Provider, fn func(ctx context.Context, conn Conn) error) error {
	conn, release, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx, conn)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs a function within a transaction on conn
func WithTransaction(ctx context.Context, conn Conn, fn TransactionFn) error {
	return WithTransactionOptions(ctx, conn, pgx.TxOptions{}, fn)
}

// WithTransactionOptions runs fn within a transaction started with opts. Any error or
// panic rolls the whole transaction back.
func WithTransactionOptions(ctx context.Context, conn Conn, opts pgx.TxOptions, fn TransactionFn) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	var (
		tx  pgx.Tx
		err error
	)
	if opts == (pgx.TxOptions{}) {
		tx, err = conn.Begin(ctx)
	} else {
		tx, err = conn.BeginTx(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InTransaction acquires a connection from p and runs fn in one transaction on it
func InTransaction(ctx context.Context, p Provider, fn TransactionFn) error {
	return WithConn(ctx, p, func(ctx context.Context, conn Conn) error {
		return WithTransaction(ctx, conn, fn)
	})
}
