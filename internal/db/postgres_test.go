package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users").
			WithArgs("Ana").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err = WithTransaction(ctx, mock, func(ctx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctx, "UPDATE users SET full_name = $1", "Ana")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = WithTransaction(ctx, mock, func(ctx context.Context, tx pgx.Tx) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = WithTransaction(ctx, mock, func(ctx context.Context, tx pgx.Tx) error {
				panic("unexpected")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("read only options use BeginTx", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		opts := pgx.TxOptions{AccessMode: pgx.ReadOnly}
		mock.ExpectBeginTx(opts)
		mock.ExpectCommit()

		err = WithTransactionOptions(ctx, mock, opts, func(ctx context.Context, tx pgx.Tx) error {
			return nil
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWithConn(t *testing.T) {
	t.Run("no connection is a connectivity failure", func(t *testing.T) {
		called := false
		err := WithConn(context.Background(), Fixed(nil), func(ctx context.Context, conn Conn) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, apperrors.ErrConnectivity)
		assert.False(t, called)
	})

	t.Run("release runs after fn error", func(t *testing.T) {
		released := false
		p := releaseTracker{release: func() { released = true }}
		boom := errors.New("boom")

		err := WithConn(context.Background(), p, func(ctx context.Context, conn Conn) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.True(t, released)
	})
}

type releaseTracker struct {
	release func()
}

func (r releaseTracker) Acquire(context.Context) (Conn, func(), error) {
	return nil, r.release, nil
}
