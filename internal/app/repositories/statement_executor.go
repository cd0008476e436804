package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/dberrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// StatementExecutor runs SQL text that did not come from this program, such as
// statements produced by the assistant. Every statement is logged before it runs.
type StatementExecutor struct {
	db       db.Provider
	readOnly bool
}

// NewStatementExecutor creates a statement executor. With readOnly set every statement
// runs in a read-only transaction, so mutations are rejected by the server.
func NewStatementExecutor(provider db.Provider, readOnly bool) *StatementExecutor {
	return &StatementExecutor{db: provider, readOnly: readOnly}
}

// ReadOnly reports whether statements run in read-only transactions
func (e *StatementExecutor) ReadOnly() bool {
	return e.readOnly
}

// Execute runs one statement inside its own transaction. The transaction commits when
// the statement succeeds and the connection is released in every case. A failed
// statement still returns a result carrying the statement and its request id.
func (e *StatementExecutor) Execute(ctx context.Context, statement string) (*models.QueryResult, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return nil, apperrors.NewValidationError("statement is empty")
	}

	result := &models.QueryResult{
		RequestID: uuid.NewString(),
		Statement: statement,
	}
	lgr := logger.WithField("requestID", result.RequestID)
	lgr.Info().
		Bool("readOnly", e.readOnly).
		Str("statement", statement).
		Msg("Executing generated statement")

	opts := pgx.TxOptions{}
	if e.readOnly {
		opts.AccessMode = pgx.ReadOnly
	}

	err := db.WithConn(ctx, e.db, func(ctx context.Context, conn db.Conn) error {
		return db.WithTransactionOptions(ctx, conn, opts, func(ctx context.Context, tx pgx.Tx) error {
			rows, err := tx.Query(ctx, statement)
			if err != nil {
				return err
			}
			defer rows.Close()

			for _, fd := range rows.FieldDescriptions() {
				result.Columns = append(result.Columns, fd.Name)
			}
			for rows.Next() {
				values, err := rows.Values()
				if err != nil {
					return err
				}
				result.Rows = append(result.Rows, values)
			}
			if err := rows.Err(); err != nil {
				return err
			}
			rows.Close()
			result.CommandTag = rows.CommandTag().String()
			return nil
		})
	})
	if err != nil {
		lgr.Warn().Err(err).Msg("Generated statement failed")
		failed := &models.QueryResult{RequestID: result.RequestID, Statement: statement}
		return failed, fmt.Errorf("statement %s failed: %w", result.RequestID, dberrors.Translate(err))
	}

	lgr.Info().
		Int("rows", len(result.Rows)).
		Str("commandTag", result.CommandTag).
		Msg("Generated statement executed")
	return result, nil
}
