package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/extension-registry/internal/app/models"
	"github.com/yigit/extension-registry/internal/db"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/auth"
	"github.com/yigit/extension-registry/internal/pkg/dberrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"github.com/yigit/extension-registry/internal/pkg/validation"
)

// statementBuilder is shared by every repository in this package
var statementBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository handles operations on the base 'users' table
type Repository struct {
	db db.Provider
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(provider db.Provider) *Repository {
	return &Repository{
		db: provider,
		sb: statementBuilder,
	}
}

// IDByEmail returns the id of the user registered with email
func (r *Repository) IDByEmail(ctx context.Context, email string) (int64, error) {
	var id int64
	err := db.WithConn(ctx, r.db, func(ctx context.Context, conn db.Conn) error {
		return conn.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	})
	if err != nil {
		if isNoRows(err) {
			return 0, apperrors.NewResourceNotFoundError(fmt.Sprintf("no user with email %s", email))
		}
		return 0, fmt.Errorf("error looking up email: %w", err)
	}
	return id, nil
}

// insertUser writes the base row inside tx and returns its generated id
func insertUser(ctx context.Context, tx pgx.Tx, u *models.User) (int64, error) {
	sql, args, err := statementBuilder.Insert("users").
		Columns("full_name", "email", "password_hash").
		Values(u.FullName, u.Email, u.PasswordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Warn().Err(err).Str("email", u.Email).Msg("Error inserting user row")
		return 0, dberrors.Translate(err)
	}
	return id, nil
}

// newUser builds the base row for a create, hashing the supplied password
func newUser(fullName, email, password string) (*models.User, error) {
	hash, err := auth.HashOrPlaceholder(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &models.User{FullName: fullName, Email: email, PasswordHash: hash}, nil
}

// Rules shared by the create inputs and the patches of both roles
const (
	fullNameRule = "required,notblank,min=2,max=150"
	emailRule    = "required,email,max=150"
	codeRule     = "required,notblank,max=20"
)

// patchRule pairs an optional patch value with the rule it must satisfy when present
type patchRule struct {
	name  string
	value *string
	tag   string
}

// validatePatch applies the create-time rules to the patch fields that are present
func validatePatch(rules ...patchRule) error {
	for _, r := range rules {
		if r.value == nil {
			continue
		}
		if err := validation.Field(r.name, *r.value, r.tag); err != nil {
			return err
		}
	}
	return nil
}

// userColumns collects the users-table columns of a patch
func userColumns(fullName, email, password *string) (map[string]interface{}, error) {
	cols := map[string]interface{}{}
	if fullName != nil {
		cols["full_name"] = *fullName
	}
	if email != nil {
		cols["email"] = *email
	}
	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		cols["password_hash"] = hash
	}
	return cols, nil
}

// updateTable applies cols to the row of table keyed by keyColumn inside tx. An empty
// cols map issues no statement.
func updateTable(ctx context.Context, tx pgx.Tx, table, keyColumn string, id int64, cols map[string]interface{}) error {
	if len(cols) == 0 {
		return nil
	}

	sql, args, err := statementBuilder.Update(table).
		SetMap(cols).
		Where(squirrel.Eq{keyColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", table, err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Warn().Err(err).Int64("userID", id).Str("table", table).Msg("Error updating row")
		return dberrors.Translate(err)
	}
	return nil
}

// roleExists reports whether a specialization row exists for id inside tx
func roleExists(ctx context.Context, tx pgx.Tx, table string, id int64) (bool, error) {
	sql, args, err := statementBuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"user_id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build %s exists query: %w", table, err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s existence: %w", table, err)
	}
	return exists, nil
}

// deleteUserWithRole removes the users row of id only when it carries the given
// specialization; the store cascades the delete to the specialization row.
func deleteUserWithRole(ctx context.Context, q db.Querier, table string, id int64) (int64, error) {
	sql, args, err := statementBuilder.Delete("users").
		Where(squirrel.Eq{"id": id}).
		Where(fmt.Sprintf("EXISTS (SELECT 1 FROM %s r WHERE r.user_id = users.id)", table)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, dberrors.Translate(err)
	}
	return tag.RowsAffected(), nil
}

// isNoRows reports whether err means the query matched nothing
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
