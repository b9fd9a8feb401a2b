package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
)

// SQLSTATE codes the directory cares about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeUndefinedTable      = "42P01"
	codeUndefinedColumn     = "42703"
	codeInvalidCatalog      = "3D000"
)

// translate maps a store error onto the apperr taxonomy.
// onForeignKey is the sentinel to use for 23503; it differs between writes
// (missing parent row) and deletes (row still referenced).
func translate(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
		case codeForeignKeyViolation:
			if onForeignKey != nil {
				return fmt.Errorf("%w: %w", onForeignKey, err)
			}
		case codeUndefinedTable, codeUndefinedColumn, codeInvalidCatalog:
			return fmt.Errorf("%w: %w", apperr.ErrSetupIncomplete, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", apperr.ErrStoreUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", apperr.ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", apperr.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("db error: %w", err)
}
