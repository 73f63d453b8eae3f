package dberror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgQueryCanceled           = "57014"
	pgConnectionExceptionCls  = "08"
	pgInsufficientResourceCls = "53"
	pgAdminShutdownCls        = "57P"
)

// IsTransient reports whether a store error may succeed on a later attempt:
// deadlines, dropped or refused connections, an overloaded or restarting
// server. Constraint violations and SQL errors are not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgQueryCanceled ||
			strings.HasPrefix(pgErr.Code, pgConnectionExceptionCls) ||
			strings.HasPrefix(pgErr.Code, pgInsufficientResourceCls) ||
			strings.HasPrefix(pgErr.Code, pgAdminShutdownCls)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "bad connection")
}

// WithContext attaches ctx.Err() to err once ctx is done. Some drivers report a
// cancelled query with their own error, which would otherwise hide the deadline.
func WithContext(ctx context.Context, err error) error {
	if err == nil || ctx.Err() == nil || errors.Is(err, ctx.Err()) {
		return err
	}
	return fmt.Errorf("%w: %w", ctx.Err(), err)
}
