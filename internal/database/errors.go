package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"storykeep/internal/model"
)

const (
	uniqueViolation = "23505"
	// SQLSTATE class 08: connection exception
	connectionExceptionClass = "08"
)

// Classify maps a driver error from operation op into model.ErrConnectionUnavailable
// or a *model.QueryError. Nil stays nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrConnectionUnavailable) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, model.ErrConnectionUnavailable, err)
	}
	return &model.QueryError{Op: op, Err: err}
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, connectionExceptionClass)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// pgxpool reports use after Close as a plain error
	return strings.Contains(err.Error(), "closed pool")
}
