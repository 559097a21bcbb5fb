package model

import (
	"errors"
	"fmt"
)

var (
	// Storage errors
	ErrConnectionUnavailable = errors.New("database connection unavailable")
	ErrQueryFailed           = errors.New("query failed")
	ErrCreationFailed        = errors.New("creation failed, no rows affected")
	ErrNotFound              = errors.New("resource not found")
	ErrNoRowsAffected        = errors.New("no rows affected")

	// Session & authentication errors
	ErrNoActiveSession    = errors.New("no active session")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token errors
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenRevoked = errors.New("token has been revoked")

	// Input errors
	ErrInvalidStatus    = errors.New("invalid story status")
	ErrUnknownEntryKind = errors.New("unknown entry kind")
	ErrBadRequest       = errors.New("bad request")
)

// QueryError wraps a storage-level failure of a single statement.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryFailed, e.Err}
}

// Reason returns the storage message without the operation prefix.
func (e *QueryError) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
