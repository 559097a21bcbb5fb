package repository

import (
	"sync"

	"storykeep/internal/database"
)

// statementRunner is the DBTX a repository runs on, plus the lock that
// serializes statements when the connection is dedicated to it.
type statementRunner struct {
	db      database.DBTX
	mu      sync.Locker
	release func()
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

func pooled(db database.DBTX) statementRunner {
	return statementRunner{db: db, mu: noopLocker{}, release: func() {}}
}

func held(h *database.Held) statementRunner {
	return statementRunner{db: h, mu: h, release: h.Release}
}
