// Package repomanager bundles the repositories behind one handle and
// decides which backend (memory or PostgreSQL) serves them.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/meetingd/internal/server/repositories/meetings"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to the current connection.
// Inside WithTx the manager passed to fn is bound to the transaction.
type RepositoryManager interface {
	Users() users.Repository
	Sessions() sessions.Repository
	Meetings() meetings.Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, tx RepositoryManager) error) error
	RunMigrations(ctx context.Context) error
	Close() error
}

// Option customizes a manager at construction.
type Option func(*options)

type options struct {
	sessions sessions.Repository
}

// WithSessionRepository replaces the backend's own session store, e.g. with
// a Badger-backed one.
func WithSessionRepository(r sessions.Repository) Option {
	return func(o *options) { o.sessions = r }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
