package repomanager

import (
	"context"

	"github.com/dmitrijs2005/meetingd/internal/server/repositories/meetings"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Each repository
// call is atomic on its own; WithTx does not roll back calls that already
// succeeded, so callers order writes so that later ones cannot fail.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	sessions sessions.Repository
	meetings *meetings.MemoryRepository
}

func NewMemoryRepositoryManager(opts ...Option) *MemoryRepositoryManager {
	o := buildOptions(opts)
	m := &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		sessions: o.sessions,
		meetings: meetings.NewMemoryRepository(),
	}
	if m.sessions == nil {
		m.sessions = sessions.NewMemoryRepository()
	}
	return m
}

func (m *MemoryRepositoryManager) Users() users.Repository       { return m.users }
func (m *MemoryRepositoryManager) Sessions() sessions.Repository { return m.sessions }
func (m *MemoryRepositoryManager) Meetings() meetings.Repository { return m.meetings }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx RepositoryManager) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
