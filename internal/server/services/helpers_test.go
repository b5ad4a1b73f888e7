package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/config"
	"github.com/dmitrijs2005/meetingd/internal/server/endpoints"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/meetings"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.Argon2Time = 1
	cfg.Argon2MemoryKiB = 1024
	cfg.Argon2Threads = 1
	return cfg
}

// stack wires the services over in-memory repositories the way the server does.
type stack struct {
	repos     *repomanager.MemoryRepositoryManager
	allocator *endpoints.Allocator
	accounts  *AccountService
	tracker   *ParticipantTracker
	meetings  *MeetingService
}

func newStack(t *testing.T, cfg *config.Config, nodes ...endpoints.Node) *stack {
	t.Helper()
	if len(nodes) == 0 {
		nodes = []endpoints.Node{{Host: "127.0.0.1", Port: 40000, Region: "local"}}
	}
	alloc, err := endpoints.NewAllocator(nodes, logging.Nop{})
	require.NoError(t, err)

	repos := repomanager.NewMemoryRepositoryManager()
	tracker := NewParticipantTracker(repos, alloc, cfg, logging.Nop{})
	return &stack{
		repos:     repos,
		allocator: alloc,
		accounts:  NewAccountService(repos, cfg, logging.Nop{}),
		tracker:   tracker,
		meetings:  NewMeetingService(repos, tracker, cfg, logging.Nop{}),
	}
}

func (s *stack) registerAndLogin(t *testing.T, userName string) (userID, token string) {
	t.Helper()
	ctx := context.Background()
	u, err := s.accounts.Register(ctx, userName, "password123", userName+"@example.com", "")
	require.NoError(t, err)
	session, _, err := s.accounts.Login(ctx, userName, "password123")
	require.NoError(t, err)
	return u.ID, session.Token
}

func (s *stack) usedEndpoints() int {
	total := 0
	for _, l := range s.allocator.Load() {
		total += l.Used
	}
	return total
}

// stubManager serves fixed repositories and runs WithTx inline.
type stubManager struct {
	users    users.Repository
	sessions sessions.Repository
	meetings meetings.Repository
}

func (m *stubManager) Users() users.Repository             { return m.users }
func (m *stubManager) Sessions() sessions.Repository       { return m.sessions }
func (m *stubManager) Meetings() meetings.Repository       { return m.meetings }
func (m *stubManager) RunMigrations(context.Context) error { return nil }
func (m *stubManager) Close() error                        { return nil }
func (m *stubManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repomanager.RepositoryManager) error) error {
	return fn(ctx, m)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
