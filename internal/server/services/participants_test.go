package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/config"
	"github.com/dmitrijs2005/meetingd/internal/server/endpoints"
	"github.com/dmitrijs2005/meetingd/internal/server/mocks"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/meetings"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/repomanager"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func createMeeting(t *testing.T, s *stack, hostID string) *models.Meeting {
	t.Helper()
	m, err := s.meetings.CreateMeeting(context.Background(), hostID, "Standup", time.Now().Add(time.Hour))
	require.NoError(t, err)
	return m
}

func participantIDs(m *models.Meeting) []string {
	return lo.Map(m.Participants, func(p models.Participant, _ int) string { return p.UserID })
}

func TestJoin_ActivatesAndAssignsEndpoint(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	guestID, _ := s.registerAndLogin(t, "bob")
	m := createMeeting(t, s, hostID)

	res, err := s.tracker.Join(ctx, guestID, m.ID, "client-x")
	require.NoError(t, err)
	assert.Equal(t, models.Endpoint{IP: "127.0.0.1", Port: 40000, Region: "local"}, res.Endpoint)
	assert.Equal(t, models.MeetingActive, res.Meeting.State)
	assert.ElementsMatch(t, []string{hostID, guestID}, participantIDs(res.Meeting))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingActive, stored.State)
	guest, ok := stored.Participant(guestID)
	require.True(t, ok)
	assert.Equal(t, models.RoleGuest, guest.Role)
	assert.Equal(t, "client-x", guest.ClientInfo)
	require.NotNil(t, guest.Endpoint)
	assert.Equal(t, 1, s.usedEndpoints())
}

func TestJoin_EnrolledHostTakesSeat(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)
	joinedAt := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	s.tracker.now = func() time.Time { return joinedAt }

	res, err := s.tracker.Join(ctx, hostID, m.Code, "desktop")
	require.NoError(t, err)
	assert.Len(t, res.Meeting.Participants, 1)

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, stored.Participants, 1)
	host := stored.Participants[0]
	assert.Equal(t, models.RoleHost, host.Role)
	require.NotNil(t, host.Endpoint)
	assert.Equal(t, "desktop", host.ClientInfo)
	assert.True(t, joinedAt.Equal(host.JoinedAt), "seat takes the join time")

	_, err = s.tracker.Join(ctx, hostID, m.ID, "desktop")
	require.ErrorIs(t, err, common.ErrAlreadyJoined)
}

func TestJoin_ClientInfoLength(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	guestID, _ := s.registerAndLogin(t, "bob")
	m := createMeeting(t, s, hostID)

	_, err := s.tracker.Join(ctx, guestID, m.ID, strings.Repeat("x", 257))
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
	assert.Equal(t, common.CodeInvalidArgument, common.CodeOf(err))
	assert.Equal(t, 0, s.usedEndpoints())

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingScheduled, stored.State)
	assert.Len(t, stored.Participants, 1)

	info := strings.Repeat("ж", 256)
	_, err = s.tracker.Join(ctx, guestID, m.ID, info)
	require.NoError(t, err)

	stored, err = s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	guest, ok := stored.Participant(guestID)
	require.True(t, ok)
	assert.Equal(t, info, guest.ClientInfo)
}

func TestJoin_AlreadyJoined(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	guestID, _ := s.registerAndLogin(t, "bob")
	m := createMeeting(t, s, hostID)

	_, err := s.tracker.Join(ctx, guestID, m.ID, "")
	require.NoError(t, err)

	_, err = s.tracker.Join(ctx, guestID, m.ID, "")
	require.ErrorIs(t, err, common.ErrAlreadyJoined)
	assert.Equal(t, common.CodeAlreadyJoined, common.CodeOf(err))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Participants, 2)
	assert.Equal(t, 1, s.usedEndpoints())
}

func TestJoin_UnknownMeeting(t *testing.T) {
	s := newStack(t, testConfig())

	_, err := s.tracker.Join(context.Background(), "u-1", "8c2b1f7e-2f4a-4a57-9d55-3f6f1f0c1a11", "")
	require.ErrorIs(t, err, common.ErrMeetingNotFound)

	_, err = s.tracker.Join(context.Background(), "u-1", "", "")
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestJoin_MeetingFull(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxParticipants = 2
	s := newStack(t, cfg)
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)

	_, err := s.tracker.Join(ctx, "guest-1", m.ID, "")
	require.NoError(t, err)

	_, err = s.tracker.Join(ctx, "guest-2", m.ID, "")
	require.ErrorIs(t, err, common.ErrMeetingFull)
	assert.Equal(t, common.CodeResourceExhausted, common.CodeOf(err))

	// the seated host still fits
	_, err = s.tracker.Join(ctx, hostID, m.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, s.usedEndpoints())
}

func TestJoin_NoCapacity(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig(), endpoints.Node{Host: "10.0.0.1", Port: 5000, Region: "eu", Capacity: 1})
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)

	_, err := s.tracker.Join(ctx, "guest-1", m.ID, "")
	require.NoError(t, err)

	_, err = s.tracker.Join(ctx, hostID, m.ID, "")
	require.ErrorIs(t, err, common.ErrNoCapacity)

	_, err = s.tracker.Join(ctx, "guest-2", m.ID, "")
	require.ErrorIs(t, err, common.ErrNoCapacity)

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{hostID, "guest-1"}, participantIDs(stored))
	host, _ := stored.Participant(hostID)
	assert.Nil(t, host.Endpoint)
}

func TestLeave(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)

	_, err := s.tracker.Join(ctx, hostID, m.ID, "")
	require.NoError(t, err)
	_, err = s.tracker.Join(ctx, "guest-1", m.ID, "")
	require.NoError(t, err)

	require.NoError(t, s.tracker.Leave(ctx, "guest-1", m.ID))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingActive, stored.State)
	assert.Equal(t, []string{hostID}, participantIDs(stored))
	assert.Equal(t, 1, s.usedEndpoints())

	err = s.tracker.Leave(ctx, "guest-1", m.ID)
	require.ErrorIs(t, err, common.ErrParticipantNotFound)
	assert.True(t, common.CodeOf(err).IsNotFound())
}

func TestLeave_NeverJoinedDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)
	_, err := s.tracker.Join(ctx, "guest-1", m.ID, "")
	require.NoError(t, err)

	before, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)

	err = s.tracker.Leave(ctx, "stranger", m.ID)
	require.ErrorIs(t, err, common.ErrParticipantNotFound)

	after, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, s.usedEndpoints())
}

func TestLeave_LastParticipantEndsMeeting(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)
	_, err := s.tracker.Join(ctx, "guest-1", m.ID, "")
	require.NoError(t, err)

	require.NoError(t, s.tracker.Leave(ctx, hostID, m.ID))
	require.NoError(t, s.tracker.Leave(ctx, "guest-1", m.ID))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingEnded, stored.State)
	assert.Empty(t, stored.Participants)
	assert.Equal(t, 0, s.usedEndpoints())

	_, err = s.tracker.Join(ctx, "guest-1", m.ID, "")
	require.ErrorIs(t, err, common.ErrMeetingEnded)
	assert.Equal(t, common.CodeMeetingEnded, common.CodeOf(err))
}

func TestLeave_KeepsEmptyMeetingWhenConfigured(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.EndWhenEmpty = false
	s := newStack(t, cfg)
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)

	_, err := s.tracker.Join(ctx, hostID, m.ID, "")
	require.NoError(t, err)
	require.NoError(t, s.tracker.Leave(ctx, hostID, m.ID))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingActive, stored.State)
	assert.Empty(t, stored.Participants)

	_, err = s.tracker.Join(ctx, hostID, m.ID, "")
	require.NoError(t, err, "host may rejoin a meeting that never ended")
}

func TestLeave_HostLeavingEndsMeeting(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.EndWhenHostLeaves = true
	s := newStack(t, cfg)
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)

	for _, uid := range []string{hostID, "guest-1", "guest-2"} {
		_, err := s.tracker.Join(ctx, uid, m.ID, "")
		require.NoError(t, err)
	}
	require.Equal(t, 3, s.usedEndpoints())

	require.NoError(t, s.tracker.Leave(ctx, hostID, m.ID))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingEnded, stored.State)
	assert.Empty(t, stored.Participants)
	assert.Equal(t, 0, s.usedEndpoints())

	err = s.tracker.Leave(ctx, "guest-1", m.ID)
	require.ErrorIs(t, err, common.ErrParticipantNotFound)
}

func TestEnd(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)
	for _, uid := range []string{hostID, "guest-1"} {
		_, err := s.tracker.Join(ctx, uid, m.ID, "")
		require.NoError(t, err)
	}

	err := s.meetings.EndMeeting(ctx, "guest-1", m.ID)
	require.ErrorIs(t, err, common.ErrPermissionDenied)
	assert.Equal(t, common.CodePermissionDenied, common.CodeOf(err))
	assert.Equal(t, 2, s.usedEndpoints())

	require.NoError(t, s.meetings.EndMeeting(ctx, hostID, m.Code))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingEnded, stored.State)
	assert.Empty(t, stored.Participants)
	assert.Equal(t, 0, s.usedEndpoints())

	err = s.meetings.EndMeeting(ctx, hostID, m.ID)
	require.ErrorIs(t, err, common.ErrMeetingEnded)
}

func TestEnd_ScheduledMeeting(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	m := createMeeting(t, s, hostID)

	require.NoError(t, s.meetings.EndMeeting(ctx, hostID, m.ID))

	_, err := s.tracker.Join(ctx, hostID, m.ID, "")
	require.ErrorIs(t, err, common.ErrMeetingEnded)
}

func TestJoin_CommitFailureReleasesEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMeetingsRepository(ctrl)
	alloc := mocks.NewMockEndpointAllocator(ctrl)

	m := &models.Meeting{ID: "8c2b1f7e-2f4a-4a57-9d55-3f6f1f0c1a11", Code: "ABCD1234", HostID: "host", State: models.MeetingActive}
	ep := models.Endpoint{IP: "10.0.0.1", Port: 5000, Region: "eu"}

	repo.EXPECT().Get(gomock.Any(), m.ID).Return(m.Clone(), nil).Times(2)
	alloc.EXPECT().Assign(m.ID, "guest").Return(ep, nil)
	repo.EXPECT().AddParticipant(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	alloc.EXPECT().Release(m.ID, "guest")

	tr := NewParticipantTracker(&stubManager{meetings: repo}, alloc, testConfig(), logging.Nop{})

	_, err := tr.Join(context.Background(), "guest", m.ID, "")
	require.Error(t, err)
	assert.Equal(t, common.CodeInternal, common.CodeOf(err))
}

func TestJoin_SeatedHostStoresClientInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMeetingsRepository(ctrl)
	alloc := mocks.NewMockEndpointAllocator(ctrl)

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	joined := created.Add(10 * time.Minute)
	m := &models.Meeting{
		ID: "8c2b1f7e-2f4a-4a57-9d55-3f6f1f0c1a11", Code: "ABCD1234", HostID: "host", State: models.MeetingActive,
		Participants: []models.Participant{{
			MeetingID: "8c2b1f7e-2f4a-4a57-9d55-3f6f1f0c1a11", UserID: "host", Role: models.RoleHost, JoinedAt: created,
		}},
	}
	ep := models.Endpoint{IP: "10.0.0.1", Port: 5000, Region: "eu"}

	repo.EXPECT().Get(gomock.Any(), m.ID).Return(m.Clone(), nil).Times(2)
	alloc.EXPECT().Assign(m.ID, "host").Return(ep, nil)
	repo.EXPECT().SeatParticipant(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *models.Participant) error {
		assert.Equal(t, "host", p.UserID)
		assert.Equal(t, models.RoleHost, p.Role)
		assert.Equal(t, "laptop", p.ClientInfo)
		assert.True(t, joined.Equal(p.JoinedAt))
		require.NotNil(t, p.Endpoint)
		assert.Equal(t, ep, *p.Endpoint)
		return nil
	})

	tr := NewParticipantTracker(&stubManager{meetings: repo}, alloc, testConfig(), logging.Nop{})
	tr.now = func() time.Time { return joined }

	res, err := tr.Join(context.Background(), "host", m.ID, "laptop")
	require.NoError(t, err)
	require.Len(t, res.Meeting.Participants, 1)
	assert.Equal(t, "laptop", res.Meeting.Participants[0].ClientInfo)
}

func TestJoin_CancelledBeforeCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMeetingsRepository(ctrl)
	alloc := mocks.NewMockEndpointAllocator(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &models.Meeting{ID: "8c2b1f7e-2f4a-4a57-9d55-3f6f1f0c1a11", Code: "ABCD1234", HostID: "host", State: models.MeetingScheduled}

	repo.EXPECT().Get(gomock.Any(), m.ID).Return(m.Clone(), nil).Times(2)
	alloc.EXPECT().Assign(m.ID, "guest").DoAndReturn(func(string, string) (models.Endpoint, error) {
		cancel()
		return models.Endpoint{IP: "10.0.0.1", Port: 5000}, nil
	})
	alloc.EXPECT().Release(m.ID, "guest")

	tr := NewParticipantTracker(&stubManager{meetings: repo}, alloc, testConfig(), logging.Nop{})

	_, err := tr.Join(ctx, "guest", m.ID, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestLeave_CommitFailureKeepsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMeetingsRepository(ctrl)
	alloc := mocks.NewMockEndpointAllocator(ctrl)

	m := &models.Meeting{
		ID:     "8c2b1f7e-2f4a-4a57-9d55-3f6f1f0c1a11",
		HostID: "host",
		State:  models.MeetingActive,
		Participants: []models.Participant{
			{UserID: "host", Role: models.RoleHost},
			{UserID: "guest", Role: models.RoleGuest, Endpoint: &models.Endpoint{IP: "10.0.0.1", Port: 5000}},
		},
	}

	repo.EXPECT().Get(gomock.Any(), m.ID).Return(m.Clone(), nil).Times(2)
	repo.EXPECT().RemoveParticipant(gomock.Any(), m.ID, "guest").Return(errors.New("connection reset"))

	tr := NewParticipantTracker(&stubManager{meetings: repo}, alloc, testConfig(), logging.Nop{})

	err := tr.Leave(context.Background(), "guest", m.ID)
	require.Error(t, err)
}

// countingMeetings records how often a meeting is moved to Active.
type countingMeetings struct {
	meetings.Repository
	activations atomic.Int32
}

func (c *countingMeetings) UpdateState(ctx context.Context, id string, state models.MeetingState, at time.Time) error {
	if state == models.MeetingActive {
		c.activations.Add(1)
	}
	return c.Repository.UpdateState(ctx, id, state, at)
}

func newCountingTracker(t *testing.T, cfg *config.Config) (*ParticipantTracker, *countingMeetings, *endpoints.Allocator) {
	t.Helper()
	repos := repomanager.NewMemoryRepositoryManager()
	counting := &countingMeetings{Repository: repos.Meetings()}
	alloc, err := endpoints.NewAllocator([]endpoints.Node{
		{Host: "10.0.0.1", Port: 5000, Region: "eu"},
		{Host: "10.0.0.2", Port: 5000, Region: "us"},
	}, logging.Nop{})
	require.NoError(t, err)

	mgr := &stubManager{users: repos.Users(), sessions: repos.Sessions(), meetings: counting}
	return NewParticipantTracker(mgr, alloc, cfg, logging.Nop{}), counting, alloc
}

func TestJoin_ConcurrentDistinctUsers(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.EnrollHostOnCreate = false
	tr, counting, alloc := newCountingTracker(t, cfg)

	svc := NewMeetingService(&stubManager{meetings: counting}, tr, cfg, logging.Nop{})
	m, err := svc.CreateMeeting(ctx, "host", "Standup", time.Now())
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tr.Join(ctx, fmt.Sprintf("user-%d", i), m.ID, "")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := counting.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Participants, n)
	assert.Len(t, lo.Uniq(participantIDs(stored)), n)
	assert.Equal(t, models.MeetingActive, stored.State)
	assert.Equal(t, int32(1), counting.activations.Load())

	used := lo.SumBy(alloc.Load(), func(l endpoints.NodeLoad) int { return l.Used })
	assert.Equal(t, n, used)
	assert.Equal(t, 0, tr.locks.size())
}

func TestJoin_ConcurrentOverCap(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.EnrollHostOnCreate = false
	cfg.MaxParticipants = 10
	tr, counting, alloc := newCountingTracker(t, cfg)

	svc := NewMeetingService(&stubManager{meetings: counting}, tr, cfg, logging.Nop{})
	m, err := svc.CreateMeeting(ctx, "host", "Standup", time.Now())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var ok, full atomic.Int32
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tr.Join(ctx, fmt.Sprintf("user-%d", i), m.ID, "")
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, common.ErrMeetingFull):
				full.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok.Load())
	assert.Equal(t, int32(20), full.Load())
	used := lo.SumBy(alloc.Load(), func(l endpoints.NodeLoad) int { return l.Used })
	assert.Equal(t, 10, used)
}

func TestJoinLeave_RandomInterleavings(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.EnrollHostOnCreate = false
	cfg.EndWhenEmpty = false
	tr, counting, alloc := newCountingTracker(t, cfg)

	svc := NewMeetingService(&stubManager{meetings: counting}, tr, cfg, logging.Nop{})
	m, err := svc.CreateMeeting(ctx, "host", "Standup", time.Now())
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < 200; i++ {
				uid := fmt.Sprintf("user-%d", rnd.Intn(12))
				var err error
				if rnd.Intn(2) == 0 {
					_, err = tr.Join(ctx, uid, m.ID, "")
				} else {
					err = tr.Leave(ctx, uid, m.ID)
				}
				if err != nil && !errors.Is(err, common.ErrAlreadyJoined) && !errors.Is(err, common.ErrParticipantNotFound) {
					assert.NoError(t, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	stored, err := counting.Get(ctx, m.ID)
	require.NoError(t, err)
	ids := participantIDs(stored)
	assert.Len(t, lo.Uniq(ids), len(ids), "no duplicate participants")
	for _, p := range stored.Participants {
		assert.NotNil(t, p.Endpoint)
	}

	used := lo.SumBy(alloc.Load(), func(l endpoints.NodeLoad) int { return l.Used })
	assert.Equal(t, len(ids), used, "every seated participant holds exactly one endpoint")
	assert.LessOrEqual(t, counting.activations.Load(), int32(1))
}

func TestUnrelatedMeetingsDoNotContend(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())
	hostID, _ := s.registerAndLogin(t, "alice")
	first := createMeeting(t, s, hostID)
	second := createMeeting(t, s, hostID)

	unlock, err := s.tracker.locks.Lock(ctx, first.ID)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err = s.tracker.Join(ctx, "guest-1", second.ID, "")
	require.NoError(t, err)

	blocked, cancelBlocked := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelBlocked()
	_, err = s.tracker.Join(blocked, "guest-1", first.ID, "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScenario_HostAndGuest(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, testConfig())

	hostID, t1 := s.registerAndLogin(t, "host_1700000000_1234")
	require.NotEmpty(t, t1)

	m, err := s.meetings.CreateMeeting(ctx, hostID, "Integration Test Meeting", time.Now().Add(time.Hour))
	require.NoError(t, err)

	guestID, t2 := s.registerAndLogin(t, "guest_1700000000_5678")
	uid, err := s.accounts.ValidateToken(ctx, t2)
	require.NoError(t, err)
	require.Equal(t, guestID, uid)

	res, err := s.tracker.Join(ctx, guestID, m.ID, "client-x")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Endpoint.IP)

	require.NoError(t, s.tracker.Leave(ctx, guestID, m.ID))

	err = s.tracker.Leave(ctx, guestID, m.ID)
	require.Error(t, err)
	assert.True(t, common.CodeOf(err).IsNotFound())

	require.NoError(t, s.tracker.Leave(ctx, hostID, m.ID))

	stored, err := s.meetings.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingEnded, stored.State)
	assert.Equal(t, 0, s.usedEndpoints())
}
