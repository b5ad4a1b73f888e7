package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/config"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/repomanager"
)

// maxClientInfoLength matches meeting_participants.client_info.
const maxClientInfoLength = 256

//go:generate go run go.uber.org/mock/mockgen -source=participants.go -destination=../mocks/mock_endpoint_allocator.go -package=mocks -mock_names=EndpointAllocator=MockEndpointAllocator

// EndpointAllocator hands out media endpoints. Implementations must not block.
type EndpointAllocator interface {
	Assign(meetingID, userID string) (models.Endpoint, error)
	Release(meetingID, userID string)
	ReleaseMeeting(meetingID string) int
}

// TeardownPolicy decides when a meeting ends on its own.
type TeardownPolicy struct {
	// EndWhenEmpty ends the meeting once the last participant leaves.
	EndWhenEmpty bool
	// EndWhenHostLeaves ends the meeting as soon as the host leaves.
	EndWhenHostLeaves bool
}

// JoinResult is what a successful join hands back.
type JoinResult struct {
	Meeting  *models.Meeting
	Endpoint models.Endpoint
}

// ParticipantTracker owns meeting membership. Every mutation of one meeting
// runs under that meeting's lock; lock order is meeting lock, then the
// allocator, then the repositories.
type ParticipantTracker struct {
	repomanager     repomanager.RepositoryManager
	allocator       EndpointAllocator
	locks           *keyLock
	maxParticipants int
	policy          TeardownPolicy
	now             func() time.Time
	logger          logging.Logger
}

func NewParticipantTracker(m repomanager.RepositoryManager, allocator EndpointAllocator, cfg *config.Config, logger logging.Logger) *ParticipantTracker {
	return &ParticipantTracker{
		repomanager:     m,
		allocator:       allocator,
		locks:           newKeyLock(),
		maxParticipants: cfg.MaxParticipants,
		policy: TeardownPolicy{
			EndWhenEmpty:      cfg.EndWhenEmpty,
			EndWhenHostLeaves: cfg.EndWhenHostLeaves,
		},
		now:    time.Now,
		logger: logger.With("module", "participant_tracker"),
	}
}

// Join seats userID in the meeting and assigns a media endpoint. The first
// successful join of a scheduled meeting activates it. A host seated at
// creation joins into the existing seat.
func (t *ParticipantTracker) Join(ctx context.Context, userID, ref, clientInfo string) (*JoinResult, error) {
	if n := utf8.RuneCountInString(clientInfo); n > maxClientInfoLength {
		return nil, fmt.Errorf("%w: client info longer than %d characters", common.ErrorInvalidArgument, maxClientInfoLength)
	}

	m, unlock, err := t.lockMeeting(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if m.State == models.MeetingEnded {
		return nil, common.ErrMeetingEnded
	}

	seat, seated := m.Participant(userID)
	if seated && seat.Endpoint != nil {
		t.logger.Debug(ctx, "join rejected, already joined", "meeting_id", m.ID, "user_id", userID)
		return nil, common.ErrAlreadyJoined
	}
	if !seated && len(m.Participants) >= t.maxParticipants {
		t.logger.Debug(ctx, "join rejected, meeting full", "meeting_id", m.ID, "user_id", userID)
		return nil, common.ErrMeetingFull
	}

	ep, err := t.allocator.Assign(m.ID, userID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		t.allocator.Release(m.ID, userID)
		return nil, err
	}

	now := t.now().UTC()
	activate := m.State == models.MeetingScheduled
	participant := models.Participant{
		MeetingID:  m.ID,
		UserID:     userID,
		Role:       models.RoleGuest,
		ClientInfo: clientInfo,
		JoinedAt:   now,
		Endpoint:   &ep,
	}
	if userID == m.HostID {
		participant.Role = models.RoleHost
	}

	err = t.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		if activate {
			if err := tx.Meetings().UpdateState(ctx, m.ID, models.MeetingActive, now); err != nil {
				return err
			}
		}
		if seated {
			return tx.Meetings().SeatParticipant(ctx, &participant)
		}
		return tx.Meetings().AddParticipant(ctx, &participant)
	})
	if err != nil {
		t.allocator.Release(m.ID, userID)
		return nil, fmt.Errorf("error committing join: %w", err)
	}

	if activate {
		m.State = models.MeetingActive
		m.UpdatedAt = now
		t.logger.Info(ctx, "meeting activated", "meeting_id", m.ID)
	}
	if seated {
		*seat = participant
	} else {
		m.Participants = append(m.Participants, participant)
	}

	t.logger.Debug(ctx, "participant joined", "meeting_id", m.ID, "user_id", userID, "endpoint", ep.String())
	return &JoinResult{Meeting: m, Endpoint: ep}, nil
}

// Leave removes userID from the meeting, releases its endpoint and applies
// the teardown policy.
func (t *ParticipantTracker) Leave(ctx context.Context, userID, ref string) error {
	m, unlock, err := t.lockMeeting(ctx, ref)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := m.Participant(userID); !ok {
		t.logger.Debug(ctx, "leave rejected, not a participant", "meeting_id", m.ID, "user_id", userID)
		return common.ErrParticipantNotFound
	}

	remaining := len(m.Participants) - 1
	end := m.State != models.MeetingEnded &&
		((t.policy.EndWhenEmpty && remaining == 0) ||
			(t.policy.EndWhenHostLeaves && userID == m.HostID))

	now := t.now().UTC()
	err = t.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		if err := tx.Meetings().RemoveParticipant(ctx, m.ID, userID); err != nil {
			return err
		}
		if !end {
			return nil
		}
		return t.endTx(ctx, tx, m.ID, now)
	})
	if err != nil {
		return fmt.Errorf("error committing leave: %w", err)
	}

	t.allocator.Release(m.ID, userID)
	if end {
		released := t.allocator.ReleaseMeeting(m.ID)
		t.logger.Info(ctx, "meeting ended", "meeting_id", m.ID, "reason", "teardown", "released", released)
	}
	return nil
}

// End terminates the meeting on behalf of its host and releases every
// endpoint still assigned in it.
func (t *ParticipantTracker) End(ctx context.Context, requesterID, ref string) error {
	m, unlock, err := t.lockMeeting(ctx, ref)
	if err != nil {
		return err
	}
	defer unlock()

	if m.HostID != requesterID {
		return common.ErrPermissionDenied
	}
	if m.State == models.MeetingEnded {
		return common.ErrMeetingEnded
	}

	now := t.now().UTC()
	err = t.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		return t.endTx(ctx, tx, m.ID, now)
	})
	if err != nil {
		return fmt.Errorf("error ending meeting: %w", err)
	}

	released := t.allocator.ReleaseMeeting(m.ID)
	t.logger.Info(ctx, "meeting ended", "meeting_id", m.ID, "reason", "host", "released", released)
	return nil
}

func (t *ParticipantTracker) endTx(ctx context.Context, tx repomanager.RepositoryManager, meetingID string, now time.Time) error {
	if err := tx.Meetings().ClearParticipants(ctx, meetingID); err != nil {
		return err
	}
	return tx.Meetings().UpdateState(ctx, meetingID, models.MeetingEnded, now)
}

// lockMeeting resolves ref, takes the meeting lock and re-reads the meeting
// under it.
func (t *ParticipantTracker) lockMeeting(ctx context.Context, ref string) (*models.Meeting, func(), error) {
	found, err := findMeeting(ctx, t.repomanager.Meetings(), ref)
	if err != nil {
		return nil, nil, err
	}

	unlock, err := t.locks.Lock(ctx, found.ID)
	if err != nil {
		return nil, nil, err
	}

	m, err := t.repomanager.Meetings().Get(ctx, found.ID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return m, unlock, nil
}
