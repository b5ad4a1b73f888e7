package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/config"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/meetings"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	maxTopicLength  = 256
	maxCodeAttempts = 5
)

// MeetingService is the meeting registry: it creates meetings and answers
// lookups. Membership changes go through the ParticipantTracker.
type MeetingService struct {
	repomanager        repomanager.RepositoryManager
	tracker            *ParticipantTracker
	codeLength         int
	enrollHostOnCreate bool
	now                func() time.Time
	logger             logging.Logger
}

func NewMeetingService(m repomanager.RepositoryManager, tracker *ParticipantTracker, cfg *config.Config, logger logging.Logger) *MeetingService {
	return &MeetingService{
		repomanager:        m,
		tracker:            tracker,
		codeLength:         cfg.MeetingCodeLength,
		enrollHostOnCreate: cfg.EnrollHostOnCreate,
		now:                time.Now,
		logger:             logger.With("module", "meeting_service"),
	}
}

// CreateMeeting stores a scheduled meeting hosted by hostID. When host
// enrollment is on, the host is seated without an endpoint.
func (s *MeetingService) CreateMeeting(ctx context.Context, hostID, topic string, scheduledStart time.Time) (*models.Meeting, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is empty", common.ErrorInvalidArgument)
	}
	if len([]rune(topic)) > maxTopicLength {
		return nil, fmt.Errorf("%w: topic longer than %d characters", common.ErrorInvalidArgument, maxTopicLength)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		m, err := s.newMeeting(hostID, topic, scheduledStart)
		if err != nil {
			return nil, err
		}

		err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
			if err := tx.Meetings().Create(ctx, m); err != nil {
				return err
			}
			if !s.enrollHostOnCreate {
				return nil
			}
			return tx.Meetings().AddParticipant(ctx, &m.Participants[0])
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Debug(ctx, "meeting code collision, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error creating meeting: %w", err)
		}

		s.logger.Info(ctx, "meeting created", "meeting_id", m.ID, "host_id", hostID)
		return m, nil
	}

	return nil, fmt.Errorf("%w: could not allocate a unique meeting code", common.ErrorInternal)
}

// GetMeeting returns a snapshot of the meeting addressed by id or join code.
func (s *MeetingService) GetMeeting(ctx context.Context, ref string) (*models.Meeting, error) {
	return findMeeting(ctx, s.repomanager.Meetings(), ref)
}

// EndMeeting ends the meeting on behalf of its host.
func (s *MeetingService) EndMeeting(ctx context.Context, requesterID, ref string) error {
	return s.tracker.End(ctx, requesterID, ref)
}

func (s *MeetingService) newMeeting(hostID, topic string, scheduledStart time.Time) (*models.Meeting, error) {
	code, err := common.RandomAlphanumeric(s.codeLength)
	if err != nil {
		return nil, fmt.Errorf("%w: meeting code: %v", common.ErrorInternal, err)
	}

	now := s.now().UTC()
	m := &models.Meeting{
		ID:             uuid.NewString(),
		Code:           code,
		Topic:          topic,
		HostID:         hostID,
		ScheduledStart: scheduledStart.UTC(),
		State:          models.MeetingScheduled,
		Participants:   []models.Participant{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if s.enrollHostOnCreate {
		m.Participants = append(m.Participants, models.Participant{
			MeetingID: m.ID,
			UserID:    hostID,
			Role:      models.RoleHost,
			JoinedAt:  now,
		})
	}
	return m, nil
}

// findMeeting resolves ref as a meeting id when it parses as a UUID and as a
// join code otherwise.
func findMeeting(ctx context.Context, repo meetings.Repository, ref string) (*models.Meeting, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: meeting id is empty", common.ErrorInvalidArgument)
	}
	if _, err := uuid.Parse(ref); err == nil {
		return repo.Get(ctx, ref)
	}
	return repo.GetByCode(ctx, ref)
}
