package meetings

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	meetings map[string]*models.Meeting
	byCode   map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		meetings: make(map[string]*models.Meeting),
		byCode:   make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, m *models.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meetings[m.ID]; ok {
		return common.ErrorAlreadyExists
	}
	if _, ok := r.byCode[m.Code]; ok {
		return common.ErrorAlreadyExists
	}

	stored := m.Clone()
	stored.Participants = nil
	r.meetings[m.ID] = stored
	r.byCode[m.Code] = m.ID
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.meetings[id]
	if !ok {
		return nil, common.ErrMeetingNotFound
	}
	return m.Clone(), nil
}

func (r *MemoryRepository) GetByCode(ctx context.Context, code string) (*models.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return nil, common.ErrMeetingNotFound
	}
	return r.meetings[id].Clone(), nil
}

func (r *MemoryRepository) UpdateState(ctx context.Context, id string, state models.MeetingState, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[id]
	if !ok {
		return common.ErrMeetingNotFound
	}
	m.State = state
	m.UpdatedAt = at
	return nil
}

func (r *MemoryRepository) AddParticipant(ctx context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[p.MeetingID]
	if !ok {
		return common.ErrMeetingNotFound
	}
	if _, exists := m.Participant(p.UserID); exists {
		return common.ErrAlreadyJoined
	}

	stored := *p
	if p.Endpoint != nil {
		ep := *p.Endpoint
		stored.Endpoint = &ep
	}
	m.Participants = append(m.Participants, stored)
	return nil
}

func (r *MemoryRepository) SeatParticipant(ctx context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[p.MeetingID]
	if !ok {
		return common.ErrMeetingNotFound
	}
	seat, exists := m.Participant(p.UserID)
	if !exists {
		return common.ErrParticipantNotFound
	}
	seat.ClientInfo = p.ClientInfo
	seat.JoinedAt = p.JoinedAt
	seat.Endpoint = nil
	if p.Endpoint != nil {
		ep := *p.Endpoint
		seat.Endpoint = &ep
	}
	return nil
}

func (r *MemoryRepository) RemoveParticipant(ctx context.Context, meetingID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[meetingID]
	if !ok {
		return common.ErrMeetingNotFound
	}
	for i := range m.Participants {
		if m.Participants[i].UserID == userID {
			m.Participants = append(m.Participants[:i], m.Participants[i+1:]...)
			return nil
		}
	}
	return common.ErrParticipantNotFound
}

func (r *MemoryRepository) ClearParticipants(ctx context.Context, meetingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[meetingID]
	if !ok {
		return common.ErrMeetingNotFound
	}
	m.Participants = nil
	return nil
}
