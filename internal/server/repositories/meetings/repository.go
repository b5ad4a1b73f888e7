//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../../mocks/mock_meetings_repository.go -package=mocks -mock_names=Repository=MockMeetingsRepository

// Package meetings stores meetings and their participant sets.
package meetings

import (
	"context"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

// Repository persists meetings. Missing meetings yield
// common.ErrMeetingNotFound, missing participants common.ErrParticipantNotFound.
//
// Create stores the meeting row only; participants are added with
// AddParticipant. SeatParticipant rewrites the client info, join time and
// endpoint of an existing participant; its role is left as stored. Callers serialize mutations of one meeting.
type Repository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Get(ctx context.Context, id string) (*models.Meeting, error)
	GetByCode(ctx context.Context, code string) (*models.Meeting, error)
	UpdateState(ctx context.Context, id string, state models.MeetingState, at time.Time) error
	AddParticipant(ctx context.Context, p *models.Participant) error
	SeatParticipant(ctx context.Context, p *models.Participant) error
	RemoveParticipant(ctx context.Context, meetingID, userID string) error
	ClearParticipants(ctx context.Context, meetingID string) error
}
