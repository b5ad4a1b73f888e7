package meetings

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	m := sampleMeeting()

	require.NoError(t, repo.Create(ctx, m))
	require.ErrorIs(t, repo.Create(ctx, m), common.ErrorAlreadyExists)

	dupCode := sampleMeeting()
	dupCode.ID = "m-2"
	require.ErrorIs(t, repo.Create(ctx, dupCode), common.ErrorAlreadyExists)

	byCode, err := repo.GetByCode(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "m-1", byCode.ID)

	host := &models.Participant{MeetingID: "m-1", UserID: "u-host", Role: models.RoleHost, JoinedAt: t0}
	require.NoError(t, repo.AddParticipant(ctx, host))
	require.ErrorIs(t, repo.AddParticipant(ctx, host), common.ErrAlreadyJoined)

	ep := &models.Endpoint{IP: "127.0.0.1", Port: 40000}
	seated := &models.Participant{MeetingID: "m-1", UserID: "u-host", ClientInfo: "desktop", JoinedAt: t0.Add(time.Minute), Endpoint: ep}
	require.NoError(t, repo.SeatParticipant(ctx, seated))
	ep.Port = 1

	got, err := repo.Get(ctx, "m-1")
	require.NoError(t, err)
	require.Len(t, got.Participants, 1)
	assert.Equal(t, 40000, got.Participants[0].Endpoint.Port)
	assert.Equal(t, "desktop", got.Participants[0].ClientInfo)
	assert.Equal(t, t0.Add(time.Minute), got.Participants[0].JoinedAt)
	assert.Equal(t, models.RoleHost, got.Participants[0].Role, "role is kept")

	got.Participants[0].Endpoint.Port = 2
	again, err := repo.Get(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, 40000, again.Participants[0].Endpoint.Port, "Get returns copies")

	require.NoError(t, repo.UpdateState(ctx, "m-1", models.MeetingActive, t0))
	require.NoError(t, repo.RemoveParticipant(ctx, "m-1", "u-host"))
	require.ErrorIs(t, repo.RemoveParticipant(ctx, "m-1", "u-host"), common.ErrParticipantNotFound)

	require.NoError(t, repo.AddParticipant(ctx, &models.Participant{MeetingID: "m-1", UserID: "a"}))
	require.NoError(t, repo.AddParticipant(ctx, &models.Participant{MeetingID: "m-1", UserID: "b"}))
	require.NoError(t, repo.ClearParticipants(ctx, "m-1"))

	got, err = repo.Get(ctx, "m-1")
	require.NoError(t, err)
	assert.Empty(t, got.Participants)
	assert.Equal(t, models.MeetingActive, got.State)
}

func TestMemoryRepository_Missing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Get(ctx, "x")
	require.ErrorIs(t, err, common.ErrMeetingNotFound)
	_, err = repo.GetByCode(ctx, "x")
	require.ErrorIs(t, err, common.ErrMeetingNotFound)
	require.ErrorIs(t, repo.UpdateState(ctx, "x", models.MeetingEnded, t0), common.ErrMeetingNotFound)
	require.ErrorIs(t, repo.AddParticipant(ctx, &models.Participant{MeetingID: "x"}), common.ErrMeetingNotFound)
	require.ErrorIs(t, repo.SeatParticipant(ctx, &models.Participant{MeetingID: "x", UserID: "u"}), common.ErrMeetingNotFound)
	require.ErrorIs(t, repo.RemoveParticipant(ctx, "x", "u"), common.ErrMeetingNotFound)
	require.ErrorIs(t, repo.ClearParticipants(ctx, "x"), common.ErrMeetingNotFound)

	require.NoError(t, repo.Create(ctx, sampleMeeting()))
	require.ErrorIs(t, repo.SeatParticipant(ctx, &models.Participant{MeetingID: "m-1", UserID: "u"}), common.ErrParticipantNotFound)
}
