package grpc

import (
	"time"

	"github.com/dmitrijs2005/meetingd/internal/api"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func timestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func toAPIUser(u *models.User) *api.User {
	out := &api.User{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   timestamp(u.CreatedAt),
	}
	if u.LastLoginAt != nil {
		out.LastLoginAt = timestamp(*u.LastLoginAt)
	}
	return out
}

func toAPIEndpoint(e models.Endpoint) *api.Endpoint {
	return &api.Endpoint{IP: e.IP, Port: e.Port, Region: e.Region}
}

func toAPIMeeting(m *models.Meeting) *api.Meeting {
	return &api.Meeting{
		ID:             m.ID,
		Code:           m.Code,
		Topic:          m.Topic,
		HostID:         m.HostID,
		ScheduledStart: timestamp(m.ScheduledStart),
		State:          string(m.State),
		Participants: lo.Map(m.Participants, func(p models.Participant, _ int) api.Participant {
			out := api.Participant{
				UserID:     p.UserID,
				Role:       string(p.Role),
				ClientInfo: p.ClientInfo,
				JoinedAt:   timestamp(p.JoinedAt),
			}
			if p.Endpoint != nil {
				out.Endpoint = toAPIEndpoint(*p.Endpoint)
			}
			return out
		}),
		CreatedAt: timestamp(m.CreatedAt),
		UpdatedAt: timestamp(m.UpdatedAt),
	}
}
