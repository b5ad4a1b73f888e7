package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/api"
)

// Client is the set of meetingd operations available to callers.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, userName, password, email, displayName string) (*api.User, error)
	Login(ctx context.Context, userName, password string) (string, *api.User, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*api.User, error)
	CreateMeeting(ctx context.Context, token, topic string, scheduledStart time.Time) (*api.Meeting, error)
	GetMeeting(ctx context.Context, token, meetingID string) (*api.Meeting, error)
	JoinMeeting(ctx context.Context, token, meetingID, clientInfo string) (*api.Endpoint, error)
	LeaveMeeting(ctx context.Context, token, meetingID string) error
	EndMeeting(ctx context.Context, token, meetingID string) error
}
