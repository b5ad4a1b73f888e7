package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/dmitrijs2005/meetingd/internal/server/services"
)

// ---- fakes ----

type fakeAccounts struct {
	tokens map[string]string // token -> user id

	regResp *models.User
	regErr  error

	session  *models.Session
	user     *models.User
	loginErr error

	logoutToken string
	logoutErr   error

	profileErr error
}

func (f *fakeAccounts) Register(ctx context.Context, userName, password, email, displayName string) (*models.User, error) {
	return f.regResp, f.regErr
}
func (f *fakeAccounts) Login(ctx context.Context, userName, password string) (*models.Session, *models.User, error) {
	return f.session, f.user, f.loginErr
}
func (f *fakeAccounts) ValidateToken(ctx context.Context, token string) (string, error) {
	if uid, ok := f.tokens[token]; ok {
		return uid, nil
	}
	return "", errInvalid
}
func (f *fakeAccounts) Logout(ctx context.Context, token string) error {
	f.logoutToken = token
	return f.logoutErr
}
func (f *fakeAccounts) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &models.User{ID: userID, UserName: "alice"}, nil
}

type fakeMeetings struct {
	created     *models.Meeting
	createErr   error
	lastHost    string
	lastStart   time.Time
	endErr      error
	lastEndUser string
}

func (f *fakeMeetings) CreateMeeting(ctx context.Context, hostID, topic string, scheduledStart time.Time) (*models.Meeting, error) {
	f.lastHost, f.lastStart = hostID, scheduledStart
	return f.created, f.createErr
}
func (f *fakeMeetings) GetMeeting(ctx context.Context, ref string) (*models.Meeting, error) {
	return f.created, f.createErr
}
func (f *fakeMeetings) EndMeeting(ctx context.Context, requesterID, ref string) error {
	f.lastEndUser = requesterID
	return f.endErr
}

type fakeTracker struct {
	res      *services.JoinResult
	joinErr  error
	leaveErr error
}

func (f *fakeTracker) Join(ctx context.Context, userID, ref, clientInfo string) (*services.JoinResult, error) {
	return f.res, f.joinErr
}
func (f *fakeTracker) Leave(ctx context.Context, userID, ref string) error {
	return f.leaveErr
}

func newFakeServer(a *fakeAccounts, m *fakeMeetings, tr *fakeTracker) *GRPCServer {
	if a == nil {
		a = &fakeAccounts{}
	}
	if m == nil {
		m = &fakeMeetings{}
	}
	if tr == nil {
		tr = &fakeTracker{}
	}
	return NewGRPCServer("127.0.0.1:0", logging.Nop{}, a, m, tr)
}
