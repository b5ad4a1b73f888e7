package api

import (
	"fmt"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Error is the envelope every response carries. Code 0 means success.
type Error struct {
	Code    common.Code `json:"code"`
	Message string      `json:"message,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Code, e.Message)
}

// Err returns nil for a successful envelope and the envelope itself otherwise.
func (e *Error) Err() error {
	if e == nil || e.Code == common.CodeOK {
		return nil
	}
	return e
}

// Envelope is embedded into every response message.
type Envelope struct {
	Error Error `json:"error"`
}

func (e *Envelope) GetError() *Error { return &e.Error }

// Enveloped is implemented by every response message.
type Enveloped interface {
	GetError() *Error
}

// TokenBearer is implemented by requests that carry a session token.
type TokenBearer interface {
	GetSessionToken() string
}

type User struct {
	ID          string                 `json:"id"`
	UserName    string                 `json:"user_name"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"display_name"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	LastLoginAt *timestamppb.Timestamp `json:"last_login_at,omitempty"`
}

type Endpoint struct {
	IP     string `json:"ip"`
	Port   int    `json:"port"`
	Region string `json:"region,omitempty"`
}

type Participant struct {
	UserID     string                 `json:"user_id"`
	Role       string                 `json:"role"`
	ClientInfo string                 `json:"client_info,omitempty"`
	JoinedAt   *timestamppb.Timestamp `json:"joined_at,omitempty"`
	Endpoint   *Endpoint              `json:"endpoint,omitempty"`
}

type Meeting struct {
	ID             string                 `json:"meeting_id"`
	Code           string                 `json:"meeting_code"`
	Topic          string                 `json:"topic"`
	HostID         string                 `json:"host_id"`
	ScheduledStart *timestamppb.Timestamp `json:"scheduled_start,omitempty"`
	State          string                 `json:"state"`
	Participants   []Participant          `json:"participants"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt      *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type RegisterRequest struct {
	UserName    string `json:"user_name"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

type RegisterResponse struct {
	Envelope
	User *User `json:"user,omitempty"`
}

type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Envelope
	SessionToken string `json:"session_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

type LogoutRequest struct {
	SessionToken string `json:"session_token"`
}

func (r *LogoutRequest) GetSessionToken() string { return r.SessionToken }

type LogoutResponse struct {
	Envelope
}

type GetProfileRequest struct {
	SessionToken string `json:"session_token"`
}

func (r *GetProfileRequest) GetSessionToken() string { return r.SessionToken }

type GetProfileResponse struct {
	Envelope
	User *User `json:"user,omitempty"`
}

type CreateMeetingRequest struct {
	SessionToken   string                 `json:"session_token"`
	Topic          string                 `json:"topic"`
	ScheduledStart *timestamppb.Timestamp `json:"scheduled_start"`
}

func (r *CreateMeetingRequest) GetSessionToken() string { return r.SessionToken }

type CreateMeetingResponse struct {
	Envelope
	Meeting *Meeting `json:"meeting,omitempty"`
}

// GetMeetingRequest addresses a meeting by id or join code.
type GetMeetingRequest struct {
	SessionToken string `json:"session_token"`
	MeetingID    string `json:"meeting_id"`
}

func (r *GetMeetingRequest) GetSessionToken() string { return r.SessionToken }

type GetMeetingResponse struct {
	Envelope
	Meeting *Meeting `json:"meeting,omitempty"`
}

type JoinMeetingRequest struct {
	SessionToken string `json:"session_token"`
	MeetingID    string `json:"meeting_id"`
	ClientInfo   string `json:"client_info,omitempty"`
}

func (r *JoinMeetingRequest) GetSessionToken() string { return r.SessionToken }

type JoinMeetingResponse struct {
	Envelope
	Meeting  *Meeting  `json:"meeting,omitempty"`
	Endpoint *Endpoint `json:"endpoint,omitempty"`
}

type LeaveMeetingRequest struct {
	SessionToken string `json:"session_token"`
	MeetingID    string `json:"meeting_id"`
}

func (r *LeaveMeetingRequest) GetSessionToken() string { return r.SessionToken }

type LeaveMeetingResponse struct {
	Envelope
}

type EndMeetingRequest struct {
	SessionToken string `json:"session_token"`
	MeetingID    string `json:"meeting_id"`
}

func (r *EndMeetingRequest) GetSessionToken() string { return r.SessionToken }

type EndMeetingResponse struct {
	Envelope
}
