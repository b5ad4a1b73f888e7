package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/meetingd/internal/api"
	"github.com/dmitrijs2005/meetingd/internal/common"
)

// envelope packages a service error. Internal errors are logged and their
// details withheld from the client.
func (s *GRPCServer) envelope(ctx context.Context, err error) api.Error {
	code := common.CodeOf(err)
	switch code {
	case common.CodeOK:
		return api.Error{}
	case common.CodeInternal:
		s.logger.Error(ctx, "internal error", "error", err)
		return api.Error{Code: code, Message: common.ErrorInternal.Error()}
	}
	return api.Error{Code: code, Message: err.Error()}
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	resp := &api.RegisterResponse{}

	user, err := s.accounts.Register(ctx, req.UserName, req.Password, req.Email, req.DisplayName)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	resp.User = toAPIUser(user)
	return resp, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	resp := &api.LoginResponse{}

	session, user, err := s.accounts.Login(ctx, req.UserName, req.Password)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	resp.SessionToken = session.Token
	resp.User = toAPIUser(user)
	return resp, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {
	resp := &api.LogoutResponse{}

	id, err := caller(ctx)
	if err == nil {
		err = s.accounts.Logout(ctx, id.token)
	}
	resp.Error = s.envelope(ctx, err)
	return resp, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.GetProfileResponse, error) {
	resp := &api.GetProfileResponse{}

	id, err := caller(ctx)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	user, err := s.accounts.GetProfile(ctx, id.userID)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	resp.User = toAPIUser(user)
	return resp, nil
}

func (s *GRPCServer) CreateMeeting(ctx context.Context, req *api.CreateMeetingRequest) (*api.CreateMeetingResponse, error) {
	resp := &api.CreateMeetingResponse{}

	id, err := caller(ctx)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	if req.ScheduledStart == nil {
		resp.Error = s.envelope(ctx, fmt.Errorf("%w: scheduled_start is required", common.ErrorInvalidArgument))
		return resp, nil
	}
	if err := req.ScheduledStart.CheckValid(); err != nil {
		resp.Error = s.envelope(ctx, fmt.Errorf("%w: scheduled_start: %v", common.ErrorInvalidArgument, err))
		return resp, nil
	}

	m, err := s.meetings.CreateMeeting(ctx, id.userID, req.Topic, req.ScheduledStart.AsTime())
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	resp.Meeting = toAPIMeeting(m)
	return resp, nil
}

func (s *GRPCServer) GetMeeting(ctx context.Context, req *api.GetMeetingRequest) (*api.GetMeetingResponse, error) {
	resp := &api.GetMeetingResponse{}

	if _, err := caller(ctx); err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	m, err := s.meetings.GetMeeting(ctx, req.MeetingID)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	resp.Meeting = toAPIMeeting(m)
	return resp, nil
}

func (s *GRPCServer) JoinMeeting(ctx context.Context, req *api.JoinMeetingRequest) (*api.JoinMeetingResponse, error) {
	resp := &api.JoinMeetingResponse{}

	id, err := caller(ctx)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	res, err := s.tracker.Join(ctx, id.userID, req.MeetingID, req.ClientInfo)
	if err != nil {
		resp.Error = s.envelope(ctx, err)
		return resp, nil
	}

	resp.Meeting = toAPIMeeting(res.Meeting)
	resp.Endpoint = toAPIEndpoint(res.Endpoint)
	return resp, nil
}

func (s *GRPCServer) LeaveMeeting(ctx context.Context, req *api.LeaveMeetingRequest) (*api.LeaveMeetingResponse, error) {
	resp := &api.LeaveMeetingResponse{}

	id, err := caller(ctx)
	if err == nil {
		err = s.tracker.Leave(ctx, id.userID, req.MeetingID)
	}
	resp.Error = s.envelope(ctx, err)
	return resp, nil
}

func (s *GRPCServer) EndMeeting(ctx context.Context, req *api.EndMeetingRequest) (*api.EndMeetingResponse, error) {
	resp := &api.EndMeetingResponse{}

	id, err := caller(ctx)
	if err == nil {
		err = s.meetings.EndMeeting(ctx, id.userID, req.MeetingID)
	}
	resp.Error = s.envelope(ctx, err)
	return resp, nil
}
