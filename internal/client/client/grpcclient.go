package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	users       api.UserServiceClient
	meetings    api.MeetingServiceClient
	health      healthpb.HealthClient
}

var _ Client = (*GRPCClient)(nil)

// NewGRPCClient connects to a meetingd server. Extra dial options are
// appended after the default insecure transport credentials.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{
		endpointURL: endpointURL,
		conn:        conn,
		users:       api.NewUserServiceClient(conn),
		meetings:    api.NewMeetingServiceClient(conn),
		health:      healthpb.NewHealthClient(conn),
	}, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Ping reports whether the server answers its health check as serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, userName, password, email, displayName string) (*api.User, error) {
	req := &api.RegisterRequest{UserName: userName, Password: password, Email: email, DisplayName: displayName}

	resp, err := s.users.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login returns the session token and the logged-in user.
func (s *GRPCClient) Login(ctx context.Context, userName, password string) (string, *api.User, error) {
	resp, err := s.users.Login(ctx, &api.LoginRequest{UserName: userName, Password: password})
	if err != nil {
		return "", nil, s.mapError(err)
	}
	if err := resp.Error.Err(); err != nil {
		return "", nil, err
	}
	return resp.SessionToken, resp.User, nil
}

func (s *GRPCClient) Logout(ctx context.Context, token string) error {
	resp, err := s.users.Logout(ctx, &api.LogoutRequest{SessionToken: token})
	if err != nil {
		return s.mapError(err)
	}
	return resp.Error.Err()
}

func (s *GRPCClient) GetProfile(ctx context.Context, token string) (*api.User, error) {
	resp, err := s.users.GetProfile(ctx, &api.GetProfileRequest{SessionToken: token})
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *GRPCClient) CreateMeeting(ctx context.Context, token, topic string, scheduledStart time.Time) (*api.Meeting, error) {
	req := &api.CreateMeetingRequest{SessionToken: token, Topic: topic, ScheduledStart: timestamppb.New(scheduledStart)}

	resp, err := s.meetings.CreateMeeting(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Meeting, nil
}

func (s *GRPCClient) GetMeeting(ctx context.Context, token, meetingID string) (*api.Meeting, error) {
	resp, err := s.meetings.GetMeeting(ctx, &api.GetMeetingRequest{SessionToken: token, MeetingID: meetingID})
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Meeting, nil
}

func (s *GRPCClient) JoinMeeting(ctx context.Context, token, meetingID, clientInfo string) (*api.Endpoint, error) {
	req := &api.JoinMeetingRequest{SessionToken: token, MeetingID: meetingID, ClientInfo: clientInfo}

	resp, err := s.meetings.JoinMeeting(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Endpoint, nil
}

func (s *GRPCClient) LeaveMeeting(ctx context.Context, token, meetingID string) error {
	resp, err := s.meetings.LeaveMeeting(ctx, &api.LeaveMeetingRequest{SessionToken: token, MeetingID: meetingID})
	if err != nil {
		return s.mapError(err)
	}
	return resp.Error.Err()
}

func (s *GRPCClient) EndMeeting(ctx context.Context, token, meetingID string) error {
	resp, err := s.meetings.EndMeeting(ctx, &api.EndMeetingRequest{SessionToken: token, MeetingID: meetingID})
	if err != nil {
		return s.mapError(err)
	}
	return resp.Error.Err()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
