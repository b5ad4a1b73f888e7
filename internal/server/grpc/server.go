// Package grpc exposes the account and meeting services over gRPC. Every
// response carries an error envelope; application errors never surface as
// gRPC status codes.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/api"
	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/dmitrijs2005/meetingd/internal/server/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AccountService is what the facade needs from the account store and
// session manager.
type AccountService interface {
	Register(ctx context.Context, userName, password, email, displayName string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (*models.Session, *models.User, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

type MeetingService interface {
	CreateMeeting(ctx context.Context, hostID, topic string, scheduledStart time.Time) (*models.Meeting, error)
	GetMeeting(ctx context.Context, ref string) (*models.Meeting, error)
	EndMeeting(ctx context.Context, requesterID, ref string) error
}

type ParticipantTracker interface {
	Join(ctx context.Context, userID, ref, clientInfo string) (*services.JoinResult, error)
	Leave(ctx context.Context, userID, ref string) error
}

type GRPCServer struct {
	api.UnimplementedUserServiceServer
	api.UnimplementedMeetingServiceServer
	address  string
	accounts AccountService
	meetings MeetingService
	tracker  ParticipantTracker
	health   *health.Server
	tracer   trace.Tracer
	logger   logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, accounts AccountService, meetings MeetingService, tracker ParticipantTracker) *GRPCServer {
	return &GRPCServer{
		address:  address,
		accounts: accounts,
		meetings: meetings,
		tracker:  tracker,
		health:   health.NewServer(),
		tracer:   otel.Tracer(common.ServiceName + "/grpc"),
		logger:   l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.recoveryInterceptor,
		s.tracingInterceptor,
		s.authInterceptor,
		s.loggingInterceptor,
	))

	api.RegisterUserServiceServer(srv, s)
	api.RegisterMeetingServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.UserServiceName, healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(api.MeetingServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
