package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	UserServiceName    = "meeting.v1.UserService"
	MeetingServiceName = "meeting.v1.MeetingService"
)

const (
	UserService_Register_FullMethodName   = "/meeting.v1.UserService/Register"
	UserService_Login_FullMethodName      = "/meeting.v1.UserService/Login"
	UserService_Logout_FullMethodName     = "/meeting.v1.UserService/Logout"
	UserService_GetProfile_FullMethodName = "/meeting.v1.UserService/GetProfile"

	MeetingService_CreateMeeting_FullMethodName = "/meeting.v1.MeetingService/CreateMeeting"
	MeetingService_GetMeeting_FullMethodName    = "/meeting.v1.MeetingService/GetMeeting"
	MeetingService_JoinMeeting_FullMethodName   = "/meeting.v1.MeetingService/JoinMeeting"
	MeetingService_LeaveMeeting_FullMethodName  = "/meeting.v1.MeetingService/LeaveMeeting"
	MeetingService_EndMeeting_FullMethodName    = "/meeting.v1.MeetingService/EndMeeting"
)

// UserServiceServer is the server API for meeting.v1.UserService.
type UserServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
}

// UnimplementedUserServiceServer answers every call with codes.Unimplemented.
type UnimplementedUserServiceServer struct{}

func (UnimplementedUserServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedUserServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedUserServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedUserServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserService_ServiceDesc, srv)
}

var UserService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: UserServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(UserService_Register_FullMethodName, UserServiceServer.Register)},
		{MethodName: "Login", Handler: unary(UserService_Login_FullMethodName, UserServiceServer.Login)},
		{MethodName: "Logout", Handler: unary(UserService_Logout_FullMethodName, UserServiceServer.Logout)},
		{MethodName: "GetProfile", Handler: unary(UserService_GetProfile_FullMethodName, UserServiceServer.GetProfile)},
	},
	Streams: []grpc.StreamDesc{},
}

// MeetingServiceServer is the server API for meeting.v1.MeetingService.
type MeetingServiceServer interface {
	CreateMeeting(context.Context, *CreateMeetingRequest) (*CreateMeetingResponse, error)
	GetMeeting(context.Context, *GetMeetingRequest) (*GetMeetingResponse, error)
	JoinMeeting(context.Context, *JoinMeetingRequest) (*JoinMeetingResponse, error)
	LeaveMeeting(context.Context, *LeaveMeetingRequest) (*LeaveMeetingResponse, error)
	EndMeeting(context.Context, *EndMeetingRequest) (*EndMeetingResponse, error)
}

// UnimplementedMeetingServiceServer answers every call with codes.Unimplemented.
type UnimplementedMeetingServiceServer struct{}

func (UnimplementedMeetingServiceServer) CreateMeeting(context.Context, *CreateMeetingRequest) (*CreateMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) GetMeeting(context.Context, *GetMeetingRequest) (*GetMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) JoinMeeting(context.Context, *JoinMeetingRequest) (*JoinMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) LeaveMeeting(context.Context, *LeaveMeetingRequest) (*LeaveMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LeaveMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) EndMeeting(context.Context, *EndMeetingRequest) (*EndMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EndMeeting not implemented")
}

func RegisterMeetingServiceServer(s grpc.ServiceRegistrar, srv MeetingServiceServer) {
	s.RegisterService(&MeetingService_ServiceDesc, srv)
}

var MeetingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MeetingServiceName,
	HandlerType: (*MeetingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateMeeting", Handler: unary(MeetingService_CreateMeeting_FullMethodName, MeetingServiceServer.CreateMeeting)},
		{MethodName: "GetMeeting", Handler: unary(MeetingService_GetMeeting_FullMethodName, MeetingServiceServer.GetMeeting)},
		{MethodName: "JoinMeeting", Handler: unary(MeetingService_JoinMeeting_FullMethodName, MeetingServiceServer.JoinMeeting)},
		{MethodName: "LeaveMeeting", Handler: unary(MeetingService_LeaveMeeting_FullMethodName, MeetingServiceServer.LeaveMeeting)},
		{MethodName: "EndMeeting", Handler: unary(MeetingService_EndMeeting_FullMethodName, MeetingServiceServer.EndMeeting)},
	},
	Streams: []grpc.StreamDesc{},
}

// unary adapts a typed service method to grpc.MethodHandler.
func unary[S, Req, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UserServiceClient is the client API for meeting.v1.UserService.
type UserServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
}

type userServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserServiceClient(cc grpc.ClientConnInterface) UserServiceClient {
	return &userServiceClient{cc}
}

func (c *userServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, UserService_Register_FullMethodName, in, opts)
}

func (c *userServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, UserService_Login_FullMethodName, in, opts)
}

func (c *userServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, UserService_Logout_FullMethodName, in, opts)
}

func (c *userServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, UserService_GetProfile_FullMethodName, in, opts)
}

// MeetingServiceClient is the client API for meeting.v1.MeetingService.
type MeetingServiceClient interface {
	CreateMeeting(ctx context.Context, in *CreateMeetingRequest, opts ...grpc.CallOption) (*CreateMeetingResponse, error)
	GetMeeting(ctx context.Context, in *GetMeetingRequest, opts ...grpc.CallOption) (*GetMeetingResponse, error)
	JoinMeeting(ctx context.Context, in *JoinMeetingRequest, opts ...grpc.CallOption) (*JoinMeetingResponse, error)
	LeaveMeeting(ctx context.Context, in *LeaveMeetingRequest, opts ...grpc.CallOption) (*LeaveMeetingResponse, error)
	EndMeeting(ctx context.Context, in *EndMeetingRequest, opts ...grpc.CallOption) (*EndMeetingResponse, error)
}

type meetingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMeetingServiceClient(cc grpc.ClientConnInterface) MeetingServiceClient {
	return &meetingServiceClient{cc}
}

func (c *meetingServiceClient) CreateMeeting(ctx context.Context, in *CreateMeetingRequest, opts ...grpc.CallOption) (*CreateMeetingResponse, error) {
	return invoke[CreateMeetingResponse](ctx, c.cc, MeetingService_CreateMeeting_FullMethodName, in, opts)
}

func (c *meetingServiceClient) GetMeeting(ctx context.Context, in *GetMeetingRequest, opts ...grpc.CallOption) (*GetMeetingResponse, error) {
	return invoke[GetMeetingResponse](ctx, c.cc, MeetingService_GetMeeting_FullMethodName, in, opts)
}

func (c *meetingServiceClient) JoinMeeting(ctx context.Context, in *JoinMeetingRequest, opts ...grpc.CallOption) (*JoinMeetingResponse, error) {
	return invoke[JoinMeetingResponse](ctx, c.cc, MeetingService_JoinMeeting_FullMethodName, in, opts)
}

func (c *meetingServiceClient) LeaveMeeting(ctx context.Context, in *LeaveMeetingRequest, opts ...grpc.CallOption) (*LeaveMeetingResponse, error) {
	return invoke[LeaveMeetingResponse](ctx, c.cc, MeetingService_LeaveMeeting_FullMethodName, in, opts)
}

func (c *meetingServiceClient) EndMeeting(ctx context.Context, in *EndMeetingRequest, opts ...grpc.CallOption) (*EndMeetingResponse, error) {
	return invoke[EndMeetingResponse](ctx, c.cc, MeetingService_EndMeeting_FullMethodName, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
