package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/api"
	"github.com/dmitrijs2005/meetingd/internal/common"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// identity is the outcome of authenticating a request. A failed
// authentication is carried to the handler, which reports it in the envelope.
type identity struct {
	userID string
	token  string
	err    error
}

// caller returns the authenticated identity stored by authInterceptor.
func caller(ctx context.Context) (identity, error) {
	id, ok := ctx.Value(identityKey).(identity)
	if !ok {
		return identity{}, common.ErrInvalidToken
	}
	return id, id.err
}

// sessionToken reads the token from the request message, falling back to
// request metadata.
func sessionToken(ctx context.Context, req any) string {
	if tb, ok := req.(api.TokenBearer); ok {
		if token := tb.GetSessionToken(); token != "" {
			return token
		}
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.SessionTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// authInterceptor validates the session token of every token-bearing request
// once and stores the result in the context.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := req.(api.TokenBearer); !ok {
		return handler(ctx, req)
	}

	id := identity{token: sessionToken(ctx, req)}
	id.userID, id.err = s.accounts.ValidateToken(ctx, id.token)

	return handler(context.WithValue(ctx, identityKey, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	args := []any{"method", info.FullMethod, "duration", time.Since(start)}
	if id, idErr := caller(ctx); idErr == nil {
		args = append(args, "user_id", id.userID)
	}
	if err != nil {
		s.logger.Warn(ctx, "rpc failed", append(args, "status", status.Code(err).String())...)
		return resp, err
	}
	s.logger.Info(ctx, "rpc", append(args, "code", envelopeCode(resp).String())...)
	return resp, nil
}

func (s *GRPCServer) tracingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, span := s.tracer.Start(ctx, info.FullMethod, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	resp, err := handler(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, status.Code(err).String())
		return resp, err
	}

	code := envelopeCode(resp)
	span.SetAttributes(attribute.Int("meetingd.error_code", int(code)))
	if code == common.CodeInternal {
		span.SetStatus(otelcodes.Error, code.String())
	}
	return resp, nil
}

// recoveryInterceptor turns a handler panic into codes.Internal.
func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "panic in handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
			resp, err = nil, status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}

func envelopeCode(resp any) common.Code {
	if e, ok := resp.(api.Enveloped); ok {
		return e.GetError().Code
	}
	return common.CodeOK
}
