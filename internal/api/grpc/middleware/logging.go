package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twofactor-server/internal/logger"
)

// Logging is an interceptor pair that logs gRPC calls and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	l.started(ctx, info.FullMethod, start)

	resp, err := handler(ctx, req)

	l.finished(info.FullMethod, time.Since(start), err)
	return resp, err
}

// HandleGRPCStream is the streaming counterpart of HandleGRPC. The health
// Watch call is the only stream the server exposes.
func (l *Logging) HandleGRPCStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	l.started(ss.Context(), info.FullMethod, start)

	err := handler(srv, ss)

	l.finished(info.FullMethod, time.Since(start), err)
	return err
}

func (l *Logging) started(ctx context.Context, method string, start time.Time) {
	remote := "unknown"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		remote = p.Addr.String()
	}

	l.logger.Info("gRPC request started",
		"method", method,
		"peer", remote,
		"start_time", start.Format(time.RFC3339))
}

func (l *Logging) finished(method string, duration time.Duration, err error) {
	code := statusCode(err)

	l.logger.Info("gRPC request completed",
		"method", method,
		"duration_ms", duration.Milliseconds(),
		"status", code.String())

	if err != nil {
		l.logger.Error("gRPC request failed",
			"method", method,
			"error", err.Error(),
			"status", code.String())
	}
}

func statusCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}
