package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/twofactor-server/internal/api/grpc/handler"
	"github.com/dtroode/twofactor-server/internal/api/grpc/middleware"
	"github.com/dtroode/twofactor-server/internal/api/grpc/twofactor"
	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
)

// Router wires the TwoFactor handler and the health service into a gRPC
// server behind the logging and authentication interceptors.
type Router struct {
	totpService      handler.TOTPService
	u2fService       handler.U2FService
	assertionService handler.AssertionService
	keyValidator     middleware.KeyValidator
	contextManager   model.ContextManager
	health           *health.Server
	logger           *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	totpService handler.TOTPService,
	u2fService handler.U2FService,
	assertionService handler.AssertionService,
	keyValidator middleware.KeyValidator,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(twofactor.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Router{
		totpService:      totpService,
		u2fService:       u2fService,
		assertionService: assertionService,
		keyValidator:     keyValidator,
		contextManager:   contextManager,
		health:           hs,
		logger:           logger,
	}
}

// authRequired reports whether a call must carry account credentials.
// Assertion checks and the grpc.* infrastructure services (health,
// reflection) are open.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	if c.FullMethod() == twofactor.TwoFactor_CheckAssertion_FullMethodName {
		return false
	}
	return !strings.HasPrefix(c.FullMethod(), "/grpc.")
}

// SetServing flips the health status of the server and the TwoFactor service.
func (r *Router) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	r.health.SetServingStatus("", st)
	r.health.SetServingStatus(twofactor.ServiceName, st)
}

// Shutdown marks every service NOT_SERVING and ends open health watches.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}

// Register builds the gRPC server and registers all services on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.keyValidator, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerTwoFactorRoutes(s)
	healthpb.RegisterHealthServer(s, r.health)

	return s
}

func (r *Router) registerTwoFactorRoutes(server *grpc.Server) {
	h := handler.NewTwoFactor(r.totpService, r.u2fService, r.assertionService, r.contextManager, r.logger)
	twofactor.RegisterTwoFactorServer(server, h)
}
