package grpc_control

import (
	"context"
	"net"
	"time"

	"github.com/arbstatistix/financial-engineering/src/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// -----------------------------------------------------------------------------

type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	Logger *logger.Logger
}

// NewServer registers svc and the standard health service on a fresh
// grpc.Server.
func NewServer(svc *ConfigService, log *logger.Logger) *Server {
	s := &Server{
		Health: health.NewServer(),
		Logger: log,
	}
	s.GRPC = grpc.NewServer(grpc.UnaryInterceptor(s.logCalls))

	RegisterConfigServiceServer(s.GRPC, svc)
	healthpb.RegisterHealthServer(s.GRPC, s.Health)

	s.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.Health.SetServingStatus(ConfigServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

// -----------------------------------------------------------------------------

// Serve blocks until lis fails or Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("gRPC server listening on %s", lis.Addr())
	return s.GRPC.Serve(lis)
}

func (s *Server) Stop() {
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
}

// -----------------------------------------------------------------------------

func (s *Server) logCalls(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.Logger.Debug("gRPC %s -> %s (%s)", info.FullMethod, status.Code(err), time.Since(start))
	return resp, err
}
