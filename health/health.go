// Package health exposes the standard gRPC health service, reporting
// SERVING only while the database answers pings.
package health

import (
	"context"
	"net"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"registration-backend/log"
)

// Service is the name registrations are reported under, next to the
// overall "" status.
const Service = "registration.Registration"

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	db     Pinger
}

func NewServer(db Pinger) *Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)

	gs := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			grpc_zap.UnaryServerInterceptor(log.Logger),
			grpc_recovery.UnaryServerInterceptor(),
		)),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
			grpc_zap.StreamServerInterceptor(log.Logger),
			grpc_recovery.StreamServerInterceptor(),
		)),
	)
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{grpc: gs, health: hs, db: db}
}

// Check pings the database once and updates the reported status.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.Ping(ctx); err != nil {
		log.Logger.Warn("health check failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(Service, status)
	return status
}

// Serve runs the periodic check and the gRPC server until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		t := time.NewTicker(checkInterval)
		defer t.Stop()

		s.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				s.health.Shutdown()
				s.grpc.GracefulStop()
				return
			case <-t.C:
				s.Check(ctx)
			}
		}
	}()

	return s.grpc.Serve(lis)
}

func (s *Server) Health() healthpb.HealthServer {
	return s.health
}
