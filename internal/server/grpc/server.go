// Package grpc serves the standard gRPC health protocol so orchestrators
// can probe the process and the database behind it.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DatabaseService is the health service name that tracks the durable store.
// The empty service name reports the process itself.
const DatabaseService = "travelboard.database"

type GRPCServer struct {
	address  string
	logger   logging.Logger
	db       dbx.Pinger
	interval time.Duration
	timeout  time.Duration
	health   *health.Server
}

// NewGRPCServer creates the health server. db may be nil when the service
// runs without a database; the database service then reports NOT_SERVING
// while the process stays SERVING.
func NewGRPCServer(a string, l logging.Logger, db dbx.Pinger, interval time.Duration) *GRPCServer {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		db:       db,
		interval: interval,
		timeout:  2 * time.Second,
		health:   health.NewServer(),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.probe(ctx)

	go s.watch(ctx)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

func (s *GRPCServer) watch(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.probe(ctx)
		}
	}
}

// probe pings the database once and publishes the result.
func (s *GRPCServer) probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if s.db != nil {
		pctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.db.PingContext(pctx)
		cancel()
		if err == nil {
			status = healthpb.HealthCheckResponse_SERVING
		} else if ctx.Err() == nil {
			s.logger.Warn(ctx, "database probe failed", "error", err)
		}
	}
	s.health.SetServingStatus(DatabaseService, status)
}
