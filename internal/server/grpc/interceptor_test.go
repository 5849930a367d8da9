package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recordingLogger struct {
	logging.Logger
	warns  []string
	debugs []string
}

func (r *recordingLogger) Debug(_ context.Context, msg string, _ ...any) { r.debugs = append(r.debugs, msg) }
func (r *recordingLogger) Warn(_ context.Context, msg string, _ ...any)  { r.warns = append(r.warns, msg) }

func newTestServer(l logging.Logger) *GRPCServer {
	return &GRPCServer{logger: l, interval: time.Hour, timeout: time.Second}
}

func TestInterceptor_PassesThroughResponse(t *testing.T) {
	rl := &recordingLogger{Logger: logging.NewNopLogger()}
	s := newTestServer(rl)

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	}

	resp, err := s.loggingInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if len(rl.debugs) != 1 || len(rl.warns) != 0 {
		t.Fatalf("want one debug line, got debugs=%v warns=%v", rl.debugs, rl.warns)
	}
}

func TestInterceptor_LogsFailures(t *testing.T) {
	rl := &recordingLogger{Logger: logging.NewNopLogger()}
	s := newTestServer(rl)

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "unknown service")
	}

	_, err := s.loggingInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %v, want NotFound", status.Code(err))
	}
	if len(rl.warns) != 1 {
		t.Fatalf("want one warning, got %v", rl.warns)
	}
}
