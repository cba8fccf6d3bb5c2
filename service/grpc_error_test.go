package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestErrorToGRPC(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{"existing_status", status.Error(codes.Unimplemented, "method not found"), codes.Unimplemented, "method not found"},
		{"canceled", fmt.Errorf("apply: %w", context.Canceled), codes.Canceled, "apply: context canceled"},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded, "context deadline exceeded"},
		{"unknown_status", status.Error(codes.Unknown, "dsn=secret"), codes.Internal, msgInternal},
		{"plain_error", errors.New("secret dsn"), codes.Internal, msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := status.FromError(errorToGRPC(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, s.Code())
			assert.Equal(t, tt.wantMsg, s.Message())
		})
	}
}

func TestErrorToGRPC_Nil(t *testing.T) {
	assert.NoError(t, errorToGRPC(nil))
}

func TestErrorToGRPCUnaryInterceptor(t *testing.T) {
	interceptor := ErrorToGRPCUnaryInterceptor(log.NewNopLogger())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	t.Run("ok", func(t *testing.T) {
		resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
			return "resp", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "resp", resp)
	})
	t.Run("status_kept", func(t *testing.T) {
		_, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.NotFound, "unknown service")
		})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
	t.Run("plain_error_hidden", func(t *testing.T) {
		_, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
			return nil, errors.New("dial tcp 10.0.0.1:7700")
		})
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Equal(t, msgInternal, status.Convert(err).Message())
	})
}

// fakeServerStream is a minimal grpc.ServerStream for testing the interceptor.
type fakeServerStream struct {
	ctx context.Context
}

func (f *fakeServerStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeServerStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeServerStream) SetTrailer(metadata.MD)       {}
func (f *fakeServerStream) Context() context.Context     { return f.ctx }
func (f *fakeServerStream) SendMsg(any) error            { return nil }
func (f *fakeServerStream) RecvMsg(any) error            { return io.EOF }

func TestErrorToGRPCStreamInterceptor(t *testing.T) {
	interceptor := ErrorToGRPCStreamInterceptor(log.NewNopLogger())
	ss := &fakeServerStream{ctx: context.Background()}
	info := &grpc.StreamServerInfo{FullMethod: "/grpc.health.v1.Health/Watch"}

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{"nil", nil, codes.OK},
		{"client_gone", context.Canceled, codes.Canceled},
		{"arbitrary", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := interceptor(nil, ss, info, func(srv any, stream grpc.ServerStream) error { return tt.err })
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}
