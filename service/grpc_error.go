package service

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const msgInternal = "internal error"

// ErrorToGRPCUnaryInterceptor returns a unary server interceptor that logs handler errors and converts
// them with errorToGRPC.
//
// Called from cmd/main when creating the health gRPC server.
func ErrorToGRPCUnaryInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	logger = log.With(logger, "component", "grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			level.Info(logger).Log("msg", "unary handler error", "method", info.FullMethod, "err", err)
			return resp, errorToGRPC(err)
		}
		return resp, nil
	}
}

// ErrorToGRPCStreamInterceptor is the stream counterpart of ErrorToGRPCUnaryInterceptor (health Watch).
func ErrorToGRPCStreamInterceptor(logger log.Logger) grpc.StreamServerInterceptor {
	logger = log.With(logger, "component", "grpc")
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			level.Info(logger).Log("msg", "stream handler error", "method", info.FullMethod, "err", err)
			err = errorToGRPC(err)
		}
		return err
	}
}

// errorToGRPC maps err to a gRPC status: an existing status other than Unknown is kept, context errors map
// to Canceled and DeadlineExceeded, anything else to Internal without leaking its text.
func errorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Err()
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, msgInternal)
}
