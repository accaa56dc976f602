package grpcapi

import (
	"context"
	"time"

	"job-marketplace-api/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryLogger logs every unary call and translates workflow errors into gRPC
// statuses after the cause has been logged.
func UnaryLogger(l *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if _, isStatus := status.FromError(err); err != nil && !isStatus {
			cause := err
			err = toStatus(err)
			if status.Code(err) == codes.Internal {
				l.Error("grpc call failed", "method", info.FullMethod, "error", cause)
			}
		}

		code := status.Code(err)
		kv := []interface{}{"method", info.FullMethod, "code", code.String(), "latency", time.Since(start).String()}
		if err != nil {
			l.Warn("grpc call", append(kv, "error", err)...)
		} else {
			l.Info("grpc call", kv...)
		}

		return resp, err
	}
}

func NewServer(l *logger.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryLogger(l))}, opts...)
	return grpc.NewServer(opts...)
}
