//go:build grpc

package grpcmw

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor logs each unary RPC through the configured logger.
// Failed RPCs are logged at the error rank, successful ones at info; the
// status and duration block is produced lazily, so a filtered level costs
// nothing beyond the rank comparison.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		log := cfg.target()
		if log == nil {
			return handler(ctx, req)
		}

		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		suffix := func() string {
			st, _ := status.FromError(err)

			return st.Code().String() + " in " + elapsed.String()
		}

		// A failed log write never fails the RPC.
		if err != nil {
			_ = log.Error("rpc "+info.FullMethod, suffix)
		} else {
			_ = log.Info("rpc "+info.FullMethod, suffix)
		}

		return resp, err
	}
}
