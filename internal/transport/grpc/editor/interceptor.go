package editor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs every unary call: successes at Debug, failures at Warn
// (Error for codes.Internal).
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	log = log.Named("grpc")
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}

		switch {
		case err == nil:
			log.Debug("call completed", fields...)
		case code == codes.Internal || code == codes.Unknown:
			log.Error("call failed", append(fields, zap.Error(err))...)
		default:
			log.Warn("call rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
