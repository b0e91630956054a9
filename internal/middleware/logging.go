package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, caller, duration and error code.
// Client errors are logged at warn level, everything else at error level.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			userID := GetUserID(ctx) // empty if pre-auth

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err == nil {
				logger.Info("RPC ok",
					"procedure", procedure,
					"user_id", userID,
					"duration_ms", duration,
				)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && isClientError(connectErr.Code()) {
				logger.Warn("RPC error",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"user_id", userID,
					"duration_ms", duration,
				)
			} else {
				logger.Error("RPC error",
					"procedure", procedure,
					"code", connect.CodeOf(err),
					"error", err,
					"user_id", userID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}

func isClientError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists,
		connect.CodePermissionDenied, connect.CodeUnauthenticated, connect.CodeFailedPrecondition,
		connect.CodeAborted:
		return true
	}
	return false
}
