// Package middleware holds the Connect interceptors shared by all services.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// DisplayNameKey is the context key for storing the authenticated user's name.
	DisplayNameKey contextKey = "display_name"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// GetDisplayName extracts the user's display name from the context.
func GetDisplayName(ctx context.Context) string {
	name, _ := ctx.Value(DisplayNameKey).(string)
	return name
}

// WithClaims returns a copy of ctx carrying the session identity.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	return context.WithValue(ctx, DisplayNameKey, claims.DisplayName)
}

// RequireAuth returns an interceptor that rejects requests without a valid
// bearer token and stores the token's identity in the context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			tokenString, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithClaims(ctx, claims), req)
		}
	}
}

// OptionalAuth returns an interceptor that stores the token's identity when a
// valid token is present and lets every request through.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, err := bearerToken(req.Header().Get("Authorization")); err == nil {
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithClaims(ctx, claims)
				}
			}
			return next(ctx, req)
		}
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}
