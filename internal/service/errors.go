package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/auth"
	"github.com/mmynk/secretsanta/internal/middleware"
	"github.com/mmynk/secretsanta/internal/storage"
)

var (
	errNotAdmin      = errors.New("only the group admin can do this")
	errAlreadyMember = errors.New("already a member of this group")
)

// storageError maps storage sentinel errors onto Connect codes.
func storageError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrNotPending):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// callerID returns the authenticated user's ID or an Unauthenticated error.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
