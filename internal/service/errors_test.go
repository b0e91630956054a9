package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/pairing"
	"github.com/mmynk/secretsanta/internal/storage"
)

func TestDrawError(t *testing.T) {
	diskFull := errors.New("disk full")

	tests := []struct {
		name    string
		err     error
		want    connect.Code
		message string
	}{
		{"insufficient members", pairing.ErrInsufficientMembers, connect.CodeFailedPrecondition, "add more members"},
		{"unresolvable", fmt.Errorf("%w: 100 attempts for 3 accounts", pairing.ErrUnresolvableAfterRetries), connect.CodeAborted, "try again"},
		{"persistence", fmt.Errorf("%w: %w", pairing.ErrPersistence, diskFull), connect.CodeUnavailable, "disk full"},
		{"canceled", context.Canceled, connect.CodeCanceled, ""},
		{"canceled during write", fmt.Errorf("%w: %w", pairing.ErrPersistence, context.Canceled), connect.CodeCanceled, ""},
		{"deadline", context.DeadlineExceeded, connect.CodeDeadlineExceeded, ""},
		{"unknown", diskFull, connect.CodeInternal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := drawError(tt.err)
			if got.Code() != tt.want {
				t.Errorf("code: expected %v, got %v", tt.want, got.Code())
			}
			if tt.message != "" && !strings.Contains(got.Message(), tt.message) {
				t.Errorf("message %q does not mention %q", got.Message(), tt.message)
			}
		})
	}
}

func TestStorageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"not found", fmt.Errorf("group g1: %w", storage.ErrNotFound), connect.CodeNotFound},
		{"conflict", fmt.Errorf("create group: %w", storage.ErrConflict), connect.CodeAlreadyExists},
		{"not pending", fmt.Errorf("join request r1: %w", storage.ErrNotPending), connect.CodeFailedPrecondition},
		{"other", errors.New("database is locked"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storageError(tt.err).Code(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
