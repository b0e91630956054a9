package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/pairing"
	"github.com/mmynk/secretsanta/internal/storage"
	"github.com/mmynk/secretsanta/pkg/api"
)

// SantaService implements the SantaService RPC interface: running draws and
// reading one's own assignments.
type SantaService struct {
	store  storage.Store
	engine *pairing.Engine
	logger *slog.Logger
}

// NewSantaService creates a SantaService that draws with engine.
func NewSantaService(store storage.Store, engine *pairing.Engine, logger *slog.Logger) *SantaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SantaService{store: store, engine: engine, logger: logger}
}

// RunDraw pairs every account member of the group and replaces the previous
// draw. Admin only. The response never reveals who gives to whom.
func (s *SantaService) RunDraw(ctx context.Context, req *connect.Request[api.RunDrawRequest]) (*connect.Response[api.RunDrawResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupId
	s.logger.Info("RunDraw request received", "group_id", groupID, "user_id", userID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		s.logger.Warn("RunDraw failed - group lookup", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}
	if !group.IsAdmin(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotAdmin)
	}

	res, err := s.engine.Run(ctx, groupID)
	if err != nil {
		return nil, drawError(err)
	}

	skipped := make([]string, len(res.Skipped))
	for i, m := range res.Skipped {
		skipped[i] = m.Name
	}

	s.logger.Info("RunDraw successful", "group_id", groupID, "assignments", len(res.Assignments))
	return connect.NewResponse(&api.RunDrawResponse{
		AssignmentCount: len(res.Assignments),
		SkippedMembers:  skipped,
		Attempts:        res.Attempts,
	}), nil
}

// GetMyAssignments returns the caller's giver assignments, in every group or
// only in the requested one.
func (s *SantaService) GetMyAssignments(ctx context.Context, req *connect.Request[api.GetMyAssignmentsRequest]) (*connect.Response[api.GetMyAssignmentsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetMyAssignments request received", "user_id", userID, "group_id", req.Msg.GroupId)

	views, err := s.store.ListAssignmentViews(ctx, userID, req.Msg.GroupId)
	if err != nil {
		s.logger.Error("GetMyAssignments failed", "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	out := make([]*api.Assignment, len(views))
	for i, v := range views {
		out[i] = &api.Assignment{
			GroupId:      v.GroupID,
			GroupName:    v.GroupName,
			ReceiverId:   v.ReceiverID,
			ReceiverName: v.ReceiverName,
			DrawnAt:      v.CreatedAt,
		}
	}

	s.logger.Info("GetMyAssignments successful", "count", len(out))
	return connect.NewResponse(&api.GetMyAssignmentsResponse{Assignments: out}), nil
}

// drawError maps engine failures onto Connect codes. None of them change the
// stored assignments, so every one is safe to retry.
func drawError(err error) *connect.Error {
	switch {
	case errors.Is(err, pairing.ErrInsufficientMembers):
		return connect.NewError(connect.CodeFailedPrecondition,
			errors.New("not enough members with an account: add more members before running the draw"))
	case errors.Is(err, pairing.ErrUnresolvableAfterRetries):
		return connect.NewError(connect.CodeAborted,
			errors.New("could not find a valid pairing: try again"))
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, pairing.ErrPersistence):
		return connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
