package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/middleware"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
	"github.com/mmynk/secretsanta/pkg/api"
)

// GroupService implements the GroupService RPC interface: groups, members
// and join requests.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupService{store: store, logger: logger}
}

// CreateGroup creates a group administered by the caller, who also becomes its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.Info("CreateGroup request received", "name", name, "user_id", userID)

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name is required"))
	}

	group := &models.Group{Name: name, AdminID: userID}
	admin := &models.Member{UserID: userID, Name: memberName(ctx)}
	if err := s.store.CreateGroup(ctx, group, admin); err != nil {
		s.logger.Warn("CreateGroup failed", "name", name, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("CreateGroup successful", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group, userID)}), nil
}

// GetGroup returns a group with its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupId
	s.logger.Info("GetGroup request received", "group_id", groupID, "user_id", userID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		s.logger.Warn("GetGroup failed", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}

	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		s.logger.Error("GetGroup failed - could not list members", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}

	out := make([]*api.Member, len(members))
	for i, m := range members {
		out[i] = toAPIMember(m)
	}

	s.logger.Info("GetGroup successful", "group_id", groupID, "members", len(members))
	return connect.NewResponse(&api.GetGroupResponse{
		Group:   toAPIGroup(group, userID),
		Members: out,
	}), nil
}

// ListMyGroups returns the groups the caller is a member of.
func (s *GroupService) ListMyGroups(ctx context.Context, req *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListMyGroups request received", "user_id", userID)

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListMyGroups failed", "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("ListMyGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListMyGroupsResponse{Groups: toAPIGroups(groups, userID)}), nil
}

// SearchGroups finds groups whose name contains the query, ignoring case.
// An empty query matches nothing.
func (s *GroupService) SearchGroups(ctx context.Context, req *connect.Request[api.SearchGroupsRequest]) (*connect.Response[api.SearchGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("SearchGroups request received", "query", req.Msg.Query)

	groups, err := s.store.SearchGroups(ctx, req.Msg.Query)
	if err != nil {
		s.logger.Error("SearchGroups failed", "query", req.Msg.Query, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("SearchGroups successful", "count", len(groups))
	return connect.NewResponse(&api.SearchGroupsResponse{Groups: toAPIGroups(groups, userID)}), nil
}

// AddMember adds a guest member without an account. Admin only.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupId
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.Info("AddMember request received", "group_id", groupID, "name", name)

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("member name is required"))
	}
	if _, err := s.adminGroup(ctx, groupID, userID); err != nil {
		return nil, err
	}

	member := &models.Member{GroupID: groupID, Name: name}
	if err := s.store.AddMember(ctx, member); err != nil {
		s.logger.Error("AddMember failed", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("AddMember successful", "group_id", groupID, "member_id", member.ID)
	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(member)}), nil
}

// RemoveMember removes a member from its group. Admin only; the admin's own
// membership cannot be removed.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	memberID := req.Msg.MemberId
	s.logger.Info("RemoveMember request received", "member_id", memberID)

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		s.logger.Warn("RemoveMember failed", "member_id", memberID, "error", err)
		return nil, storageError(err)
	}
	group, err := s.adminGroup(ctx, member.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if member.UserID == group.AdminID {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("the admin cannot be removed from the group"))
	}

	if err := s.store.RemoveMember(ctx, memberID); err != nil {
		s.logger.Error("RemoveMember failed", "member_id", memberID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("RemoveMember successful", "group_id", group.ID, "member_id", memberID)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// RequestToJoin asks the group's admin to admit the caller. Asking twice
// returns the existing request.
func (s *GroupService) RequestToJoin(ctx context.Context, req *connect.Request[api.RequestToJoinRequest]) (*connect.Response[api.RequestToJoinResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupId
	s.logger.Info("RequestToJoin request received", "group_id", groupID, "user_id", userID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		s.logger.Warn("RequestToJoin failed", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}

	isMember, err := s.store.IsMember(ctx, groupID, userID)
	if err != nil {
		s.logger.Error("RequestToJoin failed - membership check", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}
	if isMember {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errAlreadyMember)
	}

	joinReq, created, err := s.store.GetOrCreateJoinRequest(ctx, groupID, userID)
	if err != nil {
		s.logger.Error("RequestToJoin failed", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}
	joinReq.GroupName = group.Name

	s.logger.Info("RequestToJoin successful", "request_id", joinReq.ID, "created", created)
	return connect.NewResponse(&api.RequestToJoinResponse{
		Request:          toAPIJoinRequest(joinReq),
		AlreadyRequested: !created,
	}), nil
}

// ListJoinRequests returns the pending requests for every group the caller administers.
func (s *GroupService) ListJoinRequests(ctx context.Context, req *connect.Request[api.ListJoinRequestsRequest]) (*connect.Response[api.ListJoinRequestsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListJoinRequests request received", "user_id", userID)

	requests, err := s.store.ListPendingJoinRequests(ctx, userID)
	if err != nil {
		s.logger.Error("ListJoinRequests failed", "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	out := make([]*api.JoinRequest, len(requests))
	for i, r := range requests {
		out[i] = toAPIJoinRequest(r)
	}

	s.logger.Info("ListJoinRequests successful", "count", len(out))
	return connect.NewResponse(&api.ListJoinRequestsResponse{Requests: out}), nil
}

// AcceptJoinRequest admits the requester as a member named after their display name.
func (s *GroupService) AcceptJoinRequest(ctx context.Context, req *connect.Request[api.AcceptJoinRequestRequest]) (*connect.Response[api.AcceptJoinRequestResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	requestID := req.Msg.RequestId
	s.logger.Info("AcceptJoinRequest request received", "request_id", requestID)

	joinReq, err := s.decidableRequest(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}

	requester, err := s.store.GetUserByID(ctx, joinReq.UserID)
	if err != nil {
		s.logger.Error("AcceptJoinRequest failed - requester lookup", "user_id", joinReq.UserID, "error", err)
		return nil, storageError(err)
	}

	member := &models.Member{GroupID: joinReq.GroupID, UserID: requester.ID, Name: requester.DisplayName}
	if err := s.store.AcceptJoinRequest(ctx, requestID, member); err != nil {
		s.logger.Warn("AcceptJoinRequest failed", "request_id", requestID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("AcceptJoinRequest successful", "request_id", requestID, "member_id", member.ID)
	return connect.NewResponse(&api.AcceptJoinRequestResponse{Member: toAPIMember(member)}), nil
}

// RejectJoinRequest declines a pending request.
func (s *GroupService) RejectJoinRequest(ctx context.Context, req *connect.Request[api.RejectJoinRequestRequest]) (*connect.Response[api.RejectJoinRequestResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	requestID := req.Msg.RequestId
	s.logger.Info("RejectJoinRequest request received", "request_id", requestID)

	if _, err := s.decidableRequest(ctx, requestID, userID); err != nil {
		return nil, err
	}

	if err := s.store.RejectJoinRequest(ctx, requestID); err != nil {
		s.logger.Warn("RejectJoinRequest failed", "request_id", requestID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("RejectJoinRequest successful", "request_id", requestID)
	return connect.NewResponse(&api.RejectJoinRequestResponse{}), nil
}

// adminGroup loads the group and checks that userID administers it.
func (s *GroupService) adminGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		s.logger.Warn("Group lookup failed", "group_id", groupID, "error", err)
		return nil, storageError(err)
	}
	if !group.IsAdmin(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotAdmin)
	}
	return group, nil
}

// decidableRequest loads a join request the caller may accept or reject.
func (s *GroupService) decidableRequest(ctx context.Context, requestID, userID string) (*models.JoinRequest, error) {
	joinReq, err := s.store.GetJoinRequest(ctx, requestID)
	if err != nil {
		s.logger.Warn("Join request lookup failed", "request_id", requestID, "error", err)
		return nil, storageError(err)
	}
	if _, err := s.adminGroup(ctx, joinReq.GroupID, userID); err != nil {
		return nil, err
	}
	if !joinReq.IsPending() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, storage.ErrNotPending)
	}
	return joinReq, nil
}

// memberName is the display name carried by the session, falling back to the email.
func memberName(ctx context.Context) string {
	if name := middleware.GetDisplayName(ctx); name != "" {
		return name
	}
	return middleware.GetEmail(ctx)
}
