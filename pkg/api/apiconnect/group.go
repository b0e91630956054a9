package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/pkg/api"
)

// GroupServiceHandler is implemented by the group and join-request service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error)
	SearchGroups(context.Context, *connect.Request[api.SearchGroupsRequest]) (*connect.Response[api.SearchGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	RequestToJoin(context.Context, *connect.Request[api.RequestToJoinRequest]) (*connect.Response[api.RequestToJoinResponse], error)
	ListJoinRequests(context.Context, *connect.Request[api.ListJoinRequestsRequest]) (*connect.Response[api.ListJoinRequestsResponse], error)
	AcceptJoinRequest(context.Context, *connect.Request[api.AcceptJoinRequestRequest]) (*connect.Response[api.AcceptJoinRequestResponse], error)
	RejectJoinRequest(context.Context, *connect.Request[api.RejectJoinRequestRequest]) (*connect.Response[api.RejectJoinRequestResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, GroupServiceCreateGroupProcedure, svc.CreateGroup, opts)
	unary(mux, GroupServiceGetGroupProcedure, svc.GetGroup, opts)
	unary(mux, GroupServiceListMyGroupsProcedure, svc.ListMyGroups, opts)
	unary(mux, GroupServiceSearchGroupsProcedure, svc.SearchGroups, opts)
	unary(mux, GroupServiceAddMemberProcedure, svc.AddMember, opts)
	unary(mux, GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts)
	unary(mux, GroupServiceRequestToJoinProcedure, svc.RequestToJoin, opts)
	unary(mux, GroupServiceListJoinRequestsProcedure, svc.ListJoinRequests, opts)
	unary(mux, GroupServiceAcceptJoinRequestProcedure, svc.AcceptJoinRequest, opts)
	unary(mux, GroupServiceRejectJoinRequestProcedure, svc.RejectJoinRequest, opts)
	return servicePath(GroupServiceName), mux
}

// GroupServiceClient calls the group service.
type GroupServiceClient struct {
	createGroup       *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup          *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listMyGroups      *connect.Client[api.ListMyGroupsRequest, api.ListMyGroupsResponse]
	searchGroups      *connect.Client[api.SearchGroupsRequest, api.SearchGroupsResponse]
	addMember         *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember      *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	requestToJoin     *connect.Client[api.RequestToJoinRequest, api.RequestToJoinResponse]
	listJoinRequests  *connect.Client[api.ListJoinRequestsRequest, api.ListJoinRequestsResponse]
	acceptJoinRequest *connect.Client[api.AcceptJoinRequestRequest, api.AcceptJoinRequestResponse]
	rejectJoinRequest *connect.Client[api.RejectJoinRequestRequest, api.RejectJoinRequestResponse]
}

// NewGroupServiceClient creates a client for the service at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:       newClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL, GroupServiceCreateGroupProcedure, opts),
		getGroup:          newClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL, GroupServiceGetGroupProcedure, opts),
		listMyGroups:      newClient[api.ListMyGroupsRequest, api.ListMyGroupsResponse](httpClient, baseURL, GroupServiceListMyGroupsProcedure, opts),
		searchGroups:      newClient[api.SearchGroupsRequest, api.SearchGroupsResponse](httpClient, baseURL, GroupServiceSearchGroupsProcedure, opts),
		addMember:         newClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL, GroupServiceAddMemberProcedure, opts),
		removeMember:      newClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL, GroupServiceRemoveMemberProcedure, opts),
		requestToJoin:     newClient[api.RequestToJoinRequest, api.RequestToJoinResponse](httpClient, baseURL, GroupServiceRequestToJoinProcedure, opts),
		listJoinRequests:  newClient[api.ListJoinRequestsRequest, api.ListJoinRequestsResponse](httpClient, baseURL, GroupServiceListJoinRequestsProcedure, opts),
		acceptJoinRequest: newClient[api.AcceptJoinRequestRequest, api.AcceptJoinRequestResponse](httpClient, baseURL, GroupServiceAcceptJoinRequestProcedure, opts),
		rejectJoinRequest: newClient[api.RejectJoinRequestRequest, api.RejectJoinRequestResponse](httpClient, baseURL, GroupServiceRejectJoinRequestProcedure, opts),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListMyGroups(ctx context.Context, req *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error) {
	return c.listMyGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SearchGroups(ctx context.Context, req *connect.Request[api.SearchGroupsRequest]) (*connect.Response[api.SearchGroupsResponse], error) {
	return c.searchGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RequestToJoin(ctx context.Context, req *connect.Request[api.RequestToJoinRequest]) (*connect.Response[api.RequestToJoinResponse], error) {
	return c.requestToJoin.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListJoinRequests(ctx context.Context, req *connect.Request[api.ListJoinRequestsRequest]) (*connect.Response[api.ListJoinRequestsResponse], error) {
	return c.listJoinRequests.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AcceptJoinRequest(ctx context.Context, req *connect.Request[api.AcceptJoinRequestRequest]) (*connect.Response[api.AcceptJoinRequestResponse], error) {
	return c.acceptJoinRequest.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RejectJoinRequest(ctx context.Context, req *connect.Request[api.RejectJoinRequestRequest]) (*connect.Response[api.RejectJoinRequestResponse], error) {
	return c.rejectJoinRequest.CallUnary(ctx, req)
}
