// Package apiconnect wires the api messages into Connect handlers and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/pkg/api"
)

const (
	AuthServiceName  = "secretsanta.v1.AuthService"
	GroupServiceName = "secretsanta.v1.GroupService"
	SantaServiceName = "secretsanta.v1.SantaService"
)

// Fully-qualified procedure names.
const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceLogoutProcedure         = "/" + AuthServiceName + "/Logout"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	GroupServiceCreateGroupProcedure       = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure          = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListMyGroupsProcedure      = "/" + GroupServiceName + "/ListMyGroups"
	GroupServiceSearchGroupsProcedure      = "/" + GroupServiceName + "/SearchGroups"
	GroupServiceAddMemberProcedure         = "/" + GroupServiceName + "/AddMember"
	GroupServiceRemoveMemberProcedure      = "/" + GroupServiceName + "/RemoveMember"
	GroupServiceRequestToJoinProcedure     = "/" + GroupServiceName + "/RequestToJoin"
	GroupServiceListJoinRequestsProcedure  = "/" + GroupServiceName + "/ListJoinRequests"
	GroupServiceAcceptJoinRequestProcedure = "/" + GroupServiceName + "/AcceptJoinRequest"
	GroupServiceRejectJoinRequestProcedure = "/" + GroupServiceName + "/RejectJoinRequest"

	SantaServiceRunDrawProcedure          = "/" + SantaServiceName + "/RunDraw"
	SantaServiceGetMyAssignmentsProcedure = "/" + SantaServiceName + "/GetMyAssignments"
)

// handlerOptions puts the JSON codec ahead of caller options.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

// clientOptions puts the JSON codec ahead of caller options.
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func servicePath(name string) string {
	return "/" + name + "/"
}

// unary mounts a unary handler for procedure on mux.
func unary[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
