package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/pkg/api"
)

// AuthServiceHandler is implemented by the account service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, AuthServiceRegisterProcedure, svc.Register, opts)
	unary(mux, AuthServiceLoginProcedure, svc.Login, opts)
	unary(mux, AuthServiceLogoutProcedure, svc.Logout, opts)
	unary(mux, AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts)
	return servicePath(AuthServiceName), mux
}

// AuthServiceClient calls the account service.
type AuthServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	logout         *connect.Client[api.LogoutRequest, api.LogoutResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:       newClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL, AuthServiceRegisterProcedure, opts),
		login:          newClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts),
		logout:         newClient[api.LogoutRequest, api.LogoutResponse](httpClient, baseURL, AuthServiceLogoutProcedure, opts),
		getCurrentUser: newClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
