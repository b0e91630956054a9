package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/pkg/api"
)

// SantaServiceHandler is implemented by the draw service.
type SantaServiceHandler interface {
	RunDraw(context.Context, *connect.Request[api.RunDrawRequest]) (*connect.Response[api.RunDrawResponse], error)
	GetMyAssignments(context.Context, *connect.Request[api.GetMyAssignmentsRequest]) (*connect.Response[api.GetMyAssignmentsResponse], error)
}

// NewSantaServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewSantaServiceHandler(svc SantaServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, SantaServiceRunDrawProcedure, svc.RunDraw, opts)
	unary(mux, SantaServiceGetMyAssignmentsProcedure, svc.GetMyAssignments, opts)
	return servicePath(SantaServiceName), mux
}

// SantaServiceClient calls the draw service.
type SantaServiceClient struct {
	runDraw          *connect.Client[api.RunDrawRequest, api.RunDrawResponse]
	getMyAssignments *connect.Client[api.GetMyAssignmentsRequest, api.GetMyAssignmentsResponse]
}

// NewSantaServiceClient creates a client for the service at baseURL.
func NewSantaServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SantaServiceClient {
	opts = clientOptions(opts)
	return &SantaServiceClient{
		runDraw:          newClient[api.RunDrawRequest, api.RunDrawResponse](httpClient, baseURL, SantaServiceRunDrawProcedure, opts),
		getMyAssignments: newClient[api.GetMyAssignmentsRequest, api.GetMyAssignmentsResponse](httpClient, baseURL, SantaServiceGetMyAssignmentsProcedure, opts),
	}
}

func (c *SantaServiceClient) RunDraw(ctx context.Context, req *connect.Request[api.RunDrawRequest]) (*connect.Response[api.RunDrawResponse], error) {
	return c.runDraw.CallUnary(ctx, req)
}

func (c *SantaServiceClient) GetMyAssignments(ctx context.Context, req *connect.Request[api.GetMyAssignmentsRequest]) (*connect.Response[api.GetMyAssignmentsResponse], error) {
	return c.getMyAssignments.CallUnary(ctx, req)
}
