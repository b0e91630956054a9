package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/secretsanta/internal/auth"
	"github.com/mmynk/secretsanta/internal/middleware"
	"github.com/mmynk/secretsanta/internal/pairing"
	"github.com/mmynk/secretsanta/internal/storage/sqlite"
	"github.com/mmynk/secretsanta/pkg/api"
	"github.com/mmynk/secretsanta/pkg/api/apiconnect"
)

type testServer struct {
	auth  *apiconnect.AuthServiceClient
	group *apiconnect.GroupServiceClient
	santa *apiconnect.SantaServiceClient
	store *sqlite.SQLiteStore
}

// setupTestServer starts all three services behind their interceptors, the
// same way the server binary mounts them.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, bcrypt.MinCost)
	engine := pairing.NewEngine(store, pairing.WithLogger(logger))

	logging := middleware.LoggingInterceptor(logger)
	public := connect.WithInterceptors(middleware.OptionalAuth(jwtManager), logging)
	private := connect.WithInterceptors(middleware.RequireAuth(jwtManager), logging)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), public))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, logger), private))
	mux.Handle(apiconnect.NewSantaServiceHandler(NewSantaService(store, engine, logger), private))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		auth:  apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		group: apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		santa: apiconnect.NewSantaServiceClient(http.DefaultClient, server.URL),
		store: store,
	}
}

type session struct {
	user  *api.User
	token string
}

// register creates an account and returns its session.
func (ts *testServer) register(t *testing.T, name string) session {
	t.Helper()
	resp, err := ts.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       name + "@example.com",
		DisplayName: name,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	return session{user: resp.Msg.User, token: resp.Msg.Token}
}

// as builds a request carrying the session's bearer token.
func as[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

// createGroup creates a group administered by admin and admits every other
// session through the join-request flow.
func (ts *testServer) createGroup(t *testing.T, name string, admin session, others ...session) *api.Group {
	t.Helper()
	ctx := context.Background()

	resp, err := ts.group.CreateGroup(ctx, as(admin, &api.CreateGroupRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Group

	for _, s := range others {
		joinResp, err := ts.group.RequestToJoin(ctx, as(s, &api.RequestToJoinRequest{GroupId: group.Id}))
		if err != nil {
			t.Fatalf("RequestToJoin failed: %v", err)
		}
		if _, err := ts.group.AcceptJoinRequest(ctx, as(admin, &api.AcceptJoinRequestRequest{
			RequestId: joinResp.Msg.Request.Id,
		})); err != nil {
			t.Fatalf("AcceptJoinRequest failed: %v", err)
		}
	}
	return group
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
