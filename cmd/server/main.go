package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/secretsanta/internal/auth"
	"github.com/mmynk/secretsanta/internal/config"
	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/middleware"
	"github.com/mmynk/secretsanta/internal/pairing"
	"github.com/mmynk/secretsanta/internal/service"
	"github.com/mmynk/secretsanta/internal/storage/sqlite"
	"github.com/mmynk/secretsanta/pkg/api/apiconnect"
	"github.com/mmynk/secretsanta/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.SlogLevel())

	tokenTTL, err := cfg.TokenDuration()
	if err != nil {
		return err
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	mux := http.NewServeMux()

	var drawMetrics metrics.DrawRecorder = metrics.NewNop()
	if cfg.MetricsEnabled {
		collector, err := metrics.NewPrometheus(nil, "")
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		drawMetrics = collector
		mux.Handle("/metrics", promhttp.Handler())
	}

	engine := pairing.NewEngine(store,
		pairing.WithMaxAttempts(cfg.DrawMaxAttempts),
		pairing.WithMetrics(drawMetrics),
		pairing.WithLogger(logger),
	)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, 0)

	// Auth runs before logging so the log line carries the caller.
	logged := middleware.LoggingInterceptor(logger)
	public := connect.WithInterceptors(middleware.OptionalAuth(jwtManager), logged)
	private := connect.WithInterceptors(middleware.RequireAuth(jwtManager), logged)

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, logger), public))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store, logger), private))
	mux.Handle(apiconnect.NewSantaServiceHandler(service.NewSantaService(store, engine, logger), private))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
