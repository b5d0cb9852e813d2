package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/neondara/internal/auth"
	"github.com/mmynk/neondara/internal/config"
	"github.com/mmynk/neondara/internal/i18n"
	"github.com/mmynk/neondara/internal/middleware"
	"github.com/mmynk/neondara/internal/service"
	"github.com/mmynk/neondara/internal/storage"
	"github.com/mmynk/neondara/internal/storage/sqlite"
	"github.com/mmynk/neondara/internal/validation"
	"github.com/mmynk/neondara/pkg/api/apiconnect"
	"github.com/mmynk/neondara/pkg/logging"
)

// rpcPrefix is the path prefix of every Connect procedure.
const rpcPrefix = "/neondara.v1."

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	translator, err := i18n.New(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	validate := validation.New()
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitPerMinute, cfg.Auth.RateLimitBurst, cfg.Server.TrustProxy)

	// Auth runs before logging so log lines carry the user ID.
	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.LoggingInterceptor(logger),
		limiter.Interceptor(
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, validate, logger), interceptors))
	mux.Handle(apiconnect.NewPeopleServiceHandler(
		service.NewPeopleService(store, validate, translator, logger), interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(
		service.NewLedgerService(store, validate, translator, logger), interceptors))
	mux.Handle(apiconnect.NewBillServiceHandler(
		service.NewBillService(store, validate, logger), interceptors))

	exports := service.NewExportHandler(store, translator, logger)
	mux.Handle("/export/", middleware.RequireAuthHTTP(jwtManager, exports.Routes()))

	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.HandleFunc("GET /healthz", healthHandler(store))

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	logger.Info("Serving static files", "path", staticDir)
	mux.HandleFunc("/", staticHandler(staticDir))

	handler := middleware.RequestLogger(logger, middleware.CORS(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", srv.Addr, "url", "http://localhost"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func healthHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	}
}

// staticHandler serves the frontend and falls back to index.html for
// unknown paths so client-side routes resolve.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, rpcPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}
