package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/portfolio-hub/portfolio-backend/config"
	"github.com/portfolio-hub/portfolio-backend/internal/auth"
	"github.com/portfolio-hub/portfolio-backend/internal/bootstrap"
	"github.com/portfolio-hub/portfolio-backend/internal/logging"
)

const serviceName = "portfolio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.Init(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	store, app, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open document store", zap.Error(err))
	}

	var tokens *auth.TokenService
	if cfg.Auth.JWTSecret != "" {
		tokens = auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}
	if cfg.Auth.AdminEmail == "" || tokens == nil {
		logger.Warn("admin login disabled, set ADMIN_EMAIL, ADMIN_PASSWORD_HASH and JWT_SECRET")
	}

	deps := bootstrap.RouterDeps{
		ServiceName:       serviceName,
		Version:           cfg.App.Version,
		Store:             store,
		Logger:            logger,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		Tokens:            tokens,
	}

	if cfg.Firebase.AuthEnabled {
		verifier, err := firebaseVerifier(ctx, cfg, app)
		if err != nil {
			logger.Fatal("failed to initialize firebase auth", zap.Error(err))
		}
		deps.Firebase = verifier
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		logger.Error("failed to close document store", zap.Error(err))
	}

	logger.Info("server exited")
}

// firebaseVerifier reuses the Firestore app when there is one and otherwise
// builds an app just for ID token verification.
func firebaseVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (auth.IDTokenVerifier, error) {
	if app == nil {
		if !cfg.Firebase.HasCredentials() {
			return nil, errors.New("FIREBASE_AUTH_ENABLED requires Firebase credentials")
		}
		var err error
		app, err = bootstrap.NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
	}
	return auth.InitializeFirebase(ctx, app)
}
