package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/portfolio-hub/portfolio-backend/config"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
)

// OpenStore builds the document store selected by STORE_BACKEND, bounded by
// STORE_TIMEOUT. Missing Firebase credentials or STORE_BACKEND=none yield the
// Unconfigured store so the site still serves; an explicitly configured
// Redis or Postgres backend that cannot be reached is an error.
//
// The Firebase app is returned when one was initialized so the caller can
// reuse it for ID token verification.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (docstore.Store, *firebase.App, error) {
	var (
		store docstore.Store
		app   *firebase.App
		err   error
	)

	switch cfg.Store.Backend {
	case config.BackendFirestore:
		if !cfg.Firebase.HasCredentials() {
			log.Warn("firebase credentials missing, document store disabled")
			store = docstore.Unconfigured{}
			break
		}
		app, err = NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, nil, err
		}
		client, ferr := app.Firestore(ctx)
		if ferr != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", ferr)
		}
		store = docstore.NewFirestoreStore(client)

	case config.BackendRedis:
		store, err = docstore.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}

	case config.BackendPostgres:
		store, err = docstore.OpenPostgres(ctx, cfg.Database.ConnString(), cfg.Database.MaxConns)
		if err != nil {
			return nil, nil, err
		}

	case config.BackendMemory:
		log.Warn("using in-memory document store, data is lost on restart")
		store = docstore.NewMemoryStore()

	case config.BackendNone:
		store = docstore.Unconfigured{}

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	log.Info("document store ready",
		zap.String("backend", cfg.Store.Backend),
		zap.Duration("timeout", cfg.Store.Timeout),
	)
	return docstore.WithTimeout(store, cfg.Store.Timeout), app, nil
}
