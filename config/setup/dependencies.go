package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"study-tracker/app"
	"study-tracker/blob"
	"study-tracker/config"
	"study-tracker/database"
	"study-tracker/identity"
	"study-tracker/repository"
	"study-tracker/services"
	"study-tracker/session"
	"study-tracker/storage"
	"study-tracker/storage/firestore"
	"study-tracker/sync"
	"study-tracker/validator"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Resources are the long-lived clients Shutdown closes
type Resources struct {
	Store     storage.Provider
	Sessions  session.Store
	Publisher *sync.RedisPublisher
	cancel    context.CancelFunc
}

// InitFirebase creates the Firebase app from the configured project and credentials
func InitFirebase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*firebase.App, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.FirebaseStorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	logger.Info("firebase initialized", "project_id", cfg.FirebaseProjectID)
	return fbApp, nil
}

// InitStore opens the document store selected by STORE_BACKEND. A Firestore
// store gets a SQLite offline mirror when OFFLINE_CACHE_PATH is set.
func InitStore(ctx context.Context, cfg *config.Config, fbApp *firebase.App, logger *slog.Logger) (storage.Provider, error) {
	if cfg.StoreBackend == config.StoreSQLite {
		store, err := database.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Info("document store initialized", "backend", config.StoreSQLite, "path", cfg.DBPath)
		return store, nil
	}

	remote, err := firestore.NewFromApp(ctx, fbApp)
	if err != nil {
		return nil, err
	}
	logger.Info("document store initialized", "backend", config.StoreFirestore)

	if cfg.OfflineCachePath == "" {
		return remote, nil
	}
	return storage.EnablePersistence(remote, func() (storage.Provider, error) {
		return database.Open(cfg.OfflineCachePath)
	}, logger), nil
}

// InitBlobStore opens the blob store selected by BLOB_BACKEND
func InitBlobStore(ctx context.Context, cfg *config.Config, fbApp *firebase.App, logger *slog.Logger) (blob.Store, error) {
	if cfg.BlobBackend == config.BlobLocal {
		store, err := blob.NewLocal(cfg.BlobDir, cfg.BlobBaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("blob store initialized", "backend", config.BlobLocal, "dir", cfg.BlobDir)
		return store, nil
	}

	store, err := blob.NewGCSFromApp(ctx, fbApp, cfg.FirebaseStorageBucket, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("blob store initialized", "backend", config.BlobGCS, "bucket", cfg.FirebaseStorageBucket)
	return store, nil
}

// InitSessionStore uses Redis when REDIS_URL is set and process memory otherwise
func InitSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Store, error) {
	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("session store initialized", "backend", "redis")
		return store, nil
	}

	store := session.NewMemoryStore()
	store.StartCleanupRoutine(ctx, time.Hour)
	logger.Info("session store initialized", "backend", "memory")
	return store, nil
}

// InitNotifier registers the sync hooks: debug logging, plus Redis events when REDIS_URL is set
func InitNotifier(cfg *config.Config, logger *slog.Logger) (*sync.Notifier, *sync.RedisPublisher, error) {
	notifier := sync.NewNotifier()
	syncLog := logger.With("component", "sync")
	hooks := []sync.Hooks{{
		Start: func() { syncLog.Debug("sync started", "in_flight", notifier.InFlight()) },
		End:   func() { syncLog.Debug("sync finished", "in_flight", notifier.InFlight()) },
	}}

	var publisher *sync.RedisPublisher
	if cfg.RedisURL != "" {
		var err error
		publisher, err = sync.NewRedisPublisher(cfg.RedisURL, cfg.SyncChannel, logger)
		if err != nil {
			return nil, nil, err
		}
		hooks = append(hooks, publisher.Hooks())
		logger.Info("sync events published to redis", "channel", cfg.SyncChannel)
	}

	notifier.Register(sync.Chain(hooks...))
	return notifier, publisher, nil
}

// InitApp initializes the application with all dependencies
func InitApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, *Resources, error) {
	ctx, cancel := context.WithCancel(ctx)
	res := &Resources{cancel: cancel}

	fail := func(err error) (*app.App, *Resources, error) {
		Shutdown(res, logger)
		return nil, nil, err
	}

	var fbApp *firebase.App
	if cfg.UsesFirebase() {
		var err error
		if fbApp, err = InitFirebase(ctx, cfg, logger); err != nil {
			return fail(err)
		}
	}

	store, err := InitStore(ctx, cfg, fbApp, logger)
	if err != nil {
		return fail(err)
	}
	res.Store = store

	blobs, err := InitBlobStore(ctx, cfg, fbApp, logger)
	if err != nil {
		return fail(err)
	}

	sessions, err := InitSessionStore(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	res.Sessions = sessions

	notifier, publisher, err := InitNotifier(cfg, logger)
	if err != nil {
		return fail(err)
	}
	res.Publisher = publisher

	toolkit, err := identity.NewToolkit(ctx, cfg.FirebaseAPIKey)
	if err != nil {
		return fail(err)
	}
	gateway := identity.NewGateway(toolkit, cfg.AuthEmailDomain, logger)

	v := validator.New()
	repo := repository.New(store, blobs, notifier, v, logger)
	authService := services.NewAuthService(gateway, sessions, repo, logger)

	application := app.New(repo, authService, sessions, notifier, v, logger)
	logger.Info("application initialized with dependency injection")

	return application, res, nil
}

// Shutdown performs graceful shutdown of all services
func Shutdown(res *Resources, logger *slog.Logger) {
	if res == nil {
		return
	}
	logger.Info("shutting down services...")

	if res.cancel != nil {
		res.cancel()
	}

	var errs []error
	if res.Publisher != nil {
		errs = append(errs, res.Publisher.Close())
	}
	if closer, ok := res.Sessions.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	if res.Store != nil {
		errs = append(errs, res.Store.Close())
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("shutdown finished with errors", "error", err)
		return
	}
	logger.Info("services stopped")
}
