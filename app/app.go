package app

import (
	"log/slog"

	"study-tracker/repository"
	"study-tracker/services"
	"study-tracker/session"
	"study-tracker/sync"
	"study-tracker/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo         *repository.Repository
	AuthService  *services.AuthService
	SessionStore session.Store
	Notifier     *sync.Notifier
	Validator    *validator.Validator
	Logger       *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *repository.Repository, authService *services.AuthService, sessionStore session.Store, notifier *sync.Notifier, v *validator.Validator, logger *slog.Logger) *App {
	if v == nil {
		v = validator.New()
	}
	return &App{
		Repo:         repo,
		AuthService:  authService,
		SessionStore: sessionStore,
		Notifier:     notifier,
		Validator:    v,
		Logger:       logger,
	}
}
