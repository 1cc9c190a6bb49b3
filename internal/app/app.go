package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/giza-dash/internal/api"
	"github.com/giza-dash/internal/cache"
	"github.com/giza-dash/internal/provider"
	"github.com/giza-dash/pkg/config"
)

// App represents the main application
type App struct {
	cfg    *config.Config
	logger *logrus.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	store     cache.Store
	provider  *provider.Provider
	apiServer *api.Server
}

// New creates a new application instance
func New(cfg *config.Config, logger *logrus.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Initialize initializes all application components
func (a *App) Initialize() error {
	if err := a.initializeCache(); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	a.provider = provider.New(&a.cfg.CoinGecko, a.cfg.Cache.TTL, a.store, a.logger)
	a.apiServer = api.NewServer(a.cfg, a.logger, a.provider)

	return nil
}

func (a *App) initializeCache() error {
	switch a.cfg.Cache.Backend {
	case "redis":
		store, err := cache.NewRedisStore(&a.cfg.Redis, a.cfg.GetRedisAddr(), a.logger)
		if err != nil {
			return err
		}
		a.store = store
	default:
		a.store = cache.NewMemoryStore()
	}

	a.logger.WithField("backend", a.cfg.Cache.Backend).Info("Cache initialized")
	return nil
}

// Start starts the application
func (a *App) Start() error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.apiServer.Start(); err != nil {
			if err != http.ErrServerClosed {
				a.logger.WithError(err).Error("API server error")
			}
		}
	}()

	a.logger.WithFields(logrus.Fields{
		"address": a.cfg.GetServerAddr(),
		"coin":    a.cfg.CoinGecko.CoinID,
	}).Info("Dashboard backend started")

	return nil
}

// Stop gracefully stops the application
func (a *App) Stop() error {
	a.cancel()

	shutdownCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("API server shutdown error")
	}

	if err := a.store.Close(); err != nil {
		a.logger.WithError(err).Warn("Cache close error")
	}

	a.wg.Wait()
	return nil
}
