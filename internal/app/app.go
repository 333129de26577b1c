package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumanurawat/phoenix-sub003/internal/config"
	"github.com/sumanurawat/phoenix-sub003/internal/contact"
	"github.com/sumanurawat/phoenix-sub003/internal/db"
	"github.com/sumanurawat/phoenix-sub003/internal/storage"
)

/* ------------------------------------------------------------------
   App struct, runtime container
-------------------------------------------------------------------*/

type App struct {
	cfg      config.Config
	log      *zap.Logger
	store    storage.Store
	recorder *contact.Recorder

	httpServer *http.Server
}

// New assembles an App from ready-made parts.
func New(cfg config.Config, log *zap.Logger, store storage.Store) *App {
	a := &App{cfg: cfg, log: log, store: store}
	a.recorder = contact.NewRecorder(store, log)
	return a
}

/* ------------------------------------------------------------------
   Public getters
-------------------------------------------------------------------*/

func (a *App) GetConfig() config.Config { return a.cfg }
func (a *App) Logger() *zap.Logger { return a.log }
func (a *App) Recorder() *contact.Recorder { return a.recorder }
func (a *App) Store() storage.Store { return a.store }

// SetWebRouter installs the HTTP handler served by Run.
func (a *App) SetWebRouter(r *gin.Engine) {
	a.httpServer = &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

/* ------------------------------------------------------------------
   Init / Run / Close lifecycle
-------------------------------------------------------------------*/

// Init builds the logger and opens the configured storage driver.
func (a *App) Init(ctx context.Context, cfg config.Config) error {
	log, err := NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		_ = log.Sync()
		return err
	}

	*a = *New(cfg, log, store)
	a.log.Info("storage ready", zap.String("driver", cfg.StorageDriver))
	return nil
}

// OpenStore returns the storage driver selected by cfg.StorageDriver.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "postgres":
		conn, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return storage.NewDatabase(conn), nil
	case "file":
		return storage.NewFileStorage(cfg.StoragePath)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// Run serves HTTP until the server is closed. It returns nil after a
// graceful Close.
func (a *App) Run() error {
	if a.httpServer == nil {
		return errors.New("web router not set")
	}

	a.log.Info("HTTP listening", zap.String("addr", a.httpServer.Addr))
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}

// Close drains in-flight requests, then closes storage.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	_ = a.log.Sync()
	return errors.Join(errs...)
}
