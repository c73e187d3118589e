package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"taskServer/internal/config"
	"taskServer/internal/handlers"
	"taskServer/internal/logger"
	"taskServer/internal/repository/task/inmemory"
	"taskServer/internal/service"
	"taskServer/internal/worker"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config     *config.Config
	server     *http.Server
	repository service.TaskRepository
	service    *service.TaskService
	worker     *worker.DueDateWorker
	shutdowns  []func() // run in reverse order on shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Level, a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Flushing logs")
		logger.Sync()
	})

	a.repository = inmemory.NewTaskStorage()
	a.service = service.NewTaskService(a.repository)

	if a.config.Seed {
		if err := a.service.Seed(ctx, service.SampleTasks()); err != nil {
			return nil, fmt.Errorf("seed sample tasks: %w", err)
		}
		logger.Info("App: Sample tasks loaded", zap.Int("count", a.service.CountTasks(ctx)))
	}

	handler := handlers.NewTaskHandler(a.service, handlers.Info{
		Title:       a.config.API.Title,
		Description: a.config.API.Description,
		Version:     a.config.API.Version,
	})
	router := handlers.NewRouter(handler, handlers.RouterConfig{
		RateLimitRPM:   a.config.RateLimit.RPM,
		AllowedOrigins: a.config.CORS.AllowedOrigins,
		RequestTimeout: a.config.Server.RequestTimeout,
	})

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewDueDateWorker(a.service, a.config.Worker.Interval)
	}

	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves on the configured address until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts the server down gracefully when ctx ends.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	defer a.shutdown()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: Server started",
			zap.String("addr", ln.Addr().String()),
			zap.String("title", a.config.API.Title),
			zap.String("version", a.config.API.Version))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	if a.worker != nil {
		g.Go(func() error {
			return a.worker.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
