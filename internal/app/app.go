package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"llamachat/internal/api"
	"llamachat/internal/config"
	"llamachat/internal/database"
	"llamachat/internal/llm"
	"llamachat/internal/repository"
	"llamachat/internal/service"
)

const shutdownTimeout = 10 * time.Second

var (
	endpointPollAttempts = 20
	endpointPollInterval = 3 * time.Second
)

// App holds the wired server and the resources that must be released on exit.
type App struct {
	Server  *http.Server
	Archive *service.ArchiveService

	closers []func() error
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WaitForEndpoint {
		provider := llm.NewOpenAIProvider(cfg.CompletionBaseURL, cfg.CompletionTimeout)
		if err := waitForEndpoint(ctx, provider, cfg.CompletionBaseURL); err != nil {
			slog.Error("Completion endpoint did not become ready", "url", cfg.CompletionBaseURL, "error", err)
			return 1
		}
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to release resources", "error", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "storage", cfg.StorageDriver, "model", cfg.CompletionModelID)
		serverErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp opens the configured storage, restores the session archive and wires
// services, handlers and the HTTP server.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{}

	repo, err := app.openRepository(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	archiveService := service.NewArchiveService(repo, cfg.ArchiveKey)
	archiveService.Restore(context.Background())

	provider := llm.NewOpenAIProvider(cfg.CompletionBaseURL, cfg.CompletionTimeout)
	chatService := service.NewChatService(provider, archiveService, cfg.CompletionModelID, cfg.AutoArchive)
	modelService := service.NewModelService(provider)

	chatHandler := api.NewChatHandler(chatService)
	sessionHandler := api.NewSessionHandler(chatService, archiveService)
	modelHandler := api.NewModelHandler(modelService)
	router := api.NewRouter(chatHandler, sessionHandler, modelHandler, cfg.StaticDir)

	app.Archive = archiveService
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Submissions wait for the completion.
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openRepository returns nil for the "none" driver, which keeps the archive in memory only.
func (a *App) openRepository(cfg *config.Config) (repository.Repository, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db), nil

	case config.StorageBolt:
		repo, err := repository.OpenBoltRepository(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt database: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		slog.Info("Opened bolt database.", "path", cfg.BoltPath)
		return repo, nil

	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, rdb.Close)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		return repository.NewRedisRepository(rdb), nil

	case config.StorageMemory:
		slog.Info("Using in-process session storage; saved sessions are lost on restart.")
		return repository.NewMemoryRepository(), nil

	case config.StorageNone:
		slog.Info("Session persistence disabled.")
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForEndpoint polls the model listing until it answers or the attempts run out.
func waitForEndpoint(ctx context.Context, provider llm.CompletionProvider, url string) error {
	slog.Info("Waiting for the completion endpoint to be ready...", "url", url)
	var lastErr error
	for attempt := 1; attempt <= endpointPollAttempts; attempt++ {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := provider.ListModels(probeCtx)
		cancel()
		if err == nil {
			slog.Info("Completion endpoint is ready.", "attempt", attempt)
			return nil
		}
		lastErr = err
		slog.Debug("Completion endpoint not ready yet, retrying...", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(endpointPollInterval):
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", endpointPollAttempts, lastErr)
}
