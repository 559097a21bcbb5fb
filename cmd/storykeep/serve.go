package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storykeep/internal/auth"
	"storykeep/internal/config"
	"storykeep/internal/database"
	httpdelivery "storykeep/internal/delivery/http"
	"storykeep/internal/delivery/websocket"
	"storykeep/internal/repository"
	"storykeep/internal/service"
)

const (
	retryDelay      = 3 * time.Second
	shutdownTimeout = 5 * time.Second
)

type serveOptions struct {
	Migrate bool
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and live search",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(root)
			if err != nil {
				return err
			}
			defer log.Sync()
			return serve(cfg, opts, log)
		},
	}
	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(cfg *config.Config, opts *serveOptions, logger *zap.Logger) error {
	zap.L().Info("Logger initialized", zap.String("level", cfg.LogLevel), zap.String("env", cfg.Env))

	if opts.Migrate {
		if err := database.Migrate(cfg.Database(), database.Up, logger); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := setupPostgres(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer provider.Close()

	redisClient, err := setupRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo, traitRepo, err := openAccountRepositories(ctx, cfg, provider, logger)
	if err != nil {
		return err
	}
	defer userRepo.Close()
	defer traitRepo.Close()

	application, err := buildApp(cfg, storage{
		users:      userRepo,
		stories:    repository.NewPgStoryRepository(provider.Pool(), logger),
		characters: repository.NewPgCharacterRepository(provider.Pool(), logger),
		traits:     traitRepo,
		tokens:     repository.NewRedisTokenRepository(redisClient, logger),
	}, logger)
	if err != nil {
		return err
	}
	defer application.live.Shutdown()

	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}
	router := application.router(cfg, true)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zap.L().Info("Shutting down server...")
	case err := <-serverErr:
		zap.L().Error("HTTP server listen error", zap.Error(err))
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
	return nil
}

// storage groups the repositories the services run on.
type storage struct {
	users      repository.UserRepository
	stories    repository.StoryRepository
	characters repository.CharacterRepository
	traits     repository.TraitRepository
	tokens     repository.TokenRepository
}

type app struct {
	handler *httpdelivery.Handler
	live    *websocket.Manager
	logger  *zap.Logger
}

// buildApp wires hashing, tokens, services and delivery over st.
func buildApp(cfg *config.Config, st storage, logger *zap.Logger) (*app, error) {
	hasher, err := auth.NewHasher(cfg.Argon2())
	if err != nil {
		return nil, fmt.Errorf("failed to init password hasher: %w", err)
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to init token service: %w", err)
	}

	userService := service.NewUserService(st.users, hasher, logger)
	storyService := service.NewStoryService(st.stories, logger)
	characterService := service.NewCharacterService(st.characters, logger)
	traitService := service.NewTraitService(st.traits, logger)
	authService := service.NewAuthService(tokens, st.tokens, logger)
	journal := service.NewJournal(storyService, characterService)

	live := websocket.NewManager(journal, authService, cfg.SearchDebounce, cfg.GetAllowedOrigins(), logger)
	handler := httpdelivery.NewHandler(userService, storyService, characterService, traitService, journal, authService, live, logger)
	return &app{handler: handler, live: live, logger: logger}, nil
}

// router mounts the API and live search. Request metrics register with the
// default prometheus registry, so only one router per process may enable them.
func (a *app) router(cfg *config.Config, metrics bool) *gin.Engine {
	return httpdelivery.NewRouter(a.handler, a.live, httpdelivery.RouterOptions{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		Metrics:        metrics,
	}, a.logger)
}

// openAccountRepositories builds the user and trait repositories, either on
// dedicated connections or over the pool.
func openAccountRepositories(ctx context.Context, cfg *config.Config, provider *database.Provider, logger *zap.Logger) (repository.UserRepository, repository.TraitRepository, error) {
	if !cfg.DBHoldConnections {
		return repository.NewPgUserRepository(provider.Pool(), logger), repository.NewPgTraitRepository(provider.Pool(), logger), nil
	}

	users, err := repository.OpenPgUserRepository(ctx, provider, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hold connection for users: %w", err)
	}
	traits, err := repository.OpenPgTraitRepository(ctx, provider, logger)
	if err != nil {
		users.Close()
		return nil, nil, fmt.Errorf("failed to hold connection for traits: %w", err)
	}
	zap.L().Info("User and trait repositories hold dedicated connections")
	return users, traits, nil
}

// setupPostgres connects to PostgreSQL, retrying while the server starts up.
func setupPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.Provider, error) {
	maxRetries := cfg.DBConnectRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		provider, err := database.Connect(ctx, cfg.Database(), logger)
		if err == nil {
			zap.L().Info("Connected to PostgreSQL", zap.Int("attempt", attempt))
			return provider, nil
		}
		lastErr = err
		zap.L().Warn("PostgreSQL connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis connects to Redis, retrying while the server starts up.
func setupRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	maxRetries := cfg.DBConnectRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	zap.L().Info("Attempting to connect to Redis", zap.String("address", redisOpts.Addr), zap.Int("db", redisOpts.DB))

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client := redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()
		if err == nil {
			zap.L().Info("Connected to Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = err
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}
