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

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fitChallengeAPI/handlers"
	"fitChallengeAPI/internal/config"
	"fitChallengeAPI/internal/events"
	"fitChallengeAPI/internal/session"
	"fitChallengeAPI/internal/storage/memory"
	"fitChallengeAPI/internal/storage/postgres"
	"fitChallengeAPI/internal/views"
	"fitChallengeAPI/middleware"
	"fitChallengeAPI/services"
)

// store is what the services need from a storage backend.
type store interface {
	services.UserRepository
	services.ChallengeRepository
	services.ShareRepository
	Ping(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	}
	return zcfg.Build()
}

func run() error {
	cfg, loadedDotEnv := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if !loadedDotEnv {
		logger.Info("no .env file found, using process environment")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend store
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.PoolOptions{
			MaxConns:          int32(cfg.DBMaxConns),
			MinConns:          int32(cfg.DBMinConns),
			MaxConnLifetime:   cfg.DBMaxConnLifetime,
			MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
			HealthCheckPeriod: time.Minute,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer func() {
			logger.Info("closing database connection pool")
			db.Close()
		}()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("connected to postgres")
		backend = postgres.NewRepository(db)
	default:
		logger.Warn("using in-memory store, data is lost on restart")
		backend = memory.New()
	}

	var sessionStore session.Store
	switch cfg.SessionDriver {
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		sessionStore = session.NewRedisStore(client, "sess:")
		if err := sessionStore.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	default:
		logger.Warn("using in-memory session store")
		sessionStore = session.NewMemoryStore()
	}

	sessions := session.NewManager(sessionStore, []byte(cfg.SessionSecret), session.CookieConfig{
		Domain: cfg.RootDomain,
		Secure: cfg.SecureCookie,
		TTL:    cfg.SessionTTL,
	})

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.Info("publishing challenge events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close publisher", zap.Error(err))
		}
	}()

	identityService := services.NewIdentityService(backend, logger)
	challengeService := services.NewChallengeService(backend, publisher, logger)
	shareService := services.NewShareService(backend, challengeService, publisher, cfg.PublicBaseURL, logger)
	workflow := services.NewCreationWorkflow(challengeService, shareService, logger)

	middleware.InitPrometheus()

	r := handlers.NewRouter(handlers.Deps{
		Sessions:      sessions,
		Identity:      identityService,
		Challenges:    challengeService,
		Shares:        shareService,
		Workflow:      workflow,
		Renderer:      views.NewRenderer(cfg.WebHost),
		PublicBaseURL: cfg.PublicBaseURL,
		HealthChecks: []handlers.HealthCheck{
			{Name: "store", Ping: backend.Ping},
			{Name: "sessions", Ping: sessions.Ping},
		},
		MetricsUser: cfg.MetricsUser,
		MetricsPass: cfg.MetricsPass,
		Logger:      logger,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx)

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins(cfg.CORSOrigins),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Accept"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length", "Location"}),
		gorilllaHandlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler(limiter.Middleware(r)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server shutdown complete")
	return nil
}
