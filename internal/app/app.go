package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"teacher_portal_backend/internal/config"
	"teacher_portal_backend/internal/controller"
	"teacher_portal_backend/internal/fixture"
	"teacher_portal_backend/internal/repository"
	"teacher_portal_backend/internal/service"
	"teacher_portal_backend/pkg/configwatcher"
	"teacher_portal_backend/pkg/database"
	"teacher_portal_backend/pkg/logger"
	"teacher_portal_backend/pkg/monitoring"
	"teacher_portal_backend/pkg/security"
	"teacher_portal_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services       *services
	tracerProvider *sdktrace.TracerProvider

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	teacher      *repository.TeacherRepository
	viewSessions repository.ViewSessionRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	profile      *service.ProfileService
	viewSessions *service.ViewSessionService
}

type controllers struct {
	auth         *controller.AuthController
	teacher      *controller.TeacherController
	viewSessions *controller.ViewSessionController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		user:    repository.NewUserRepository(db),
		teacher: repository.NewTeacherRepository(db),
	}

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		repos.viewSessions = repository.NewRedisViewSessionRepository(rdb, cfg.Session.KeyPrefix)
	default:
		repos.viewSessions = repository.NewMemoryViewSessionRepository(time.Minute)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.profile = service.NewProfileService(repos.teacher, s.storage)
	s.viewSessions = service.NewViewSessionService(s.profile, repos.viewSessions, cfg.Session.TTL(), s.profile.PhotoURL)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	checks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		teacher:      controller.NewTeacherController(s.profile),
		viewSessions: controller.NewViewSessionController(s.viewSessions),
		health:       controller.NewHealthController(checks),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// seed imports the configured fixture into an empty teachers table.
func (a *App) seed(ctx context.Context, path string) error {
	profiles, err := fixture.Load(path)
	if err != nil {
		return err
	}
	n, err := a.services.profile.SeedIfEmpty(ctx, profiles)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Log.Info("Seeded teachers from fixture", zap.String("fixture", path), zap.Int("count", n))
	}
	return nil
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	var rdb *redis.Client
	if cfg.Session.Backend == config.SessionBackendRedis {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("initialize redis: %w", err)
		}
		app.Redis = rdb
	}

	repos := app.initRepositories(db, rdb, cfg)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services, db, rdb)

	if cfg.Seed.Fixture != "" {
		if err := app.seed(context.Background(), cfg.Seed.Fixture); err != nil {
			return nil, fmt.Errorf("seed teachers: %w", err)
		}
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracerProvider = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetLevel(c.Server.Mode)
		app.services.viewSessions.SetTTL(c.Session.TTL())
		logger.Log.Info("Applied reloaded config",
			zap.String("mode", c.Server.Mode),
			zap.Duration("sessionTTL", c.Session.TTL()),
		)
	})

	return app, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down within five seconds.
func (a *App) Run(configDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		path := filepath.Join(configDir, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, path, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return nil
}

func (a *App) Close(ctx context.Context) {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
