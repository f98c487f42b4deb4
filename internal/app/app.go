package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/staffdash/internal/bookmarks"
	"github.com/MrSnakeDoc/staffdash/internal/config"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/ws"
	"github.com/MrSnakeDoc/staffdash/internal/index"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/redis"
	"github.com/MrSnakeDoc/staffdash/internal/scheduler"
	"github.com/MrSnakeDoc/staffdash/internal/search"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
	"github.com/MrSnakeDoc/staffdash/internal/sources/dummyjson"
	"github.com/MrSnakeDoc/staffdash/internal/sources/roster"
	redisstore "github.com/MrSnakeDoc/staffdash/internal/store/redis"
	"github.com/MrSnakeDoc/staffdash/internal/store/sqlstore"
	"github.com/MrSnakeDoc/staffdash/internal/utils"
	"github.com/MrSnakeDoc/staffdash/internal/version"
)

// initTimeout bounds startup I/O (redis, sql, bookmark load, snapshot seed).
const initTimeout = 45 * time.Second

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	sqlDB       *sqlstore.DB
	reloader    *scheduler.RosterReloader
	hub         *ws.Hub
	unsubscribe func()
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	// Redis is optional unless it holds the bookmarks.
	var redisClient *goredis.Client
	if cfg.RedisEnabled {
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		switch {
		case err == nil:
			redisClient = client
		case cfg.BookmarkBackend == config.BackendRedis:
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		default:
			loggerClient.Warn("redis unavailable, roster snapshots disabled", logger.Error(err))
		}
	}

	slot, sqlDB, err := openSlot(ctx, cfg, redisClient)
	if err != nil {
		loggerClient.Errorf("Failed to open bookmark storage: %v", err)
		os.Exit(1)
	}
	store := bookmarks.New(ctx, slot, loggerClient)

	rosterIndex := index.NewRoster()

	// Seed the roster from the last snapshot so the API answers while the
	// upstream is unreachable.
	var (
		snapshots     scheduler.SnapshotStore
		snapshotStore *redisstore.Store
	)
	if redisClient != nil {
		snapshotStore = redisstore.NewStore(redisClient)
		snapshots = snapshotStore
		syncer := scheduler.NewRedisSyncer(snapshots, rosterIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to seed roster from redis, waiting for the source",
				logger.Error(err))
		}
	}

	source := newSource(cfg)
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewRosterReloader(
		source,
		snapshots,
		rosterIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	hub := ws.NewHub(store.List, loggerClient)
	unsubscribe := store.Subscribe(hub.OnBookmarkChange)

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Roster:          rosterIndex,
		Bookmarks:       store,
		Source:          source,
		Sessions:        search.NewSessions(cfg.MaxSessions, cfg.SessionTTL),
		Hub:             hub,
		Snapshots:       snapshotStore,
		SQL:             sqlDB,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		sqlDB:       sqlDB,
		reloader:    reloader,
		hub:         hub,
		unsubscribe: unsubscribe,
	}
}

// openSlot picks the bookmark persistence backend. The returned DB is non-nil
// only for the SQL backends.
func openSlot(ctx context.Context, cfg *config.Config, redisClient *goredis.Client) (bookmarks.Slot, *sqlstore.DB, error) {
	switch cfg.BookmarkBackend {
	case config.BackendRedis:
		return redisstore.NewBookmarkSlot(redisClient), nil, nil
	case config.BackendSQLite, config.BackendPostgres:
		db, err := sqlstore.Open(ctx, sqlstore.Dialect(cfg.BookmarkBackend), cfg.SQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", cfg.BookmarkBackend, err)
		}
		return sqlstore.NewBookmarkSlot(db, ""), db, nil
	case config.BackendMemory:
		return bookmarks.NewMemorySlot(), nil, nil
	default:
		return bookmarks.NewFileSlot(cfg.BookmarkFile), nil, nil
	}
}

func newSource(cfg *config.Config) sources.Source {
	if cfg.Source == config.SourceRoster {
		return roster.NewLoader(cfg.RosterFile)
	}
	return dummyjson.NewClient(cfg.SourceURL, cfg.FetchLimit, cfg.FetchTimeout)
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting staffdash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("staffdash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.hub.Run(ctx)

	// Loads the roster once, then refreshes periodically
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start roster reloader: %w", err)
	}
	a.logger.Info("roster reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	a.unsubscribe()

	if a.sqlDB != nil {
		utils.CloseLogged(a.sqlDB, "sql", a.logger)
	}
	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("✅ staffdash stopped cleanly")
	return nil
}
