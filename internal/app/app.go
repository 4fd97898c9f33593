package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/auth"
	"github.com/MasCreaThor/plataforma/internal/category"
	"github.com/MasCreaThor/plataforma/internal/config"
	"github.com/MasCreaThor/plataforma/internal/dashboard"
	"github.com/MasCreaThor/plataforma/internal/knowledge"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
	"github.com/MasCreaThor/plataforma/internal/redis"
	"github.com/MasCreaThor/plataforma/internal/resource"
	"github.com/MasCreaThor/plataforma/internal/tag"
	"github.com/MasCreaThor/plataforma/internal/version"
)

// App wires the client stack together and dispatches CLI commands.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	tokens *auth.FileStore
	client *api.Client
	auth   *auth.Manager

	cache     *query.Cache
	memStore  *query.MemoryStore
	redisConn *goredis.Client

	categories *category.Service
	knowledge  *knowledge.Service
	resources  *resource.Service
	tags       *tag.Service
	dashboard  *dashboard.Service
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	tokens := auth.NewFileStore(cfg.CredentialsFile)

	// Query cache backend. Redis is optional; when it is not configured,
	// or the connection fails, the cache is memory-only and the CLI still
	// works.
	var (
		cacheStore query.Store
		memStore   *query.MemoryStore
		redisConn  *goredis.Client
	)
	if cfg.RedisAddr != "" {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Warn("redis unavailable, query cache is memory-only",
				logger.Error(err))
		} else {
			redisConn = client
			cacheStore = query.NewRedisStore(client)
		}
	}
	if cacheStore == nil {
		memStore = query.NewMemoryStore()
		cacheStore = memStore
	}
	cache := query.New(cacheStore, cfg.CacheTTL, loggerClient)

	apiClient := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired, run `plataforma login` to sign in again")
		},
	}, tokens, loggerClient)

	authManager := auth.NewManager(apiClient, tokens, loggerClient, func(r auth.Route) {
		if r == auth.RouteLogin {
			fmt.Fprintln(os.Stderr, "run `plataforma login` to sign in")
		}
	})

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		tokens:     tokens,
		client:     apiClient,
		auth:       authManager,
		cache:      cache,
		memStore:   memStore,
		redisConn:  redisConn,
		categories: category.NewService(apiClient, cache, loggerClient),
		knowledge:  knowledge.NewService(apiClient, cache, loggerClient),
		resources:  resource.NewService(apiClient, cache, loggerClient),
		tags:       tag.NewService(apiClient, cache, loggerClient),
		dashboard:  dashboard.NewService(apiClient, cache, loggerClient),
	}
}

func (a *App) Run() error {
	defer func() {
		if a.redisConn != nil {
			_ = a.redisConn.Close()
		}
		_ = a.logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami(ctx)
	case "categories":
		return a.cmdCategories(ctx, args[1:])
	case "knowledge":
		return a.cmdKnowledge(ctx, args[1:])
	case "resources":
		return a.cmdResources(ctx, args[1:])
	case "tags":
		return a.cmdTags(ctx, args[1:])
	case "dashboard":
		return a.cmdDashboard(ctx, args[1:])
	case "import":
		return a.cmdImport(ctx, args[1:])
	case "version":
		fmt.Printf("plataforma %s (commit %s, built %s, %s)\n",
			version.Version, version.Commit, version.BuildDate, version.GoVersion)
		return nil
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) usage() {
	fmt.Print(`plataforma - personal knowledge and resource dashboard

Usage:
  plataforma <command> [arguments]

Session:
  login       sign in and persist the session
  register    create an account and sign in
  logout      discard the local session
  whoami      show the signed-in user

Data:
  categories  list | tree | get | children | create | update | delete
  knowledge   list | get | create | update | delete | use | related | link | unlink
  resources   list | get | create | upload | update | delete | use
  tags        list aggregated tags
  dashboard   show stats (use --watch to keep refreshing)
              config [-theme] | widget add | update | remove
  import      bulk-import a seed YAML file

Other:
  version     print build information
`)
}

// requireAuth restores the persisted session and fails the command when no
// valid session exists.
func (a *App) requireAuth(ctx context.Context) error {
	a.auth.Initialize(ctx)
	if a.auth.State() != auth.StateAuthenticated {
		return fmt.Errorf("not signed in, run `plataforma login` first")
	}
	return nil
}
