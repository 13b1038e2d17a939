package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	redisKeyPrefix = "maze"
	startupTimeout = 60 * time.Second
)

// app holds the dependencies wired by serve.
type app struct {
	cfg         config.Config
	logger      *logrus.Entry
	store       i.MazeStore
	locker      i.Locker
	mazeService i.MazeService
	tokenizer   i.Tokenizer
	router      *api.Router
	closers     []func()
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the maze HTTP API",
		Long: `Run the maze HTTP API configured from the environment or a .env file.

Generated documents are kept in memory, Redis or MongoDB depending on
STORE_BACKEND. JWT_SECRET must be set.`,
		RunE: runServe,
	})
}

func (a *app) initStore(ctx context.Context) error {
	storeLogger := config.NewLogger(config.LogStore, a.cfg.LogLevel, os.Stdout)
	ttl := time.Duration(a.cfg.StoreTTLSeconds) * time.Second

	switch a.cfg.StoreBackend {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })

		store := cache.NewRedisMazeStore(client, redisKeyPrefix, a.cfg.StoreTTLSeconds)
		a.store, a.locker = store, store
		storeLogger.WithField("addr", a.cfg.RedisAddr).Info("Connected to Redis")

	case config.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.cfg.MongoURI()))
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB ping failed: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })

		store := repo.NewMazeRepo(client, a.cfg.DBName, a.cfg.DBCollection)
		if err := store.EnsureTTLIndex(ctx, ttl); err != nil {
			return fmt.Errorf("creating TTL index: %w", err)
		}
		a.store, a.locker = store, repo.NewKeyLocker()
		storeLogger.WithField("db", a.cfg.DBName).Info("Connected to MongoDB")

	default:
		a.store, a.locker = repo.NewMemoryRepo(ttl), repo.NewKeyLocker()
		storeLogger.Info("Using in-memory store")
	}
	return nil
}

func (a *app) initMazeService() error {
	var err error
	a.mazeService, err = service.NewMazeService(&service.Options{
		Store:        a.store,
		Locker:       a.locker,
		Logger:       config.NewLogger(config.LogService, a.cfg.LogLevel, os.Stdout),
		MaxDimension: a.cfg.MaxDimension,
	})
	if err != nil {
		return fmt.Errorf("creating maze service: %w", err)
	}
	a.logger.Info("Maze service initialized")
	return nil
}

func (a *app) initJWTTokenizer() {
	a.tokenizer = token.NewJwtService(a.cfg.JWTSecret, a.cfg.JWTIssuer)
	a.logger.Info("JWT Tokenizer initialized")
}

func (a *app) initRouter() {
	gin.SetMode(a.cfg.GinMode)
	a.router = api.NewRouter(api.Config{
		Addr:                    a.cfg.Addr(),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeapi.NewMazeController(a.mazeService)},
		AuthorizationMiddleware: identity.Authorize(a.tokenizer),
		Logger:                  a.logger,
	})
	a.logger.Info("Router initialized")
}

func (a *app) close() {
	for k := len(a.closers) - 1; k >= 0; k-- {
		a.closers[k]()
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a := &app{
		cfg:    cfg,
		logger: config.NewLogger(config.LogApp, cfg.LogLevel, os.Stdout),
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), startupTimeout)
	defer cancel()

	if err := a.initStore(ctx); err != nil {
		return err
	}
	if err := a.initMazeService(); err != nil {
		return err
	}
	a.initJWTTokenizer()
	a.initRouter()

	if err := a.router.Run(); err != nil {
		a.logger.WithError(err).Error("Starting server")
		return err
	}
	return nil
}
