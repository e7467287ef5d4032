package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gdugdh24/opportunity-matcher/internal/config"
	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http"
	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http/handler"
	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http/middleware"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/database"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/events"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/gemini"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/server"
	"github.com/gdugdh24/opportunity-matcher/internal/repository"
	"github.com/gdugdh24/opportunity-matcher/internal/repository/cache"
	"github.com/gdugdh24/opportunity-matcher/internal/repository/postgres"
	"github.com/gdugdh24/opportunity-matcher/internal/repository/sqlite"
	"github.com/gdugdh24/opportunity-matcher/internal/usecase/matching"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Gemini   *gemini.GeminiClient
	Matching *matching.MatchingUseCase
	Server   *server.Server
}

type repositories struct {
	profiles      repository.ProfileRepository
	opportunities repository.OpportunityRepository
	matches       repository.MatchRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	// Initialize database and repositories
	repos, err := c.initStorage(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	var opts []matching.Option
	opts = append(opts, matching.WithLogger(logger))

	// Initialize Redis
	if cfg.Redis.Enabled {
		c.Redis, err = database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		repos.opportunities = cache.NewOpportunityCache(repos.opportunities, c.Redis, cfg.Redis.CacheTTL, logger)
		opts = append(opts, matching.WithPublisher(events.NewRedisPublisher(c.Redis, cfg.Redis.EventsChannel)))
	}

	// Initialize Gemini Client
	if cfg.AI.Enabled {
		c.Gemini, err = gemini.NewGeminiClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			// Don't fail, just continue with rule-based reasoning
			logger.Warn("gemini client unavailable", zap.Error(err))
		} else {
			opts = append(opts, matching.WithExplainer(c.Gemini))
		}
	}

	// Initialize use cases
	c.Matching = matching.NewMatchingUseCase(
		repos.profiles,
		repos.opportunities,
		repos.matches,
		matching.Settings{
			Threshold:       cfg.Matching.Threshold,
			TopN:            cfg.Matching.TopN,
			Workers:         cfg.Matching.Workers,
			ConcurrentFetch: cfg.Matching.ConcurrentFetch,
			PersistMode:     cfg.Matching.PersistMode,
		},
		opts...,
	)

	// Initialize handlers, middleware and router
	matchingHandler := handler.NewMatchingHandler(c.Matching)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)
	if !authMiddleware.Enabled() {
		logger.Warn("JWT_ACCESS_SECRET is empty, /api/v1 is not authenticated")
	}

	router := http.NewRouter(matchingHandler, authMiddleware, logger)
	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) (*repositories, error) {
	switch c.Config.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, c.Config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &repositories{
			profiles:      sqlite.NewProfileRepository(db),
			opportunities: sqlite.NewOpportunityRepository(db),
			matches:       sqlite.NewMatchRepository(db),
		}, nil
	default:
		db, err := database.NewPostgresDB(ctx, &c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &repositories{
			profiles:      postgres.NewProfileRepository(db),
			opportunities: postgres.NewOpportunityRepository(db),
			matches:       postgres.NewMatchRepository(db),
		}, nil
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn("closing gemini client", zap.Error(err))
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("closing redis", zap.Error(err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
