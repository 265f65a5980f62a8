package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"awards-backend/internal/config"
	infraCache "awards-backend/internal/infrastructure/cache"
	"awards-backend/internal/infrastructure/database"
	"awards-backend/internal/infrastructure/queue"
	"awards-backend/internal/shared/identity"
	"awards-backend/pkg/cache"
	"awards-backend/pkg/jwt"
	"awards-backend/pkg/logger"

	adminHandler "awards-backend/internal/domains/admin/handler"
	adminService "awards-backend/internal/domains/admin/service"
	categoryHandler "awards-backend/internal/domains/category/handler"
	categoryRepo "awards-backend/internal/domains/category/repository"
	categoryService "awards-backend/internal/domains/category/service"
	engagementHandler "awards-backend/internal/domains/engagement/handler"
	engagementRepo "awards-backend/internal/domains/engagement/repository"
	engagementService "awards-backend/internal/domains/engagement/service"
	nominationHandler "awards-backend/internal/domains/nomination/handler"
	nominationRepo "awards-backend/internal/domains/nomination/repository"
	nominationService "awards-backend/internal/domains/nomination/service"
	voteHandler "awards-backend/internal/domains/vote/handler"
	voteRepo "awards-backend/internal/domains/vote/repository"
	voteService "awards-backend/internal/domains/vote/service"
)

const cacheKeyPrefix = "awards:"

// fallbackCacheTTL caps cache lifetimes when each replica holds its own
// in-memory copy.
const fallbackCacheTTL = 10 * time.Second

// cacheTTL returns the configured TTL, capped when the cache is process-local
func cacheTTL(configured time.Duration, shared bool) time.Duration {
	if shared {
		return configured
	}
	if configured <= 0 || configured > fallbackCacheTTL {
		return fallbackCacheTTL
	}
	return configured
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and cmd/seed
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache // Redis, or in-process when Redis is down at startup
	sharedCache bool
	QueueClient *asynq.Client
	JWTManager  *jwt.Manager
	Resolver    identity.Resolver

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CategoryRepo   categoryRepo.CategoryRepository
	VoteRepo       voteRepo.VoteRepository
	NominationRepo nominationRepo.NominationRepository
	EngagementRepo engagementRepo.EngagementRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	CategoryService   categoryService.ServiceInterface
	VoteService       voteService.ServiceInterface
	NominationService nominationService.ServiceInterface
	EngagementService engagementService.ServiceInterface
	AdminService      adminService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	CategoryHandler   *categoryHandler.CategoryHandler
	VoteHandler       *voteHandler.VoteHandler
	NominationHandler *nominationHandler.NominationHandler
	EngagementHandler *engagementHandler.EngagementHandler
	AdminHandler      *adminHandler.AdminHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes, in order: config, database, cache, queue client,
// repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", map[string]interface{}{})
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{
		"environment":     cfg.App.Environment,
		"identity_scheme": cfg.Voting.IdentityScheme,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	// Redis failure is not critical: caches fall back to process memory
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", map[string]interface{}{"error": err.Error()})
		c.Cache = cache.NewMemoryCache()
	} else {
		c.Cache = infraCache.NewRedisCache(c.Redis.Client, cacheKeyPrefix)
		c.sharedCache = true
	}

	// ========================================
	// STEP 4: QUEUE CLIENT, TOKENS, IDENTITY
	// ========================================
	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.SessionExpiry)

	c.Resolver, err = identity.NewResolver(cfg.Voting)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init identity resolver: %w", err)
	}

	// ========================================
	// STEP 5: REPOSITORIES / SERVICES / HANDLERS
	// ========================================
	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.initHandlers()

	logger.Info("DI container initialized", map[string]interface{}{})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	c.CategoryRepo = categoryRepo.NewPostgresCategoryRepository(pool)
	c.VoteRepo = voteRepo.NewPostgresVoteRepository(pool)
	c.NominationRepo = nominationRepo.NewPostgresNominationRepository(pool)
	c.EngagementRepo = engagementRepo.NewPostgresEngagementRepository(pool)
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.CategoryService = categoryService.NewCategoryService(
		c.CategoryRepo,
		c.Cache,
		cacheTTL(cfg.Voting.SnapshotCacheTTL, c.sharedCache),
	)

	c.VoteService = voteService.NewVoteService(
		c.VoteRepo,
		c.CategoryService,
		c.Cache,
		c.QueueClient,
		voteService.Config{
			TallyCacheTTL:    cacheTTL(cfg.Voting.TallyCacheTTL, c.sharedCache),
			ReconcileTimeout: cfg.Voting.ReconcileTimeout,
		},
	)

	c.NominationService = nominationService.NewNominationService(c.NominationRepo, c.CategoryService, c.QueueClient)
	c.EngagementService = engagementService.NewEngagementService(c.EngagementRepo, c.CategoryService)

	admin, err := adminService.NewAdminService(cfg.Admin, c.JWTManager)
	if err != nil {
		return err
	}
	c.AdminService = admin
	return nil
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.VoteHandler = voteHandler.NewVoteHandler(c.VoteService, c.Resolver)
	c.NominationHandler = nominationHandler.NewNominationHandler(c.NominationService)
	c.EngagementHandler = engagementHandler.NewEngagementHandler(c.EngagementService, c.Resolver)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService, c.Config.JWT.CookieSecure)
}

// ========================================
// HELPER METHODS
// ========================================

// HealthCheck reports per-dependency status. Only the database is fatal.
func (c *Container) HealthCheck(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"database": "up", "redis": "up"}
	healthy := true

	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = "down"
		healthy = false
	}
	if c.Redis == nil || c.Redis.HealthCheck(ctx) != nil {
		status["redis"] = "down"
	}
	return status, healthy
}

// Cleanup releases connections; called on graceful shutdown
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Error("Failed to close queue client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}
	logger.Info("Container cleanup completed", map[string]interface{}{})
}
