package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lumenhq/lumen-backend/internal/config"
	"github.com/lumenhq/lumen-backend/internal/handler"
	"github.com/lumenhq/lumen-backend/internal/middleware"
	"github.com/lumenhq/lumen-backend/internal/migration"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/internal/routes"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/internal/ws"
	pkgcache "github.com/lumenhq/lumen-backend/pkg/cache"
	pkges "github.com/lumenhq/lumen-backend/pkg/elasticsearch"
	"github.com/lumenhq/lumen-backend/pkg/jwt"
	pkglogger "github.com/lumenhq/lumen-backend/pkg/logger"
	pkgredis "github.com/lumenhq/lumen-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis (optional: cache, rate limit and chat fan-out degrade without it)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	// Elasticsearch (optional)
	var searchService *service.SearchService
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, esErr := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			pkglogger.Warn("Elasticsearch connection failed: %v (continuing without search)", esErr)
		} else {
			pkglogger.Info("Connected to Elasticsearch")
			searchService = service.NewSearchService(esClient)
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL.Std(), cfg.JWT.RefreshTokenTTL.Std())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	postRepo := repository.NewPostRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Chat hub
	hub := ws.NewHub(redisClient)
	go hub.Run()
	defer hub.Stop()

	// Services
	mailer := service.NewMailer(cfg)
	authService := service.NewAuthService(userRepo, jwtManager)
	applicationService := service.NewApplicationService(applicationRepo, cacheService)
	postService := service.NewPostService(postRepo, cacheService, searchService)
	projectService := service.NewProjectService(projectRepo, cacheService)
	userService := service.NewUserService(userRepo, cacheService)
	claimService := service.NewClaimService(claimRepo, cacheService)
	chatService := service.NewChatService(chatRepo, hub)
	moderationService := service.NewModerationService(
		applicationRepo, postRepo, projectRepo, userRepo, claimRepo, mailer, cacheService)

	// HTTP
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Setup(router, routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Applications: handler.NewApplicationHandler(applicationService),
		Posts:        handler.NewPostHandler(postService),
		Projects:     handler.NewProjectHandler(projectService),
		Users:        handler.NewUserHandler(userService),
		Claims:       handler.NewClaimHandler(claimService),
		Moderation:   handler.NewModerationHandler(moderationService),
		Chat:         handler.NewChatHandler(chatService, hub, jwtManager),
		Search:       handler.NewSearchHandler(searchService),
		Health:       handler.NewHealthHandler(db, redisClient),
	}, jwtManager, redisClient)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Env == "local" || cfg.Server.Env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
