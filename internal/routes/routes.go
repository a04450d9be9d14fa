package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/handler"
	"github.com/lumenhq/lumen-backend/internal/middleware"
	"github.com/lumenhq/lumen-backend/pkg/jwt"
	"github.com/redis/go-redis/v9"
)

// Handlers groups every HTTP handler wired by Setup
type Handlers struct {
	Auth         *handler.AuthHandler
	Applications *handler.ApplicationHandler
	Posts        *handler.PostHandler
	Projects     *handler.ProjectHandler
	Users        *handler.UserHandler
	Claims       *handler.ClaimHandler
	Moderation   *handler.ModerationHandler
	Chat         *handler.ChatHandler
	Search       *handler.SearchHandler
	Health       *handler.HealthHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, redisClient *redis.Client) {
	router.GET("/healthz", h.Health.Healthz)

	api := router.Group("/api/v1")

	// Authentication (tight rate limit, no auth required)
	auth := api.Group("/auth", middleware.RateLimit(redisClient, middleware.AuthRateLimitConfig()))
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", middleware.JWTAuth(jwtManager), h.Auth.Me)

	// Join applications (public submit)
	api.POST("/applications", h.Applications.Submit)

	// Posts
	posts := api.Group("/posts")
	posts.GET("", h.Posts.ListPublic)
	posts.GET("/:id", h.Posts.Get)
	posts.POST("", middleware.JWTAuth(jwtManager), h.Posts.Create)

	// Projects
	projects := api.Group("/projects")
	projects.GET("", h.Projects.ListPublic)
	projects.GET("/:id", h.Projects.Get)
	projects.POST("", middleware.JWTAuth(jwtManager), h.Projects.Create)

	// Claims (public submit)
	api.POST("/claims", h.Claims.Submit)

	// Full-text search
	api.GET("/search", h.Search.Search)

	// Chat
	chat := api.Group("/chat")
	chat.GET("/ws", h.Chat.Connect)
	chat.GET("/messages", middleware.JWTAuth(jwtManager), h.Chat.Messages)

	// Admin console (bearer + admin role)
	admin := api.Group("/admin", middleware.JWTAuth(jwtManager), middleware.RequireAdmin())

	admin.GET("/applications", h.Applications.List)
	admin.GET("/applications/:id", h.Applications.Get)
	admin.PUT("/applications/:id/moderate", h.Moderation.Moderate(domain.EntityApplication))

	admin.GET("/posts", h.Posts.List)
	admin.PUT("/posts/:id/moderate", h.Moderation.Moderate(domain.EntityPost))
	admin.DELETE("/posts/:id", h.Moderation.DeletePost)

	admin.GET("/projects", h.Projects.List)
	admin.PUT("/projects/:id/moderate", h.Moderation.Moderate(domain.EntityProject))

	admin.GET("/users", h.Users.List)
	admin.PUT("/users/:id/moderate", h.Moderation.Moderate(domain.EntityUser))

	admin.GET("/claims", h.Claims.List)
	admin.GET("/claims/:id", h.Claims.Get)
	admin.PUT("/claims/:id/moderate", h.Moderation.Moderate(domain.EntityClaim))
	admin.POST("/claims/bulk", h.Moderation.BulkClaims)
}
