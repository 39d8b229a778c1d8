package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"codeclock/api/internal/config"
	"codeclock/api/internal/middleware"
	"codeclock/api/internal/repository"
	"codeclock/api/internal/service"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	authService  *service.AuthService
	setupService *service.SetupService
	userService  *service.UserService
	users        service.CredentialStore
	db           *pgxpool.Pool
	cache        *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		authService:  service.NewAuthService(userRepo, cfg, log),
		setupService: service.NewSetupService(userRepo, cfg, log),
		userService:  service.NewUserService(userRepo, cfg, log),
		users:        userRepo,
		db:           db,
		cache:        cache,
	}
}

// Register wires the route tree. Pre-bootstrap reachability is expressed by
// composition: health and setup endpoints sit outside the first-run gate,
// everything else goes through it.
func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	setup := router.Group("/setup")
	setup.GET("", h.SetupStatus)
	setup.POST("/register", h.SetupRegister)

	gated := router.Group("")
	gated.Use(middleware.FirstRun(h.users, h.cfg.Auth.SetupURL))

	throttled := func(name string) gin.HandlerFunc {
		return middleware.RateLimit(h.cache, h.log, name, h.cfg.Throttle.Limit, h.cfg.Throttle.Window)
	}

	auth := gated.Group("/auth")
	auth.POST("/login", throttled("login"), h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.POST("/change-password",
		throttled("change-password"),
		middleware.Auth(h.cfg),
		h.ChangePassword,
	)

	users := gated.Group("/users")
	users.Use(middleware.Auth(h.cfg), middleware.RequireAdmin(h.users))
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.PATCH("/:id/admin", h.SetUserAdmin)
}
