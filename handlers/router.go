// router.go - Builds the Gin engine with every route and middleware

package handlers

import (
	"log"
	"net/http"

	"go-commands-backend/apierrors"
	"go-commands-backend/middleware"
	"go-commands-backend/repository"
	"go-commands-backend/services"

	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	Auth           *services.AuthService
	Commands       *services.CommandService
	Tokens         middleware.TokenVerifier
	Users          repository.UserRepository
	AuthLimiter    *middleware.IPRateLimiter // nil disables rate limiting
	TrustedProxies []string                  // peers allowed to set X-Forwarded-For, nil trusts none
	Ping           func() error              // health check, nil means always healthy
	AccessLog      bool
}

func NewRouter(d Deps) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil { // Client IP feeds the auth rate limiter
		log.Printf("[router] invalid trusted proxies %v, trusting none: %v", d.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestID())
	if d.AccessLog {
		r.Use(middleware.Logger())
	}
	r.Use(middleware.Recovery(), middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apierrors.New(http.StatusNotFound, "resource not found"))
	})
	r.GET("/healthz", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Public routes (no authentication required)
	authHandler := NewAuthHandler(d.Auth)
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(d.AuthLimiter))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (require JWT authentication)
	commandHandler := NewCommandHandler(d.Commands)
	commands := r.Group("/commands")
	commands.Use(middleware.Auth(d.Tokens, d.Users))
	{
		commands.GET("", commandHandler.List)
		commands.POST("", commandHandler.Create)
		commands.GET("/:id", commandHandler.Get)
		commands.PUT("/:id", commandHandler.Update)
		commands.DELETE("/:id", commandHandler.Delete)
	}

	return r
}
