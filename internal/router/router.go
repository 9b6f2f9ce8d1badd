package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/visapath/content-service/internal/config"
	"github.com/visapath/content-service/internal/handler"
	"github.com/visapath/content-service/internal/middleware"
)

// RegisterRoutes registers routes that never require authentication or
// caching.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the admin authentication routes.  Login and
// logout live under /v1/auth without token protection; login additionally
// sits behind the Redis rate limiter.  /v1/admin/me is registered by
// RegisterAdmin alongside the rest of the admin surface.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login, middleware.NewLoginRateLimit(rlCfg, rdb))
	g.POST("/logout", a.Logout)
	// /v1/auth/me mirrors /v1/admin/me for clients that only know the auth
	// prefix; it needs a valid token but no role check.
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}
