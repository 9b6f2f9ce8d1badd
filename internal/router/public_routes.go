package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/visapath/content-service/internal/config"
	"github.com/visapath/content-service/internal/handler"
	"github.com/visapath/content-service/internal/middleware"
)

// RegisterPublic registers the unauthenticated read surface.  These
// endpoints sit behind the Redis response cache; with caching disabled or
// Redis unavailable the middleware degrades to a pass-through.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.NewResponseCache(cacheCfg, rdb))

	g.GET("/articles", p.GetArticles)
	g.GET("/articles/:slug", p.GetArticleBySlug)
	g.GET("/meta", p.GetMeta)
	g.GET("/destinations", p.GetDestinations)
	g.GET("/origins", p.GetOrigins)
	g.GET("/visa-types", p.GetVisaTypes)
	g.GET("/categories", p.GetCategories)
	g.GET("/checklists", p.GetChecklists)
}
