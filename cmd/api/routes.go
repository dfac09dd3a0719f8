package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"inmofeed/internal/middleware"
	"inmofeed/pkg/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupCORS configures CORS middleware
func setupCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	allowedOrigins := []string{"http://localhost:3000"}

	if os.Getenv("ENV") == "production" {
		corsConfig.AllowAllOrigins = false
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}

	corsConfig.AllowMethods = []string{"GET", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}

func (a *App) initializeRouter() {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a.Router = gin.New()
	a.Router.Use(gin.Recovery())
	a.Router.Use(setupCORS())
	a.Router.Use(middleware.RequestID())
	a.Router.Use(middleware.Logging())
	a.Router.Use(middleware.RateLimit(a.RateLimiter))

	a.setupRoutes()
}

func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.setupMetrics()
	a.setupAPIRoutes()
}

func (a *App) setupMetrics() {
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck reports the cache backend's reachability. Provider
// availability is per tenant and exposed under the feed status route.
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		if redis, ok := a.Backend.(*cache.RedisBackend); ok {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if err := redis.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		feed := api.Group("/feed/:tenant")
		{
			feed.GET("/search", a.FeedHandler.Search)
			feed.GET("/properties/:reference", a.FeedHandler.Property)
			feed.GET("/properties/:reference/similar", a.FeedHandler.Similar)
			feed.GET("/locations", a.FeedHandler.Locations)
			feed.GET("/property-types", a.FeedHandler.PropertyTypes)
			feed.GET("/filter-options", a.FeedHandler.FilterOptions)
			feed.GET("/status", a.FeedHandler.Status)
			feed.DELETE("/cache", a.FeedHandler.InvalidateCache)
		}
	}
}
