package main

import (
	"net/http"
	"os"
	"strings"

	"inmofeed/internal/handlers"
	"inmofeed/internal/middleware"
	"inmofeed/internal/providers"
	"inmofeed/internal/providers/kyero"
	"inmofeed/internal/providers/resales"
	"inmofeed/internal/tenant"
	"inmofeed/pkg/cache"
	"inmofeed/pkg/config"
	"inmofeed/pkg/logger"
	"inmofeed/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App wires configuration, the cache backend, the provider registry and
// the web layer together.
type App struct {
	Config      *config.Config
	Router      *gin.Engine
	Backend     cache.Backend
	Tenants     tenant.Store
	FeedHandler *handlers.FeedHandler
	RateLimiter *middleware.RateLimiter
	Server      *http.Server
}

func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	app.initializeMetrics()
	app.initializeProviders()
	app.initializeCache()
	app.initializeTenants()
	app.initializeRateLimiter()
	app.initializeDependencies()
	app.initializeRouter()

	return app
}

func (a *App) initializeMetrics() {
	metrics.Init()
}

// initializeProviders registers every provider integration this build
// ships. Tenants select one by name.
func (a *App) initializeProviders() {
	providers.Register(resales.Definition())
	providers.Register(kyero.Definition())
}

func (a *App) initializeCache() {
	if strings.ToLower(a.Config.Cache.Backend) == "redis" {
		backend, err := cache.NewRedisBackend(cache.RedisConfig{
			Host:     a.Config.Redis.Host,
			Port:     a.Config.Redis.Port,
			Password: a.Config.Redis.Password,
			DB:       a.Config.Redis.DB,
		})
		if err != nil {
			logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
			os.Exit(1)
		}
		a.Backend = backend
		return
	}
	a.Backend = cache.NewMemoryBackend()
}

func (a *App) initializeTenants() {
	a.Tenants = tenant.NewConfigStore(a.Config.Tenants)
	logger.GlobalLogger.Printf("Loaded %d tenants", len(a.Config.Tenants))
}

func (a *App) initializeRateLimiter() {
	rps := a.Config.Server.RateLimitRPS
	if rps < 1 {
		rps = 50
	}
	burst := a.Config.Server.RateLimitBurst
	if burst < 1 {
		burst = rps * 2
	}
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(rps), burst)
	go a.RateLimiter.Cleanup()
}

func (a *App) initializeDependencies() {
	a.FeedHandler = handlers.NewFeedHandler(a.Tenants, a.Backend, a.Config.Cache.Scope)
}
