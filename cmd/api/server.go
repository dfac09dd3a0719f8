package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inmofeed/pkg/cache"
	"inmofeed/pkg/logger"
)

// InitializeServer creates the HTTP server around the router.
func (a *App) InitializeServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Addr(),
		Handler:      a.Router,
		ReadTimeout:  time.Duration(a.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.Config.Server.WriteTimeout) * time.Second,
	}
}

// StartServer runs the server until SIGINT or SIGTERM, then drains.
func (a *App) StartServer() {
	go func() {
		logger.GlobalLogger.Printf("Starting server on %s", a.Config.Addr())
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GlobalLogger.Errorf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	a.shutdownServer()
}

func (a *App) shutdownServer() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GlobalLogger.Println("Shutting down server...")

	timeout := time.Duration(a.Config.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		logger.GlobalLogger.Errorf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if redis, ok := a.Backend.(*cache.RedisBackend); ok {
		if err := redis.Close(); err != nil {
			logger.GlobalLogger.Errorf("Failed to close Redis: %v", err)
		}
	}

	logger.GlobalLogger.Println("Server exited")
}
