// Command authd runs the authentication service: credential registration,
// login, and bearer-token protected identity lookup over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth"
	"github.com/skillsenselab/authd/auth/jwt"
	"github.com/skillsenselab/authd/auth/password"
	"github.com/skillsenselab/authd/config"
	"github.com/skillsenselab/authd/database"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/observability"
	"github.com/skillsenselab/authd/server"
	"github.com/skillsenselab/authd/server/endpoint"
	"github.com/skillsenselab/authd/server/middleware"
	"github.com/skillsenselab/authd/users"
	"github.com/skillsenselab/authd/version"
)

const gracefulTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Fatal("Service failed", map[string]interface{}{"error": err.Error()})
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Version == "" {
		cfg.Version = version.Get().Version
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)
	log.Info("Starting service", map[string]interface{}{
		"version":     cfg.Version,
		"environment": cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Setup(ctx, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, cfg.Observability, log)
	if err != nil {
		return err
	}

	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if err := db.MigrateUp(users.Migrations, users.MigrationsPath); err != nil {
		return err
	}

	store, err := users.NewStore(db, log)
	if err != nil {
		return err
	}

	hasher := password.NewHasher(cfg.Auth.Password)
	tokens, err := jwt.NewService(cfg.Auth.JWT)
	if err != nil {
		return err
	}

	svc := auth.NewService(store, hasher, tokens, log)
	handler := auth.NewHandler(svc)
	guard := auth.RequireAuth(tokens, store)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	engine := srv.GinEngine()
	engine.GET("/health", endpoint.Health(cfg.Name, map[string]endpoint.Check{
		"database": db.PingContext,
	}))
	engine.GET("/alive", endpoint.Liveness())
	engine.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	auth.RegisterRoutes(engine, handler, guard, middleware.RateLimit(cfg.Server.RateLimit))

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("Listening", map[string]interface{}{"addr": srv.Addr()})

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("Server stop failed", map[string]interface{}{"error": err.Error()})
	}
	telemetry.Shutdown(shutdownCtx)
	if err := db.Close(); err != nil {
		log.Warn("Database close failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Shutdown complete")
	return nil
}
