package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tasktracker/tasktracker-go/internal/cache"
	"github.com/tasktracker/tasktracker-go/internal/clock"
	"github.com/tasktracker/tasktracker-go/internal/config"
	"github.com/tasktracker/tasktracker-go/internal/crypto"
	"github.com/tasktracker/tasktracker-go/internal/flash"
	"github.com/tasktracker/tasktracker-go/internal/handler"
	"github.com/tasktracker/tasktracker-go/internal/repository"
	"github.com/tasktracker/tasktracker-go/internal/service"
	"github.com/tasktracker/tasktracker-go/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	db, err := repository.NewDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	err = repository.EnsureSchema(initCtx, db, cfg.DB.Driver)
	cancelInit()
	if err != nil {
		slog.Error("schema init failed", "error", err)
		os.Exit(1)
	}

	rdb := connectRedis(cfg.Redis)
	var postCache *cache.PostCache
	if rdb != nil {
		postCache = cache.NewPostCache(rdb, cfg.Redis.TTL)
	}

	clk := clock.NewReal()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	authService := service.NewAuthService(userRepo, crypto.NewHasher(crypto.DefaultHashParams()), clk, cfg.Auth.StrictRegistration)
	postService := service.NewPostService(postRepo, userRepo, postCache, clk)

	renderer, err := view.NewHTMLRenderer()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}
	flashes := flash.NewStore(cfg.Secret, cfg.FlashTTL)

	router := handler.NewRouter(handler.RouterConfig{
		Home:      handler.NewHomeHandler(renderer, db),
		Auth:      handler.NewAuthHandler(authService, renderer, flashes),
		Posts:     handler.NewPostHandler(postService, renderer, flashes),
		Flashes:   flashes,
		RateRPS:   cfg.Auth.RateRPS,
		RateBurst: cfg.Auth.RateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		slog.Info("server starting", "port", cfg.HTTP.Port, "env", cfg.App.Env, "db_driver", cfg.DB.Driver, "cache", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	closeAll(db, rdb)

	slog.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// connectRedis returns nil when no address is configured or the server does
// not answer, in which case post lists are read straight from the database.
func connectRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, post cache disabled", "addr", cfg.Addr, "error", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func closeAll(db *sql.DB, rdb *redis.Client) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Warn("redis close failed", "error", err)
		}
	}
	if err := db.Close(); err != nil {
		slog.Warn("database close failed", "error", err)
	}
}
