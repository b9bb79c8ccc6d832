package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/blog-backend/internal/api"
	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/config"
	"github.com/baharkarakas/blog-backend/internal/db"
	"github.com/baharkarakas/blog-backend/internal/logger"
	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/repository/memory"
	"github.com/baharkarakas/blog-backend/internal/repository/postgres"
	"github.com/baharkarakas/blog-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("exit", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		return err
	}

	var (
		users repository.Users
		posts repository.Posts
	)
	switch cfg.Store {
	case "memory":
		log.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		users, posts = store.Users(), store.Posts()
	default:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				return err
			}
		}
		repos := postgres.NewRepositories(pool)
		users, posts = repos.Users, repos.Posts
	}

	authSvc := services.NewAuthService(users, auth.NewArgon2Hasher(auth.DefaultArgon2Params), tokens)
	postSvc := services.NewPostService(posts)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		CORSOrigins: cfg.CORSOrigins,
		AuthSvc:     authSvc,
		PostSvc:     postSvc,
		Tokens:      tokens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("config",
		"APP_ENV", cfg.Env,
		"STORE", cfg.Store,
		"JWT_ALGORITHM", cfg.JWTAlgorithm,
		"token_ttl", tokens.TTL(),
	)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
