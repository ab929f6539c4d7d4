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

	"github.com/adoptme/adoptme-go/internal/config"
	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/handler"
	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/repository"
	"github.com/adoptme/adoptme-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed — falling back to in-memory storage", "error", err)
	} else {
		defer db.Close()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: buildRouter(cfg, db),
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
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
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// buildRouter wires repositories, services and handlers. A nil db selects the
// in-memory adapters; the repositories and everything above them are
// oblivious to the difference.
func buildRouter(cfg config.Config, db *sql.DB) http.Handler {
	var (
		userAdapter     repository.Adapter[model.User]
		petAdapter      repository.Adapter[model.Pet]
		adoptionAdapter repository.Adapter[model.Adoption]
	)
	if db != nil {
		userAdapter = repository.NewMySQLUserAdapter(db)
		petAdapter = repository.NewMySQLPetAdapter(db)
		adoptionAdapter = repository.NewMySQLAdoptionAdapter(db)
	} else {
		userAdapter = repository.NewMemoryUserAdapter()
		petAdapter = repository.NewMemoryPetAdapter()
		adoptionAdapter = repository.NewMemoryAdoptionAdapter()
	}

	userRepo := repository.NewUserRepository(userAdapter, cfg.StorageTimeout)
	petRepo := repository.NewPetRepository(petAdapter, cfg.StorageTimeout)
	adoptionRepo := repository.NewAdoptionRepository(adoptionAdapter, cfg.StorageTimeout)

	hasher := crypto.NewHasher(crypto.HashParams{})
	tokens := crypto.NewTokenIssuer(crypto.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.JWTTTL,
	})

	sessionService := service.NewSessionService(userRepo, hasher, cfg.StorageTimeout)
	protected := service.NewProtectedIssuer(tokens, cfg.IsProduction())
	unprotected := service.NewUnprotectedIssuer(tokens, cfg.LegacyUnprotectedClaims)

	return handler.NewRouter(
		handler.NewSessionHandler(sessionService, protected, unprotected, tokens),
		handler.NewUserHandler(userRepo),
		handler.NewPetHandler(petRepo),
		handler.NewAdoptionHandler(adoptionRepo, userRepo, petRepo),
		tokens,
	)
}
