package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/fielddesk/fielddesk-agent/internal/adapters/http"
	"github.com/fielddesk/fielddesk-agent/internal/adapters/llm"
	"github.com/fielddesk/fielddesk-agent/internal/adapters/storage/firestore"
	"github.com/fielddesk/fielddesk-agent/internal/adapters/storage/memory"
	"github.com/fielddesk/fielddesk-agent/internal/adapters/storage/sqlite"
	"github.com/fielddesk/fielddesk-agent/internal/app/agent"
	"github.com/fielddesk/fielddesk-agent/internal/config"
	"github.com/fielddesk/fielddesk-agent/internal/domain"
	"github.com/fielddesk/fielddesk-agent/internal/observability"
)

func main() {
	_ = godotenv.Load()

	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entities, cleanup, err := buildEntityStore(ctx, cfg)
	if err != nil {
		log.Error("storage init failed", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	completions, err := buildCompletionClient(ctx, cfg)
	if err != nil {
		log.Error("llm init failed", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}

	engine := agent.New(completions, memory.NewSessionStore(), entities, cfg.DefaultLanguage, nil)
	handler := httpadapter.NewHandler(engine)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening",
			"port", cfg.Port,
			"llm_provider", cfg.LLMProvider,
			"storage_backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func buildEntityStore(ctx context.Context, cfg *config.Config) (domain.EntityStore, func(), error) {
	switch cfg.StorageBackend {
	case "sqlite":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "firestore":
		store, err := firestore.New(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return memory.NewEntityStore(), func() {}, nil
	}
}

func buildCompletionClient(ctx context.Context, cfg *config.Config) (domain.CompletionClient, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGemini(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.GeminiModel)
	case config.ProviderOpenAI:
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return llm.NewMock(), nil
	}
}
