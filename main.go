package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/weitseng/rolechat/internal/adapter/llm"
	"github.com/weitseng/rolechat/internal/adapter/messaging"
	"github.com/weitseng/rolechat/internal/adapter/search"
	"github.com/weitseng/rolechat/internal/archive"
	"github.com/weitseng/rolechat/internal/config"
	"github.com/weitseng/rolechat/internal/policy"
	"github.com/weitseng/rolechat/internal/roles"
	"github.com/weitseng/rolechat/internal/service"
	"github.com/weitseng/rolechat/internal/session"
	handler "github.com/weitseng/rolechat/internal/transport/http"
	"github.com/weitseng/rolechat/internal/transport/http/webhook"
)

func main() {
	// .env first; the real environment wins over file entries.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	log.Printf("Starting chat relay...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM URL: %s (model %s)", cfg.LLMBaseURL, cfg.LLMModel)
	log.Printf("Default role: %s", cfg.DefaultRole)

	// Role catalog
	registry := roles.NewRegistry()
	if cfg.RolesFile != "" {
		if err := registry.LoadFile(cfg.RolesFile); err != nil {
			log.Fatalf("Failed to load roles file: %v", err)
		}
	}

	// Session store
	sessions := session.NewStore(cfg.HistoryMaxTurns)

	// Transcript archive
	archiveStore, err := archive.NewStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize archive: %v", err)
	}
	defer archiveStore.Close()

	// Context retriever; disabled unless a search backend is configured.
	var searcher search.Searcher
	if cfg.SearchURL != "" {
		searcher = search.NewClient(cfg.SearchURL, cfg.SearchCollection, cfg.SearchTimeout)
	} else {
		log.Printf("SEARCH_URL not set, context retrieval disabled")
	}
	retriever := search.NewRetriever(searcher)

	// Completion client
	llmClient := llm.NewCompletionClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Prompt policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Orchestrator
	svc, err := service.New(registry, sessions, retriever, llmClient, archiveStore, policyEngine, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	// Handlers
	h := handler.NewHandler(svc)
	replier := messaging.NewClient(cfg.ReplyBaseURL, cfg.ChannelAccessToken)
	webhookH := webhook.NewHandler(svc, replier, cfg.ChannelSecret)

	// Echo server
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)
	webhookH.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chat relay started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chat relay...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chat relay stopped")
}
