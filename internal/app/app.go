package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"shamba-ai/backend/internal/analytics"
	"shamba-ai/backend/internal/api"
	"shamba-ai/backend/internal/config"
	"shamba-ai/backend/internal/database"
	"shamba-ai/backend/internal/llm"
	"shamba-ai/backend/internal/prompt"
	"shamba-ai/backend/internal/repository"
	"shamba-ai/backend/internal/retriever"
	"shamba-ai/backend/internal/service"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is not set")
		return 1
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.")

	collector, err := analytics.NewCollector(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize analytics collector", "error", err)
		return 1
	}

	generator, err := llm.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GenerationModel)
	if err != nil {
		slog.Error("Failed to create Gemini client", "error", err)
		return 1
	}

	waitForOllama(cfg.OllamaURL)

	embedder := llm.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbeddingModel)

	conversationRepo := repository.NewSQLiteConversationRepository(db)
	documentRepo := repository.NewSQLiteDocumentRepository(db)

	ret := retriever.New(embedder, documentRepo)
	sanitizer := prompt.NewSanitizer(prompt.DefaultTriggerTerms())
	assembler := prompt.NewAssembler(sanitizer, cfg.ContextCharLimit)
	orchestrator := service.NewOrchestrator(generator)

	conversationService := service.NewConversationService(conversationRepo)
	documentService := service.NewDocumentService(ret, documentRepo)
	queryService := service.NewQueryService(ret, assembler, orchestrator, conversationService, collector)

	queryHandler := api.NewQueryHandler(queryService, documentService)
	conversationHandler := api.NewConversationHandler(conversationService)
	analyticsHandler := api.NewAnalyticsHandler(collector)
	router := api.NewRouter(queryHandler, conversationHandler, analyticsHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForOllama blocks until the embedding provider answers. Queries degrade
// gracefully without it, but ingestion cannot work at all, so starting before
// it is up would only produce confusing failures.
func waitForOllama(ollamaURL string) {
	slog.Info("Waiting for Ollama to be ready...")
	client := &http.Client{Timeout: 2 * time.Second}
	for attempt := 0; attempt < 20; attempt++ {
		resp, err := client.Get(ollamaURL)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				slog.Info("Ollama is ready.")
				return
			}
		}
		slog.Debug("Ollama not ready yet, retrying in 3 seconds...", "url", ollamaURL, "error", err)
		time.Sleep(3 * time.Second)
	}
	slog.Warn("Ollama did not become ready; continuing with degraded retrieval", "url", ollamaURL)
}
