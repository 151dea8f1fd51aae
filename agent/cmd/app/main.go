package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tw-agent/agent/internal/bot"
	"tw-agent/agent/internal/core"
	"tw-agent/agent/internal/handlers"
	"tw-agent/agent/internal/llm"
	"tw-agent/agent/internal/plugin"
	"tw-agent/agent/internal/providers"
	"tw-agent/agent/internal/services"
	"tw-agent/shared/cache"
	"tw-agent/shared/config"
	"tw-agent/shared/env"
	"tw-agent/shared/logger"
)

func startHeartbeat(appLogger *logger.Logger) {
	go func() {
		ticker := time.NewTicker(8 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			appLogger.Info("Heartbeat: Program running...")
		}
	}()
}

func main() {
	if err := env.LoadEnv(); err != nil {
		log.Fatalf("FATAL: Failed to load environment variables: %v", err)
	}

	logLevel := env.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}
	appLogger, err := logger.NewLogger(logger.Config{
		Level:       logLevel,
		Environment: "production",
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	appLogger.Info("Application logger initialized.")

	cfg, err := config.LoadConfig("agent/config.yaml")
	if err != nil {
		appLogger.Fatal("Failed to load agent/config.yaml", "error", err)
	}
	config.SetGlobalConfig(cfg)
	appLogger.Info("Application configuration loaded.", "agent", cfg.Agent.Name)

	topWallets := services.NewTopWalletsClient(env.TopWalletsAPIURL, env.TopWalletsAPIKey, appLogger)
	birdeye := services.NewBirdeyeClient("", env.BirdeyeAPIKey, appLogger)
	appLogger.Info("Market data clients initialized.")

	store := cache.New()
	trending := providers.NewTrendingProvider(topWallets, store, appLogger)

	var (
		gen      core.TextGenerator
		classify core.BoolClassifier
		extract  core.ObjectExtractor
	)
	if aiClient := llm.New(env.AnthropicAPIKey, env.OpenAIAPIKey, cfg.LLM.Model, appLogger); aiClient != nil {
		gen, classify, extract = aiClient, aiClient, aiClient
	}

	agentPlugin := plugin.New(plugin.Options{
		Markets:   topWallets,
		Candles:   birdeye,
		Trending:  trending,
		Generator: gen,
		Classify:  classify,
		Extract:   extract,
		AgentName: cfg.Agent.Name,
		Log:       appLogger,
	})
	appLogger.Info("Agent plugin initialized.")

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(router, agentPlugin, appLogger)
	appLogger.Info("Web server and API routes registered.")

	go func() {
		serverAddr := ":" + env.Port
		appLogger.Info("Starting web server", "address", serverAddr)
		if err := router.Run(serverAddr); err != nil {
			appLogger.Fatal("Could not start web server.", "error", err)
		}
	}()

	if env.TelegramBotToken != "" {
		tgBot, err := bot.New(env.TelegramBotToken, agentPlugin, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram bot listener", "error", err)
		} else {
			appLogger.Info("Starting Telegram bot listener...")
			go func() {
				if err := tgBot.Run(context.Background()); err != nil {
					appLogger.Error("Telegram bot listener stopped", "error", err)
				}
			}()
		}
	} else {
		appLogger.Warn("TELEGRAM_BOT_TOKEN not set, Telegram listener disabled.")
	}

	startHeartbeat(appLogger)

	appLogger.Info("Application startup complete. Waiting for events...")
	select {}
}
