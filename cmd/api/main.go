package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"portfolio-assistant/internal/config"
	"portfolio-assistant/internal/email"
	apihttp "portfolio-assistant/internal/http"
	"portfolio-assistant/internal/knowledge"
	"portfolio-assistant/internal/llm"
	"portfolio-assistant/internal/prompt"
	"portfolio-assistant/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	doc, err := knowledge.LoadFile(cfg.KnowledgeBasePath)
	if err != nil {
		logger.Fatal("load knowledge base", zap.String("path", cfg.KnowledgeBasePath), zap.Error(err))
	}
	source := knowledge.NewStatic(doc)
	logger.Info("knowledge base loaded",
		zap.String("path", cfg.KnowledgeBasePath),
		zap.String("subject", doc.Subject()),
		zap.Int("bytes", len(doc.JSON())),
	)

	var llmClient llm.LLMClient
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		gemini, err := llm.NewGeminiClient(ctx, cfg.LLMAPIKey, cfg.LLMModel, logger)
		if err != nil {
			logger.Fatal("gemini client", zap.Error(err))
		}
		llmClient = gemini
	default:
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	}
	gateway := service.NewChatGateway(llmClient, source, prompt.NewComposer(), logger)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.ContactTo, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}
	contactSvc := service.NewContactService(emailSender, logger)

	var limiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, rate limiting disabled", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, "ratelimit:api", cfg.RateLimitWindow, cfg.RateLimitMax)
		}
		cancel()
	}

	router := apihttp.NewRouter(
		logger,
		apihttp.NewChatHandler(logger, gateway),
		apihttp.NewContactHandler(logger, contactSvc),
		apihttp.NewPortfolioHandler(logger, source),
		limiter,
	)

	// sin WriteTimeout: el stream de chat lo acota el gateway
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.LLMModel),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
