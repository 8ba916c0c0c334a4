package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jewelry-chat-backend/internal/config"
	"jewelry-chat-backend/internal/database"
	"jewelry-chat-backend/internal/handlers"
	"jewelry-chat-backend/internal/logging"
	"jewelry-chat-backend/internal/middleware"
	"jewelry-chat-backend/internal/router"
	"jewelry-chat-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	// ──── Step 2: Initialize Logger ────
	logger, err := logging.New(logging.Options{Development: cfg.IsDevelopment(), Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		log.Fatalf("✗ Logger initialization failed: %v", err)
	}
	logger.Info("starting jewelry chat backend", zap.String("env", cfg.Env))

	// run owns every deferred cleanup, so errors are reported only after it returns.
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// ──── Step 3: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs, logger)
	if err != nil {
		return fmt.Errorf("gemini client initialization failed: %w", err)
	}
	defer geminiService.Close()
	logger.Info("gemini client initialized", zap.String("model", cfg.GeminiModel))

	// ──── Step 4: Initialize Rate Limiter ────
	var chatLimiter router.RateLimiter
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisClient.Close()
		chatLimiter = middleware.NewRedisRateLimiter(redisClient, "chat", cfg.ChatRequestsPerMin, time.Minute, logger)
		logger.Info("redis rate limiter enabled", zap.Int("per_minute", cfg.ChatRequestsPerMin))
	} else {
		memLimiter := middleware.NewRateLimiter(cfg.ChatRequestsPerMin, time.Minute)
		defer memLimiter.Stop()
		chatLimiter = memLimiter
		logger.Info("in-memory rate limiter enabled", zap.Int("per_minute", cfg.ChatRequestsPerMin))
	}

	// ──── Step 5: Initialize Services & Handlers ────
	chatService := services.NewJewelryChatService(geminiService, logger)
	historyService := services.NewHistoryService()
	chatHandler := handlers.NewChatHandler(chatService, historyService, logger)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, chatLimiter, logger, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Generation can be slow; leave room for the upstream call.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}
	logger.Info("jewelry chat backend ready", zap.String("addr", "http://localhost:"+cfg.Port))

	// In-flight chat calls may take up to WriteTimeout.
	return serve(server, ln, sigChan, server.WriteTimeout+10*time.Second, logger)
}

// serve runs the server until stop fires, then drains in-flight requests
// before returning.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, drainTimeout time.Duration, logger *zap.Logger) error {
	shutdownDone := make(chan error, 1)
	go func() {
		<-stop
		logger.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		shutdownDone <- server.Shutdown(ctx)
	}()

	if err := server.Serve(ln); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	// Serve returns as soon as Shutdown starts; wait for the drain.
	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
