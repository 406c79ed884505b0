package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RansilvaV29/backend-chat-websoket/api/handlers"
	"github.com/RansilvaV29/backend-chat-websoket/internal/config"
	"github.com/RansilvaV29/backend-chat-websoket/internal/db"
	"github.com/RansilvaV29/backend-chat-websoket/internal/logger"
	"github.com/RansilvaV29/backend-chat-websoket/internal/relay"
	"github.com/RansilvaV29/backend-chat-websoket/internal/repository"
	"github.com/RansilvaV29/backend-chat-websoket/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logg := logger.New(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// Initialize database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize audit repository
	eventRepo := repository.NewRoomEventRepository(database)

	// Relay core: registry, directory, orchestrator over the ws transport
	registry := relay.NewRegistry(cfg.ReservationTTL)
	directory := relay.NewDirectory()
	server := ws.NewServer(logg)
	orch := relay.NewOrchestrator(logg, server, registry, directory, eventRepo)
	server.SetOrchestrator(orch)

	// Initialize handlers
	wsHandler := handlers.NewWebSocketHandler(server)
	roomHandler := handlers.NewRoomHandler(directory, eventRepo)

	// Initialize Gin router
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(corsMiddleware(cfg.CORSAllow))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// WebSocket endpoint
	r.GET("/ws", wsHandler.Serve)

	// API routes
	api := r.Group("/api")
	{
		roomHandler.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logg.Info("server.listening", "port", cfg.Port, "reservation_ttl", cfg.ReservationTTL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logg.Info("server.shutdown.start")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logg.Info("server.shutdown.complete")
}

// corsMiddleware returns a CORS middleware honoring the configured allowlist.
func corsMiddleware(allow []string) gin.HandlerFunc {
	allowAll := len(allow) == 1 && allow[0] == "*"
	allowed := make(map[string]bool, len(allow))
	for _, origin := range allow {
		allowed[strings.TrimSpace(origin)] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
