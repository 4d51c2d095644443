package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "skillswap/cmd/api/router/v1"
	authAdapter "skillswap/internal/infrastructure/auth/adapter"
	cacheAdapter "skillswap/internal/infrastructure/cache/adapter"
	"skillswap/internal/infrastructure/database"
	queueAdapter "skillswap/internal/infrastructure/queue/adapter"
	"skillswap/internal/infrastructure/realtime"
	"skillswap/internal/pkg/chat/application/task"
	repoAdapter "skillswap/internal/pkg/chat/persistence/repository/adapter"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	verifier, err := authAdapter.NewJWTVerifierFromEnv()
	if err != nil {
		log.Fatalf("failed to configure token verifier: %v", err)
	}

	registry := realtime.NewRegistry()
	rooms := realtime.NewRooms()
	defer registry.Close()

	// Background workers share the process with the API for now.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}
	task.RegisterTouchPresenceTask(queueServer, repoAdapter.NewPgUserRepository(pool))
	go func() {
		if err := queueServer.Run(workerCtx); err != nil {
			log.Printf("queue server stopped: %v", err)
		}
	}()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, cache, queueClient, verifier, registry, rooms)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until interrupted, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
