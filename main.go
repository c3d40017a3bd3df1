package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Sanjeev1695/billing-software/internal/api"
	"github.com/Sanjeev1695/billing-software/internal/cache"
	"github.com/Sanjeev1695/billing-software/internal/config"
	"github.com/Sanjeev1695/billing-software/internal/db"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	ctxIdx, cancelIdx := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.EnsureIndexes(ctxIdx, mongoDb); err != nil {
		cancelIdx()
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIdx()

	// Initialize Cache (Redis). Optional: the item cache degrades gracefully.
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("WARNING: Redis unavailable, item caching disabled: %v", err)
		redisClient = nil
	} else {
		defer func() {
			if err := cache.DisconnectRedis(redisClient); err != nil {
				log.Printf("Error disconnecting from Redis: %v", err)
			}
		}()
	}

	router := api.SetupRouter(cfg, mongoDb, redisClient)
	srv := &http.Server{
		Addr:    ":" + cfg.ApiPort,
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Printf("API listening on :%s\n", cfg.ApiPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
		fmt.Println("API server stopped.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	wg.Wait()
	fmt.Println("Server gracefully stopped")
}
