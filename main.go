package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/natefinch/lumberjack.v2"

	"reelfind/api"
	"reelfind/config"
	"reelfind/handlers"
	"reelfind/services/catalog"
	"reelfind/services/searchlog"
	"reelfind/utils"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()

	if cfg.LogPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	log.Println("Starting reelfind...")
	if cfg.TMDBToken == "" {
		log.Println("WARNING: TMDB_API_TOKEN is not set; catalog requests will fail")
	}

	store := searchlog.NewStore(cfg.DataDir)
	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize search log: %v", err)
	}
	defer store.Close()

	service := catalog.NewService(cfg, store)
	if err := service.StartMaintenance(); err != nil {
		log.Fatalf("Failed to start cache maintenance: %v", err)
	}
	defer service.StopMaintenance()

	coordinator := catalog.NewCoordinator(service, cfg.DebounceInterval, true)
	defer coordinator.Stop()

	prewarmCtx, cancelPrewarm := context.WithCancel(context.Background())
	defer cancelPrewarm()
	go service.Prewarm(prewarmCtx, cfg.PrewarmTerms)

	router := utils.NewRouter()
	limiter := api.NewIPRateLimiter(120)
	apiRoutes := router.PathPrefix("/api").Subrouter()
	apiRoutes.Use(limiter.Middleware())

	catalogHandler := handlers.NewCatalogHandler(coordinator, service, store)
	catalogHandler.Register(apiRoutes)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
