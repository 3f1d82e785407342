package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tubegrab/internal/api"
	"tubegrab/internal/config"
	"tubegrab/internal/downloader"
	"tubegrab/internal/hub"
	"tubegrab/internal/jobs"
	"tubegrab/internal/progress"
	"tubegrab/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// 1. Hazırlık: Dosya sistemi
	if err := server.PrepareFilesystem(cfg); err != nil {
		log.Fatalf(">>> ❌ Error preparing filesystem: %v", err)
	}

	// 2. Servisler: durum hücresi, yayın katmanı, indirme motoru
	store := progress.NewStore()
	registry := hub.NewRegistry()
	dispatcher := hub.NewDispatcher(registry)
	poller := hub.NewPoller(store, dispatcher, cfg.PollInterval)

	engine := downloader.NewEngine(cfg)
	launcher := jobs.NewLauncher(store, engine.Run)
	jobs.StartJanitor(cfg)

	// 3. Router: Middleware dahil edilmiş haliyle
	handler := api.NewHandler(engine, launcher, registry, cfg.WriteTimeout)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go poller.Run(ctx)

	fmt.Println(">>> 🏭 Tubegrab Server Started")
	fmt.Printf(">>> ⚡ Port: %s\n", cfg.Port)

	// 4. Start
	srv := &http.Server{Addr: cfg.Port, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf(">>> ❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println(">>> 🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}
