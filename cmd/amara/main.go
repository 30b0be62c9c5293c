package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/antoniostano/amara/internal/chat"
	"github.com/antoniostano/amara/internal/config"
	"github.com/antoniostano/amara/internal/generator"
	"github.com/antoniostano/amara/internal/httpapi"
	"github.com/antoniostano/amara/internal/memory"
	"github.com/antoniostano/amara/internal/observability"
	"github.com/antoniostano/amara/internal/retrieval"
	"github.com/antoniostano/amara/internal/trending"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	profileStore, err := memory.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("profile store init failed: %v", err)
	}
	defer profileStore.Close()

	trendStore, err := trending.NewStore(ctx, cfg.DatabaseURL, cfg.RedisURL, cfg.TrendingCapacity)
	if err != nil {
		log.Fatalf("trending store init failed: %v", err)
	}
	defer trendStore.Close()

	manager := memory.NewManager(profileStore, trendStore, memory.ManagerConfig{
		Merge: retrieval.MergeConfig{
			RecentN:   cfg.RecentTurns,
			RelevantK: cfg.RelevantTurns,
			MaxTotal:  cfg.MaxContextTurns,
		},
		MaxHistory:         cfg.MaxHistory,
		RetainOldest:       cfg.RetainOldest,
		DefaultPersonality: cfg.Personality,
		RedactPII:          cfg.RedactPII,
	})

	gen := generator.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	aggregator := trending.NewAggregator(trendStore, cfg.TrendingSampleRate, nil, nil)
	aggregator.SetOnPush(metrics.TrendingUpdates.Inc)
	chatSvc := chat.NewService(manager, gen, aggregator, metrics)

	api := httpapi.New(cfg, chatSvc, manager, trendStore, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
