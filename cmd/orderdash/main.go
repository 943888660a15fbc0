package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"orderdash/internal/config"
	"orderdash/internal/database"
	"orderdash/internal/handler"
	"orderdash/internal/ledger"
	"orderdash/internal/service"
	"orderdash/internal/store"
	"orderdash/internal/worker"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.StoreDSN)
	if db == nil {
		slog.Error("failed to open follow-up store", "error", err)
		os.Exit(1)
	}
	if err != nil {
		slog.Warn("follow-up store not reachable at startup, sync will retry", "error", err)
	}
	defer database.CloseDB(context.Background(), db)

	target, err := store.NewPostgresTarget(db, cfg.StoreTable)
	if err != nil {
		slog.Error("invalid follow-up store target", "error", err)
		os.Exit(1)
	}

	// Ledger
	loader := ledger.NewLoader(cfg.LedgerPath)
	cache := ledger.NewCache(cfg.CacheTTL, loader.Load)

	// Services
	reportSvc := service.NewReportService(cache)
	syncer := store.NewSyncer(target, store.DefaultSourceTag)
	followupSvc := service.NewFollowupService(cache, syncer, cfg.Keywords, cfg.OffsetDays, cfg.TopN)

	// Worker
	refreshWorker := worker.NewRefreshWorker(cache, cfg.RefreshInterval)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/summary", handler.OverviewHandler(reportSvc))
	r.Get("/api/reports/revenue", handler.RevenueTrendHandler(reportSvc))
	r.Get("/api/reports/states", handler.StateBreakdownHandler(reportSvc))
	r.Get("/api/reports/products", handler.TopProductsHandler(reportSvc, cfg.TopN))
	r.Get("/api/reports/companies", handler.CompanyAnalysisHandler(reportSvc))
	r.Get("/api/reports/leadtime", handler.LeadTimeHandler(reportSvc))
	r.Get("/api/ledger/exclusions", handler.ExclusionsHandler(reportSvc))

	r.Get("/api/followups", handler.ListFollowupsHandler(followupSvc))
	r.Get("/api/followups/summary", handler.FollowupSummaryHandler(followupSvc))
	r.Post("/api/followups/sync", handler.SyncFollowupsHandler(followupSvc))
	r.Get("/api/followups/store", handler.StoreContentsHandler(followupSvc))

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go refreshWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "ledger", cfg.LedgerPath)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
