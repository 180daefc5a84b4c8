package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/textsearch-bench/internal/api"
	"github.com/Anish-Chanda/textsearch-bench/internal/config"
	"github.com/Anish-Chanda/textsearch-bench/internal/corpus"
	"github.com/Anish-Chanda/textsearch-bench/internal/db"
	"github.com/Anish-Chanda/textsearch-bench/internal/logger"
	"github.com/Anish-Chanda/textsearch-bench/internal/rabin"
	"github.com/Anish-Chanda/textsearch-bench/internal/search"
	"github.com/Anish-Chanda/textsearch-bench/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config load: %w", err))
	}

	log := logger.ForFormat(cfg.LogFormat, cfg.LogLevel)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx := context.Background()

	loader := corpus.NewLoader(nil, log)
	var reports api.ReportLister
	if cfg.S3Bucket != "" {
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			zap.L().Fatal("AWS config", zap.Error(err))
		}
		store, err := storage.NewWithClient(cfg.S3Bucket, awsCfg)
		if err != nil {
			zap.L().Fatal("S3 init", zap.Error(err))
		}
		loader = corpus.NewLoader(store, log)
		reports = store
	}

	var runs api.RunStore
	if cfg.PostgresDSN != "" {
		dbClient, err := db.New(cfg)
		if err != nil {
			zap.L().Fatal("DB init", zap.Error(err))
		}
		defer dbClient.Close()
		runs = dbClient
	}

	// Missing texts are not fatal here: the ad-hoc search endpoint still works.
	var docs []*corpus.Document
	for _, src := range cfg.Texts {
		doc, err := loader.Load(ctx, src)
		if err != nil {
			zap.L().Warn("skipping text", zap.String("source", src), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	hasher, err := rabin.New(cfg.HashBase, cfg.HashModulus)
	if err != nil {
		zap.L().Fatal("hasher", zap.Error(err))
	}
	searchers := []search.Searcher{
		search.NewBoyerMoore(),
		search.NewKnuthMorrisPratt(),
		search.NewRabinKarp(hasher),
	}
	handler := api.NewHandler(searchers, docs, log).WithArchive(runs, reports)
	router := api.NewRouter(handler, zap.L())

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zap.L().Info("starting server", zap.String("addr", cfg.ServerAddr), zap.Int("documents", len(docs)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("server exited gracefully")
}
