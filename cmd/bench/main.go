package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/textsearch-bench/internal/bench"
	"github.com/Anish-Chanda/textsearch-bench/internal/config"
	"github.com/Anish-Chanda/textsearch-bench/internal/corpus"
	"github.com/Anish-Chanda/textsearch-bench/internal/db"
	"github.com/Anish-Chanda/textsearch-bench/internal/logger"
	"github.com/Anish-Chanda/textsearch-bench/internal/rabin"
	"github.com/Anish-Chanda/textsearch-bench/internal/search"
	"github.com/Anish-Chanda/textsearch-bench/internal/storage"
)

func main() {
	reps := flag.Int("reps", 0, "repetitions per measurement (overrides TEXTBENCH_REPETITIONS)")
	archive := flag.Bool("archive", false, "save the report to Postgres (TEXTBENCH_POSTGRES_DSN)")
	upload := flag.Bool("upload", false, "upload the rendered report to S3 (TEXTBENCH_S3_BUCKET)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config load: %w", err))
	}
	if *reps > 0 {
		cfg.Repetitions = *reps
	}
	// positional args replace the configured texts
	if flag.NArg() > 0 {
		cfg.Texts = flag.Args()
	}

	log := logger.ForFormat(cfg.LogFormat, cfg.LogLevel)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// S3 is only needed when a text lives there or the report goes there.
	var store *storage.Client
	if *upload || usesS3(cfg.Texts) {
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			zap.L().Fatal("AWS config", zap.Error(err))
		}
		account, err := storage.VerifyAWS(ctx, awsCfg)
		if err != nil {
			zap.L().Fatal("AWS not configured", zap.Error(err))
		}
		zap.L().Info("using AWS account", zap.String("account", account))
		if store, err = storage.NewWithClient(cfg.S3Bucket, awsCfg); err != nil {
			zap.L().Fatal("S3 init", zap.Error(err))
		}
	}

	var getter corpus.ObjectGetter
	if store != nil {
		getter = store
	}
	docs, err := corpus.NewLoader(getter, log).LoadAll(ctx, cfg.Texts)
	if err != nil {
		zap.L().Fatal("load texts", zap.Error(err))
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
	runner, err := bench.NewRunner(searchers, cfg.Repetitions, log)
	if err != nil {
		zap.L().Fatal("runner", zap.Error(err))
	}

	report, err := runner.Run(ctx, docs, bench.Patterns{Real: cfg.RealPattern, Fake: cfg.FakePattern})
	if err != nil {
		zap.L().Fatal("benchmark", zap.Error(err))
	}

	var rendered bytes.Buffer
	if _, err := report.WriteTo(&rendered); err != nil {
		zap.L().Fatal("render report", zap.Error(err))
	}
	if _, err := os.Stdout.Write(rendered.Bytes()); err != nil {
		zap.L().Fatal("write report", zap.Error(err))
	}

	if *archive {
		if err := db.Migrate(cfg.PostgresDSN, cfg.MigrationsDir); err != nil {
			zap.L().Fatal("migrate", zap.Error(err))
		}
		dbClient, err := db.New(cfg)
		if err != nil {
			zap.L().Fatal("DB init", zap.Error(err))
		}
		defer dbClient.Close()
		var a bench.Archive = dbClient
		if err := a.SaveReport(ctx, report); err != nil {
			zap.L().Fatal("archive report", zap.Error(err))
		}
		zap.L().Info("report archived", zap.String("run", report.RunID))
	}

	if *upload {
		key := report.ObjectKey()
		if err := store.PutObject(ctx, key, bytes.NewReader(rendered.Bytes())); err != nil {
			zap.L().Fatal("upload report", zap.Error(err))
		}
		zap.L().Info("report uploaded", zap.String("bucket", store.Bucket()), zap.String("key", key))
	}
}

func usesS3(sources []string) bool {
	for _, s := range sources {
		if strings.HasPrefix(s, corpus.S3Prefix) {
			return true
		}
	}
	return false
}
