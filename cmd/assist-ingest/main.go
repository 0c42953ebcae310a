// Command assist-ingest embeds the catalog files and loads them into the
// vector store. Run it once before starting the API server, and again after
// any catalog change: documents are keyed by stable ids, so a rerun overwrites
// in place.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/config"
	"github.com/courtlab/assist/internal/db"
	dbMemory "github.com/courtlab/assist/internal/db/memory"
	dbRedis "github.com/courtlab/assist/internal/db/redis"
	logpkg "github.com/courtlab/assist/internal/logger"
	"github.com/courtlab/assist/internal/metrics"
	collectionrepo "github.com/courtlab/assist/internal/repository/collection"
	documentrepo "github.com/courtlab/assist/internal/repository/document"
	openaiTransport "github.com/courtlab/assist/internal/transport/openai"
	"github.com/courtlab/assist/internal/usecase/ingest"
	"github.com/courtlab/assist/internal/version"
)

func main() {
	var (
		shoesPath    = flag.String("shoes", "", "override shoes catalog path")
		playersPath  = flag.String("players", "", "override players catalog path")
		drillsPath   = flag.String("drills", "", "override drills catalog path")
		rulesPath    = flag.String("rules", "", "override rules catalog path")
		glossaryPath = flag.String("glossary", "", "override glossary catalog path")
	)
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting assist ingest",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.RegisterEmbeddingMetrics()

	registry := collectionrepo.NewRegistry(cfg.Embedding.Dimensions, collectionrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	if err := registry.EnsureIndexes(ctx, store); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	svc := ingest.New(documentrepo.New(store), registry, embedder, cfg.Index.MaxBatchSize, logger)

	sources := ingest.Sources{
		ShoesPath:    pick(*shoesPath, cfg.Data.ShoesPath),
		PlayersPath:  pick(*playersPath, cfg.Data.PlayersPath),
		DrillsPath:   pick(*drillsPath, cfg.Data.DrillsPath),
		RulesPath:    pick(*rulesPath, cfg.Data.RulesPath),
		GlossaryPath: pick(*glossaryPath, cfg.Data.GlossaryPath),
	}

	start := time.Now()
	report, err := svc.Run(ctx, sources)
	if err != nil {
		logger.Fatal("Ingest failed", zap.Error(err))
	}

	total := 0
	for name, n := range report.Documents {
		logger.Info("collection indexed", zap.String("collection", name), zap.Int("documents", n))
		total += n
	}
	logger.Info("Ingest finished",
		zap.Int("documents", total),
		zap.Int("embedding_tokens", report.TotalTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func newStore(cfg config.Config) (db.Store, error) {
	switch cfg.Database.Driver {
	case "memory":
		return dbMemory.NewStore(), nil
	default:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	}
}
