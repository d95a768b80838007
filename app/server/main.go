package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/callsight/config"
	"github.com/yoockh/callsight/internal/api/handlers"
	"github.com/yoockh/callsight/internal/api/middleware"
	"github.com/yoockh/callsight/internal/api/routes"
	"github.com/yoockh/callsight/internal/cache"
	"github.com/yoockh/callsight/internal/logger"
	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/providers/llm"
	"github.com/yoockh/callsight/internal/providers/transcribe"
	"github.com/yoockh/callsight/internal/queue"
	mongorepo "github.com/yoockh/callsight/internal/repositories/mongo"
	pgrepo "github.com/yoockh/callsight/internal/repositories/postgres"
	"github.com/yoockh/callsight/internal/stages"
	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Collaborators
	rdb, err := config.NewRedis(ctx)
	if err != nil {
		log.Fatalf("Redis init error: %v", err)
	}

	mongoClient, err := config.NewMongo(ctx)
	if err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	db := mongoClient.Database(cfg.MongoDB)
	if err := config.EnsureMongoIndexes(ctx, db); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}

	pg, err := config.NewPostgres()
	if err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := pg.AutoMigrate(&models.InteractionAnalysis{}); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}

	blobs, err := storage.NewGCSStore(ctx, cfg.Bucket)
	if err != nil {
		log.Fatalf("Blob store init error: %v", err)
	}
	defer blobs.Close()

	engine, err := transcribe.NewGoogleSpeech(ctx, blobs, cfg.Bucket, l)
	if err != nil {
		log.Fatalf("Transcription engine init error: %v", err)
	}
	defer engine.Close()

	summarizer, err := llm.NewVertexGemini(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.VertexModel)
	if err != nil {
		log.Fatalf("Summarizer init error: %v", err)
	}
	defer summarizer.Close()

	q := queue.NewRedisQueue(rdb, cfg.QueueGroup, "c-main")
	for _, stream := range []string{cfg.TranscriptionStream, cfg.SummaryStream} {
		if err := q.EnsureGroup(ctx, stream); err != nil {
			log.Fatalf("Queue group init error: %v", err)
		}
	}

	// Repositories and stages
	interactions := mongorepo.NewInteractionRepo(db)
	analyses := pgrepo.NewAnalysisRepo(pg)

	ingest := stages.NewIngestService(blobs, interactions, q, cfg.TranscriptionStream, l)
	dispatch := stages.NewDispatchService(engine, interactions, l)
	extraction := stages.NewExtractionService(blobs, summarizer, q, cfg.SummaryStream, cfg.TemplateKey, l)
	output := stages.NewOutputService(q, cfg.SummaryStream, interactions, analyses, l)

	// Workers
	tp := &workers.TranscriptionWorkerPool{
		Queue:      q,
		Dispatch:   dispatch,
		Logger:     l,
		Stream:     cfg.TranscriptionStream,
		NumWorkers: cfg.TranscriptionWorkers,
	}
	if err := tp.Start(ctx); err != nil {
		log.Fatalf("Transcription worker error: %v", err)
	}
	ew := &workers.ExtractionWorker{Engine: engine, Extraction: extraction, Logger: l}
	if err := ew.Start(ctx); err != nil {
		log.Fatalf("Extraction worker error: %v", err)
	}
	ow := &workers.OutputWorker{Output: output, Logger: l, Interval: cfg.OutputPollInterval}
	if err := ow.Start(ctx); err != nil {
		log.Fatalf("Output worker error: %v", err)
	}

	// HTTP surface
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Ingest:      handlers.NewIngestHandler(ingest),
		Interaction: handlers.NewInteractionHandler(interactions, cache.NewRedisCache(rdb)),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
