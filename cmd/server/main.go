package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/ai"
	"github.com/theuerc/riddle-me-this/internal/asr"
	"github.com/theuerc/riddle-me-this/internal/config"
	"github.com/theuerc/riddle-me-this/internal/db"
	"github.com/theuerc/riddle-me-this/internal/handler"
	"github.com/theuerc/riddle-me-this/internal/media"
	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/repository"
	"github.com/theuerc/riddle-me-this/internal/router"
	"github.com/theuerc/riddle-me-this/internal/service"
	"github.com/theuerc/riddle-me-this/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "riddle-me-this")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		log.Fatalf("failed to initialize embedder: %v", err)
	}
	defer embedder.Close()

	videoRepo := repository.NewVideoRepo(pool)
	transcriptRepo := repository.NewTranscriptRepo(pool)

	videoSvc := service.NewVideoService(videoRepo, youtube.NewClient(cfg.YouTubeAPIKey), cache)
	transcriptSvc := service.NewTranscriptService(
		transcriptRepo,
		youtube.NewCaptionsClient(),
		media.NewYTDLPDownloader(cfg.AudioDir, cfg.AudioCodec, cfg.AudioQuality),
		newTranscriber(cfg),
		cache,
	)
	qaSvc := service.NewQAService(
		videoSvc,
		transcriptSvc,
		service.NewContextService(embedder),
		ai.NewCompletionClient(cfg.OpenAIAPIKey, cfg.CompletionModel, cfg.OpenAIBaseURL),
		cache,
		cfg.ChunkSizeWords,
	)
	graphSvc := service.NewGraphService(transcriptSvc)

	janitor := service.NewAudioJanitor(cfg.AudioDir)
	janitor.Start()
	defer janitor.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "riddle-me-this API",
		ServerHeader: "riddle-me-this",
	})

	router.Setup(app, &router.Handlers{
		Health:     handler.NewHealthHandler(pool, cache.Client()),
		Video:      handler.NewVideoHandler(videoSvc),
		Transcript: handler.NewTranscriptHandler(transcriptSvc),
		QA:         handler.NewQAHandler(qaSvc),
		Graph:      handler.NewGraphHandler(graphSvc),
		Stats:      handler.NewStatsHandler(videoRepo, transcriptSvc),
		Export:     handler.NewExportHandler(transcriptSvc),
	}, cfg.CORSOrigins)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("riddle-me-this starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newEmbedder picks the embedding backend: the OpenAI API by default, or a
// local ONNX sentence encoder when EMBEDDING_PROVIDER=onnx.
func newEmbedder(cfg *config.Config) (ai.Embedder, error) {
	if cfg.EmbeddingProvider == "onnx" {
		return ai.NewONNXEmbedder(cfg.ONNXModelPath, cfg.ONNXTokenizerPath, cfg.ONNXLibPath)
	}
	return ai.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.OpenAIBaseURL)
}

// newTranscriber picks the speech-to-text backend per WHISPER_MODE.
func newTranscriber(cfg *config.Config) asr.Transcriber {
	if cfg.WhisperMode == "local" {
		return asr.NewLocalWhisper(cfg.WhisperBin, cfg.WhisperModelPath)
	}
	return asr.NewRemoteWhisper(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
}
