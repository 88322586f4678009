package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"organ-annotator/internal/domain"
	"organ-annotator/internal/http/handlers"
	"organ-annotator/internal/http/httpapi"
	"organ-annotator/internal/infra"
	"organ-annotator/internal/jobtrack"
	"organ-annotator/internal/pipeline"
	"organ-annotator/internal/providers/leafmachine"
	"organ-annotator/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	logger = logger.With().Str("instance", uuid.NewString()).Logger()

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("annotator: invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	tracker := jobtrack.NewClient(jobtrack.Options{
		BaseURL:    cfg.RunningEndpoint,
		HTTPClient: httpClient,
		Logger:     &logger,
	})
	detector := leafmachine.NewClient(leafmachine.Options{
		Endpoint:   cfg.InferenceEndpoint,
		Model:      cfg.ModelName,
		HTTPClient: httpClient,
		Logger:     &logger,
	})

	publisher := queue.NewPublisher(queue.PublisherOptions{
		Host:       cfg.KafkaProducerHost,
		EventTopic: cfg.KafkaProducerTopic,
		Logger:     logger,
	})
	defer publisher.Close()

	consumer := queue.NewConsumer(queue.ConsumerOptions{
		Host:    cfg.KafkaConsumerHost,
		Topic:   cfg.KafkaConsumerTopic,
		GroupID: cfg.KafkaConsumerGroup,
		Logger:  logger,
	})
	defer consumer.Close()

	processor := pipeline.New(pipeline.Options{
		Tracker:        tracker,
		Detector:       detector,
		Publisher:      publisher,
		Agent:          domain.NewAgent(cfg.MASID, cfg.MASName),
		ModelReference: cfg.ModelReference,
		Logger:         logger,
	})

	app := handlers.NewApp(logger, processor.Stats())
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app, logger), logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("annotator: http server failed")
		}
	}()

	logger.Info().
		Str("topic", cfg.KafkaConsumerTopic).
		Str("group", cfg.KafkaConsumerGroup).
		Str("model", detector.Model()).
		Msg("annotator: started")

	err = consumer.Run(ctx, func(msgCtx context.Context, raw []byte) {
		processor.Process(msgCtx, raw)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("annotator: consumer stopped with error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("annotator: http server shutdown failed")
	}
	logger.Info().Msg("annotator: stopped")
}
