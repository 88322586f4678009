package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"organ-annotator/internal/domain"
	"organ-annotator/internal/infra"
	"organ-annotator/internal/pipeline"
	"organ-annotator/internal/providers/leafmachine"
)

// localrun exercises the full annotation path for one digital-media object
// fetched from a specimen API, without Kafka or job tracking. The assembled
// event is logged instead of published, so results can be inspected before a
// machine annotation service is registered.
//
// Usage:
//
//	localrun https://sandbox.dissco.tech/api/digital-media/v1/SANDBOX/ABC-123
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		logger.Fatal().Msg("localrun: usage: localrun <digital-media api url>")
	}
	mediaURL := os.Args[1]

	ctx := context.Background()
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	object, err := fetchDigitalObject(ctx, httpClient, mediaURL)
	if err != nil {
		logger.Fatal().Err(err).Str("url", mediaURL).Msg("localrun: fetch digital object failed")
	}

	detector := leafmachine.NewClient(leafmachine.Options{
		Endpoint:   cfg.InferenceEndpoint,
		Model:      cfg.ModelName,
		HTTPClient: httpClient,
		Logger:     &logger,
	})

	processor := pipeline.New(pipeline.Options{
		Tracker:        noopTracker{},
		Detector:       detector,
		Publisher:      &logPublisher{logger: logger},
		Agent:          domain.NewAgent(cfg.MASID, cfg.MASName),
		ModelReference: cfg.ModelReference,
		Logger:         logger,
	})

	request := domain.JobRequest{JobID: uuid.NewString(), Object: object}
	raw, err := json.Marshal(request)
	if err != nil {
		logger.Fatal().Err(err).Msg("localrun: encode request failed")
	}

	outcome := processor.Process(ctx, raw)
	if outcome.Status != domain.JobStatusPublished {
		os.Exit(1)
	}
}

// fetchDigitalObject loads the digital-media record and extracts the
// attributes this service annotates.
func fetchDigitalObject(ctx context.Context, client *http.Client, mediaURL string) (domain.DigitalObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return domain.DigitalObject{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return domain.DigitalObject{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return domain.DigitalObject{}, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Data struct {
			Attributes domain.DigitalObject `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.DigitalObject{}, fmt.Errorf("decode response: %w", err)
	}
	return decoded.Data.Attributes, nil
}

// noopTracker skips the running-state call; there is no tracked job locally.
type noopTracker struct{}

func (noopTracker) MarkRunning(ctx context.Context, jobID string) error { return nil }

// logPublisher logs outbound payloads instead of sending them to a broker.
type logPublisher struct {
	logger infra.Logger
}

func (p *logPublisher) PublishEvent(ctx context.Context, event domain.AnnotationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.logger.Info().RawJSON("event", body).Msg("localrun: assembled annotation event")
	return nil
}

func (p *logPublisher) PublishFailure(ctx context.Context, record domain.FailureRecord) error {
	p.logger.Error().
		Str("job_id", record.JobID).
		Str("error_message", record.ErrorMessage).
		Msg("localrun: job failed")
	return nil
}
