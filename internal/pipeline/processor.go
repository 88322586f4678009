package pipeline

import (
	"context"
	"time"

	"organ-annotator/internal/annotation"
	"organ-annotator/internal/domain"
	"organ-annotator/internal/infra"
)

// JobTracker records job state transitions with the external tracking
// service.
type JobTracker interface {
	MarkRunning(ctx context.Context, jobID string) error
}

// Detector runs plant-organ detection for one image.
type Detector interface {
	Detect(ctx context.Context, imageURI string) (domain.InferenceResult, error)
}

// Publisher delivers the terminal message of one job: an annotation event on
// success, a failure record otherwise.
type Publisher interface {
	PublishEvent(ctx context.Context, event domain.AnnotationEvent) error
	PublishFailure(ctx context.Context, record domain.FailureRecord) error
}

// Outcome is the terminal result of one message. Published outcomes carry the
// event; failed outcomes carry the failure record, which stays unpublished
// when no job id could be decoded from the message.
type Outcome struct {
	Status  domain.JobStatus
	Event   *domain.AnnotationEvent
	Failure *domain.FailureRecord
}

// Options wires the processor's collaborators.
type Options struct {
	Tracker        JobTracker
	Detector       Detector
	Publisher      Publisher
	Agent          domain.Agent
	ModelReference string
	Logger         infra.Logger
	Now            func() time.Time
}

// Processor drives one job message through the running to published or
// failed lifecycle. Processing is strictly sequential per instance; the only
// state shared between messages is the constant agent and the counters.
type Processor struct {
	tracker   JobTracker
	detector  Detector
	publisher Publisher
	agent     domain.Agent
	modelRef  string
	logger    infra.Logger
	now       func() time.Time
	stats     Stats
}

// New constructs a Processor.
func New(opts Options) *Processor {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		tracker:   opts.Tracker,
		detector:  opts.Detector,
		publisher: opts.Publisher,
		agent:     opts.Agent,
		modelRef:  opts.ModelReference,
		logger:    opts.Logger,
		now:       now,
	}
}

// Stats exposes the processing counters for the operational endpoints.
func (p *Processor) Stats() *Stats {
	return &p.stats
}

// Process handles one raw message and returns its terminal outcome. Errors
// from any stage funnel through the single failure path exactly once;
// nothing is retried here, redelivery is the transport's concern.
func (p *Processor) Process(ctx context.Context, raw []byte) Outcome {
	p.stats.consumed.Add(1)

	req, err := domain.DecodeJobRequest(raw)
	if err != nil {
		// Without a job id the failure cannot be addressed to anyone;
		// log and drop instead of publishing.
		if req.JobID == "" {
			p.stats.failed.Add(1)
			p.logger.Error().Err(err).Msg("pipeline: dropping message without job id")
			return Outcome{
				Status:  domain.JobStatusFailed,
				Failure: &domain.FailureRecord{ErrorMessage: err.Error()},
			}
		}
		return p.fail(ctx, req.JobID, err)
	}

	p.logger.Info().
		Str("job_id", req.JobID).
		Str("image_uri", req.Object.AccessURI).
		Msg("pipeline: job received")

	event, err := p.annotate(ctx, req)
	if err != nil {
		return p.fail(ctx, req.JobID, err)
	}

	p.stats.published.Add(1)
	p.logger.Info().
		Str("job_id", req.JobID).
		Int("annotations", len(event.Annotations)).
		Msg("pipeline: job published")
	return Outcome{Status: domain.JobStatusPublished, Event: event}
}

// annotate runs the running, inference, mapping, assembly and publish stages
// for one decoded job. The first error aborts the chain.
func (p *Processor) annotate(ctx context.Context, req domain.JobRequest) (*domain.AnnotationEvent, error) {
	if err := p.tracker.MarkRunning(ctx, req.JobID); err != nil {
		return nil, err
	}

	result, err := p.detector.Detect(ctx, req.Object.AccessURI)
	if err != nil {
		return nil, err
	}

	created := domain.FormatTimestamp(p.now())
	annotations, err := p.mapResult(req.Object, result, created)
	if err != nil {
		return nil, err
	}

	event := annotation.AssembleEvent(annotations, req.JobID)
	if err := p.publisher.PublishEvent(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

// mapResult maps detections to annotations, or falls back to a single
// comment annotation when the model found nothing. Every annotation of one
// message shares the same creation timestamp.
func (p *Processor) mapResult(obj domain.DigitalObject, result domain.InferenceResult, created string) ([]domain.Annotation, error) {
	if len(result.Detections) == 0 {
		p.logger.Info().Str("image_uri", obj.AccessURI).Msg("pipeline: no plant components found")
		selector := annotation.FullImageSelector(result.ImageWidth, result.ImageHeight)
		comment, err := annotation.MapComment(p.agent, created, annotation.NoComponentsMessage, selector, obj.ID, obj.Type)
		if err != nil {
			return nil, err
		}
		return []domain.Annotation{comment}, nil
	}

	annotations := make([]domain.Annotation, 0, len(result.Detections))
	for _, det := range result.Detections {
		selector := annotation.SelectorFromBox(det.BoundingBox, result.ImageWidth, result.ImageHeight)
		mapped, err := annotation.MapDetection(p.agent, created, det, selector, obj.ID, obj.Type, p.modelRef)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, mapped)
	}
	return annotations, nil
}

// fail converts err into the job's failure record and publishes it. This is
// the single failure boundary; a publish error on the failure channel itself
// is logged and swallowed so the consumer keeps moving.
func (p *Processor) fail(ctx context.Context, jobID string, err error) Outcome {
	p.stats.failed.Add(1)
	record := domain.FailureRecord{JobID: jobID, ErrorMessage: err.Error()}
	p.logger.Error().Err(err).Str("job_id", jobID).Msg("pipeline: job failed")
	if pubErr := p.publisher.PublishFailure(ctx, record); pubErr != nil {
		p.logger.Error().Err(pubErr).Str("job_id", jobID).Msg("pipeline: failure record publish failed")
	}
	return Outcome{Status: domain.JobStatusFailed, Failure: &record}
}
