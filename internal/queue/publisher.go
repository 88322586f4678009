package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"organ-annotator/internal/domain"
	"organ-annotator/internal/infra"
)

// FailureTopic is the fixed channel for failure records. Annotation events go
// to the configured producer topic; failures always land here.
const FailureTopic = "mas-failed"

// PublisherOptions configures the outbound writers.
type PublisherOptions struct {
	Host       string
	EventTopic string
	Logger     infra.Logger
}

// Publisher sends annotation events and failure records to their topics.
// Writes are synchronous and acknowledged by all replicas, so publish order
// follows processing order.
type Publisher struct {
	events   *kafka.Writer
	failures *kafka.Writer
	logger   infra.Logger
}

// NewPublisher builds writers for the event topic and the failure topic.
func NewPublisher(opts PublisherOptions) *Publisher {
	return &Publisher{
		events:   newWriter(opts.Host, opts.EventTopic),
		failures: newWriter(opts.Host, FailureTopic),
		logger:   opts.Logger,
	}
}

func newWriter(host, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(host),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    1,
	}
}

// PublishEvent sends one annotation event keyed by its job id.
func (p *Publisher) PublishEvent(ctx context.Context, event domain.AnnotationEvent) error {
	msg, err := eventMessage(event)
	if err != nil {
		return err
	}
	if err := p.events.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: event for job %s: %v", domain.ErrPublish, event.JobID, err)
	}
	p.logger.Info().
		Str("job_id", event.JobID).
		Int("annotations", len(event.Annotations)).
		Msg("queue: published annotation event")
	return nil
}

// PublishFailure sends one failure record to the failure topic.
func (p *Publisher) PublishFailure(ctx context.Context, record domain.FailureRecord) error {
	msg, err := failureMessage(record)
	if err != nil {
		return err
	}
	if err := p.failures.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: failure for job %s: %v", domain.ErrPublish, record.JobID, err)
	}
	p.logger.Info().Str("job_id", record.JobID).Msg("queue: published failure record")
	return nil
}

// Close flushes and closes both writers.
func (p *Publisher) Close() error {
	eventsErr := p.events.Close()
	failuresErr := p.failures.Close()
	if eventsErr != nil {
		return eventsErr
	}
	return failuresErr
}

func eventMessage(event domain.AnnotationEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: encode event: %v", domain.ErrPublish, err)
	}
	return kafka.Message{Key: []byte(event.JobID), Value: value}, nil
}

func failureMessage(record domain.FailureRecord) (kafka.Message, error) {
	value, err := json.Marshal(record)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: encode failure: %v", domain.ErrPublish, err)
	}
	return kafka.Message{Key: []byte(record.JobID), Value: value}, nil
}
