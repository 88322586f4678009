package queue

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"organ-annotator/internal/infra"
)

// readErrorBackoff paces the read loop when the broker is unreachable so the
// log stays readable while the reader reconnects.
const readErrorBackoff = 2 * time.Second

// ConsumerOptions configures the inbound topic reader.
type ConsumerOptions struct {
	Host    string
	Topic   string
	GroupID string
	Logger  infra.Logger
}

// messageReader is the part of kafka.Reader the consume loop drives, split
// out so the loop can be tested without a broker.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads job messages from the inbound topic. Within one instance
// messages are handled strictly in order: a message is fully processed before
// the next one is read. The offset commits only after handling completes, so
// delivery is at-least-once and a crash mid-message redelivers it.
type Consumer struct {
	reader messageReader
	logger infra.Logger
}

// NewConsumer builds a group consumer for the given topic.
func NewConsumer(opts ConsumerOptions) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{opts.Host},
		GroupID:  opts.GroupID,
		Topic:    opts.Topic,
		MinBytes: 1,
		MaxBytes: 10 << 20,
	})
	return &Consumer{reader: reader, logger: opts.Logger}
}

// Run consumes until ctx is canceled or the reader is closed, invoking handle
// with every message value in consumption order. Each message is handled and
// committed with a fresh context detached from ctx so an in-flight job
// reaches its terminal state during shutdown; ctx only gates fetching the
// next message. A crash before the commit leaves the offset uncommitted and
// the message is redelivered.
func (c *Consumer) Run(ctx context.Context, handle func(context.Context, []byte)) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error().Err(err).Msg("queue: fetch failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readErrorBackoff):
			}
			continue
		}

		c.logger.Info().
			Str("topic", msg.Topic).
			Int("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Msg("queue: received message")
		handle(context.Background(), msg.Value)

		// A failed commit leaves the message to be redelivered.
		if err := c.reader.CommitMessages(context.Background(), msg); err != nil {
			c.logger.Error().
				Int64("offset", msg.Offset).
				Err(err).
				Msg("queue: commit failed")
		}
	}
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
