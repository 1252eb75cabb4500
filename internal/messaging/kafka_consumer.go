package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/prop-probability-service/internal/metrics"
	"github.com/cypherlabdev/prop-probability-service/internal/models"
	"github.com/cypherlabdev/prop-probability-service/internal/store"
)

const (
	initialRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff     = 30 * time.Second
)

// errMalformedMessage marks a message that can never be processed
var errMalformedMessage = errors.New("malformed message")

// messageReader is the subset of *kafka.Reader the consumer uses
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// KafkaConsumer consumes game-log batches from Kafka and appends them to
// the record store
type KafkaConsumer struct {
	reader     messageReader
	writer     store.GameLogWriter
	logger     zerolog.Logger
	backoff    time.Duration
	maxBackoff time.Duration
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "game_logs"
	GroupID string   // e.g., "prop-probability"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	writer store.GameLogWriter,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:     reader,
		writer:     writer,
		logger:     logger.With().Str("component", "kafka_consumer").Logger(),
		backoff:    initialRetryBackoff,
		maxBackoff: maxRetryBackoff,
	}
}

// Start consumes until ctx is canceled. A message is committed only after
// its records are stored; a failed store is retried with backoff on the
// same message. Malformed messages are logged and committed past.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming game logs")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info().Msg("stopping Kafka consumer")
				return nil
			}
			c.logger.Error().Err(err).Msg("failed to fetch message")
			continue
		}

		if err := c.processWithRetry(ctx, msg); err != nil {
			c.logger.Info().
				Int64("offset", msg.Offset).
				Msg("stopping Kafka consumer with uncommitted message")
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error().Err(err).Msg("failed to commit message")
		}
	}
}

// processWithRetry processes msg until it is stored or found malformed.
// It returns an error only when ctx ends first.
func (c *KafkaConsumer) processWithRetry(ctx context.Context, msg kafka.Message) error {
	wait := c.backoff
	for attempt := 1; ; attempt++ {
		err := c.processMessage(ctx, msg)
		if err == nil {
			return nil
		}
		if errors.Is(err, errMalformedMessage) {
			c.logger.Error().
				Err(err).
				Int64("offset", msg.Offset).
				Str("key", string(msg.Key)).
				Msg("skipping malformed message")
			return nil
		}

		c.logger.Warn().
			Err(err).
			Int64("offset", msg.Offset).
			Str("key", string(msg.Key)).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("failed to process message, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		wait *= 2
		if wait > c.maxBackoff {
			wait = c.maxBackoff
		}
	}
}

// processMessage decodes one batch and appends its usable records
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var batch models.GameLogBatchMessage
	if err := json.Unmarshal(msg.Value, &batch); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w: %w", errMalformedMessage, err)
	}
	if batch.BatchID == "" {
		batch.BatchID = uuid.NewString()
	}

	records := make([]models.GameRecord, 0, len(batch.Records))
	for _, r := range batch.Records {
		if strings.TrimSpace(r.Player) == "" || r.Date.IsZero() {
			c.logger.Warn().
				Str("batch_id", batch.BatchID).
				Str("record_id", r.ID.String()).
				Msg("dropping game record without player or date")
			continue
		}
		r.Opponent = strings.ToUpper(strings.TrimSpace(r.Opponent))
		records = append(records, r)
	}

	if len(records) == 0 {
		c.logger.Debug().Str("batch_id", batch.BatchID).Msg("empty game log batch")
		return nil
	}

	if err := c.writer.AppendGames(ctx, records); err != nil {
		return fmt.Errorf("failed to store batch %s: %w", batch.BatchID, err)
	}
	metrics.IngestedRecords.Add(float64(len(records)))

	c.logger.Info().
		Int("received", len(batch.Records)).
		Int("stored", len(records)).
		Str("batch_id", batch.BatchID).
		Msg("ingested game log batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
