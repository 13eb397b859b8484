package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
)

// LoggedItem is emitted once per record written on behalf of a user.
type LoggedItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Kind       string    `json:"kind"`
	RecordID   string    `json:"recordId"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewLoggedItem(userID, kind, recordID, summary string, occurredAt time.Time) LoggedItem {
	return LoggedItem{
		ID:         uuid.NewString(),
		UserID:     userID,
		Kind:       kind,
		RecordID:   recordID,
		Summary:    summary,
		OccurredAt: occurredAt.UTC(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes logged item events to one topic, keyed by user id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, item LoggedItem) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "events.kafka.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("messaging.destination", p.topic),
		attribute.String("event.kind", item.Kind),
	)

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal logged item: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(item.UserID),
		Value: payload,
		Time:  item.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(item.Kind)},
			{Key: "event-id", Value: []byte(item.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events, used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, LoggedItem) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
