package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := newKafkaPublisher(w, "coach.logged-items")

	occurred := time.Date(2025, time.February, 12, 13, 0, 0, 0, time.FixedZone("CET", 3600))
	item := NewLoggedItem("user-1", "meal", "rec-1", "🍽️ Logged lunch: chicken and rice (~600 kcal)", occurred)
	require.NotEmpty(t, item.ID)
	assert.Equal(t, time.UTC, item.OccurredAt.Location())

	require.NoError(t, p.Publish(context.Background(), item))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "user-1", string(msg.Key))
	assert.Equal(t, []kafka.Header{
		{Key: "kind", Value: []byte("meal")},
		{Key: "event-id", Value: []byte(item.ID)},
	}, msg.Headers)

	var decoded LoggedItem
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, item.ID, decoded.ID)
	assert.Equal(t, "rec-1", decoded.RecordID)
	assert.True(t, occurred.Equal(decoded.OccurredAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := newKafkaPublisher(&recordingWriter{err: errors.New("leader not available")}, "t")
	err := p.Publish(context.Background(), NewLoggedItem("u", "meal", "r", "s", time.Now()))
	assert.ErrorContains(t, err, "leader not available")
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.Publish(context.Background(), LoggedItem{}))
	assert.NoError(t, p.Close())
}
