package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), RKMatchCreated, map[string]string{"id": "m1"}))
	assert.NoError(t, p.Close())
}

func TestNewAMQPPublisherBadURL(t *testing.T) {
	_, err := NewAMQPPublisher("amqp://127.0.0.1:1/", "golf.events")
	assert.Error(t, err)
}

// TestAMQPPublisher needs a broker at RABBITMQ_URL.
func TestAMQPPublisher(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}
	exchange := "golf.test." + uuid.NewString()[:8]

	publisher, err := NewAMQPPublisher(url, exchange)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ch.ExchangeDelete(exchange, false, false)
		_ = ch.Close()
	})

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "score.*", exchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, publisher.Publish(ctx, RKMatchStarted, map[string]string{"match_id": "m1"}))
	require.NoError(t, publisher.Publish(ctx, RKScoreSubmitted, map[string]any{"match_id": "m1", "hole": 3}))

	select {
	case d := <-deliveries:
		assert.Equal(t, RKScoreSubmitted, d.RoutingKey)
		assert.Equal(t, "application/json", d.ContentType)
		var body map[string]any
		require.NoError(t, json.Unmarshal(d.Body, &body))
		assert.EqualValues(t, 3, body["hole"])
	case <-ctx.Done():
		t.Fatal("no delivery received")
	}
}
