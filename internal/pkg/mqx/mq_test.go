package mqx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func TestMQProducerAndConsumer(t *testing.T) {
	t.Parallel()

	const topic = "mqx_test"
	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(t.Context(), topic, 1))

	c, err := q.Consumer(topic, "mqx_test_group")
	require.NoError(t, err)
	consumer := NewMQConsumer(c, 50*time.Millisecond)
	defer consumer.Close()

	p, err := q.Producer(topic)
	require.NoError(t, err)
	producer := NewMQProducer[testEvent](p, func(evt testEvent) string { return evt.Date })

	evt := testEvent{Date: "2025-03-01", Count: 3}
	require.NoError(t, producer.Produce(t.Context(), evt))

	msg, err := consumer.Next(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []byte("2025-03-01"), msg.Key)

	var got testEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, evt, got)
	assert.NoError(t, consumer.Commit(t.Context(), msg))

	_, err = consumer.Next(t.Context())
	assert.ErrorIs(t, err, ErrNoMessage)
}
