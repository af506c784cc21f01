package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, BackoffDelay(1))
	assert.Equal(t, 4*time.Second, BackoffDelay(2))
	assert.Equal(t, 8*time.Second, BackoffDelay(3))

	// Out-of-range attempts clamp to the first delay.
	assert.Equal(t, 2*time.Second, BackoffDelay(0))
	assert.Equal(t, 2*time.Second, BackoffDelay(-3))
}

func TestJobPayloadRoundTrip(t *testing.T) {
	carouselID := uuid.New()
	slideID := uuid.New()

	msg := Message{
		ID:   uuid.New().String(),
		Name: JobRenderHires,
		Payload: JobPayload{
			CarouselID: carouselID,
			SlideIDs:   []uuid.UUID{slideID},
		},
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	var got Message
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, msg.Name, got.Name)
	assert.Equal(t, carouselID, got.Payload.CarouselID)
	assert.Equal(t, []uuid.UUID{slideID}, got.Payload.SlideIDs)
}

func TestJobPayloadOmitsEmptyFields(t *testing.T) {
	body, err := json.Marshal(JobPayload{CarouselID: uuid.New()})
	require.NoError(t, err)

	assert.NotContains(t, string(body), "slideIds")
	assert.NotContains(t, string(body), "step")
}

func TestDeliveryAttempt(t *testing.T) {
	assert.Equal(t, 1, DeliveryAttempt(amqp.Delivery{}), "missing header defaults to first attempt")

	d := amqp.Delivery{Headers: amqp.Table{attemptHeader: int32(2)}}
	assert.Equal(t, 2, DeliveryAttempt(d))

	d = amqp.Delivery{Headers: amqp.Table{attemptHeader: int64(3)}}
	assert.Equal(t, 3, DeliveryAttempt(d))

	d = amqp.Delivery{Headers: amqp.Table{attemptHeader: "garbage"}}
	assert.Equal(t, 1, DeliveryAttempt(d))
}
