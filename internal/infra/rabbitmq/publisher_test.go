package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/domain"
)

func TestEncode_Envelope(t *testing.T) {
	now := time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC)
	evt := domain.OrderStatusUpdatedEvent{OrderID: "o1", UserID: "u1", Status: domain.OrderStatusAccepted, UpdatedAt: now}

	body, err := encode("order.status_updated", evt, now)
	require.NoError(t, err)

	var got struct {
		Pattern string                         `json:"pattern"`
		Data    domain.OrderStatusUpdatedEvent `json:"data"`
		SentAt  time.Time                      `json:"sentAt"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "order.status_updated", got.Pattern)
	assert.Equal(t, evt, got.Data)
	assert.True(t, got.SentAt.Equal(now))
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode("x", make(chan int), time.Now())
	assert.Error(t, err)
}
