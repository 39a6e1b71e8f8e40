package kafka

import (
	"encoding/json"
	"testing"

	"github.com/example/cart-store/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	n := notification.New(notification.KindOutOfStock, "Requested quantity is out of stock", 42)

	msg, err := newMessage(n)

	require.NoError(t, err)
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, n.CreatedAt, msg.Time)

	var decoded notification.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, n.ID, decoded.ID)
	assert.Equal(t, n.Kind, decoded.Kind)
	assert.Equal(t, n.Message, decoded.Message)
	assert.Equal(t, 42, decoded.ProductID)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "application/json", headers["content-type"])
	assert.Equal(t, "out_of_stock", headers["notification-kind"])
}

func TestNewMessage_SameProductSameKey(t *testing.T) {
	a, err := newMessage(notification.New(notification.KindAddFailed, "Error adding product", 7))
	require.NoError(t, err)
	b, err := newMessage(notification.New(notification.KindRemoveFailed, "Error removing product", 7))
	require.NoError(t, err)

	assert.Equal(t, a.Key, b.Key)
}
