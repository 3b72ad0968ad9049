package local

import (
	"testing"
	"time"

	ca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/repository/cache"
)

func TestSubscriptionCache(t *testing.T) {
	t.Parallel()

	c := NewSubscriptionCache(ca.New(time.Minute, time.Minute))
	ctx := t.Context()

	_, err := c.Get(ctx, 1)
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	sub := domain.PushSubscription{UserID: 1, Endpoint: "https://push.example.org/abc", P256dh: "key", Auth: "auth"}
	require.NoError(t, c.Set(ctx, sub))

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	require.NoError(t, c.Del(ctx, 1))
	_, err = c.Get(ctx, 1)
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}
