package article

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStoreNotConnected(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisStore(client, "")

	_, err := s.List(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = s.Create(context.Background(), model.NewArticle{Title: "Hi"})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRedisStoreSeedOnce(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	s := NewRedisStore(client, "", WithSeed(true))
	require.NoError(t, s.Connect(ctx))

	n, err := client.LLen(ctx, DefaultRedisKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(len(seedArticles)), n)

	// a second process finds the data and leaves it alone
	other := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "", WithSeed(true))
	require.NoError(t, other.Connect(ctx))
	defer other.Close()

	articles, err := other.List(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, len(seedArticles))
	assert.Equal(t, "Atardecer en la ciudad", articles[0].Title)
}

func TestRedisStoreCreateListClear(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewRedisStore(client, "test:articles", WithClock(func() time.Time {
		now = now.Add(time.Second)

		return now
	}))
	require.NoError(t, s.Connect(ctx))

	a, err := s.Create(ctx, model.NewArticle{Title: "A", Description: "first", Views: 3})
	require.NoError(t, err)
	b, err := s.Create(ctx, model.NewArticle{Title: "B", Author: "ana"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, b.CreatedAt.After(a.CreatedAt))
	assert.Zero(t, b.Likes)

	articles, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, a.ID, articles[0].ID)
	assert.Equal(t, "first", articles[0].Description)
	assert.Equal(t, int64(3), articles[0].Views)
	assert.True(t, a.CreatedAt.Equal(articles[0].CreatedAt))
	assert.Equal(t, "ana", articles[1].Author)

	require.NoError(t, s.Clear(ctx))
	articles, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestRedisStoreConnectFails(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	s := NewRedisStore(client, "")
	assert.Error(t, s.Connect(context.Background()))
}

func TestRedisStoreCloseReleasesClient(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisStore(client, "")
	require.NoError(t, s.Connect(context.Background()))

	require.NoError(t, s.Close())
	assert.ErrorIs(t, client.Ping(context.Background()).Err(), redis.ErrClosed)
}
