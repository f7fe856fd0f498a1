package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Likes int    `json:"likes"`
}

func withRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func withLocal(t *testing.T) {
	t.Helper()
	SetClient(nil)
	ResetLocal()
	t.Cleanup(ResetLocal)
}

func TestAside_Redis(t *testing.T) {
	mr := withRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *entry) func() error {
		return func() error {
			calls++
			*dest = entry{Name: "paris", Likes: 3}
			return nil
		}
	}

	var first entry
	require.NoError(t, Aside(ctx, "k", &first, time.Minute, fetch(&first)))
	var second entry
	require.NoError(t, Aside(ctx, "k", &second, time.Minute, fetch(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("k"))

	Invalidate(ctx, "k")
	assert.False(t, mr.Exists("k"))
}

func TestAside_LocalTier(t *testing.T) {
	withLocal(t)
	ctx := context.Background()

	calls := 0
	var got entry
	fetch := func() error {
		calls++
		got = entry{Name: "tokyo", Likes: 1}
		return nil
	}

	require.NoError(t, Aside(ctx, "k", &got, time.Minute, fetch))
	require.NoError(t, Aside(ctx, "k", &got, time.Minute, fetch))
	assert.Equal(t, 1, calls)

	Invalidate(ctx, "k")
	require.NoError(t, Aside(ctx, "k", &got, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestAside_LocalTierExpiry(t *testing.T) {
	withLocal(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "short", entry{Name: "rome"}, time.Nanosecond))
	time.Sleep(time.Millisecond)

	var got entry
	found, err := GetJSON(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	withLocal(t)
	ctx := context.Background()
	boom := errors.New("db down")

	var got entry
	err := Aside(ctx, "k", &got, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	found, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitRedis(t *testing.T) {
	t.Cleanup(func() { SetClient(nil) })

	mr := miniredis.RunT(t)
	InitRedis("redis://" + mr.Addr())
	assert.NotNil(t, GetClient())

	InitRedis("")
	assert.Nil(t, GetClient())

	InitRedis("redis://%zz")
	assert.Nil(t, GetClient())
}
