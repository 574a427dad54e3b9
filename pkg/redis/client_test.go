package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_InvalidURL(t *testing.T) {
	err := Init("not-a-redis-url", "")
	assert.Error(t, err)
}

func TestInit_Unreachable(t *testing.T) {
	err := Init("redis://127.0.0.1:1", "")
	assert.Error(t, err)
}

func TestInitAndBasicOperations(t *testing.T) {
	srv := miniredis.RunT(t)

	require.NoError(t, Init(fmt.Sprintf("redis://%s", srv.Addr()), ""))
	assert.NotNil(t, GetClient())

	ctx := context.Background()
	require.NoError(t, Set(ctx, "k", "v", time.Minute))

	val, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestSetClient(t *testing.T) {
	srv := miniredis.RunT(t)

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	assert.Same(t, cli, GetClient())
}
