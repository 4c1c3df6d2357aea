package kv

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	store, err := NewGormWithConn(conn)
	require.NoError(t, err)
	return store
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.False(t, found, "missing key should not be found")

	require.NoError(t, store.Set(ctx, "inventory", []byte(`[{"name":"Bottle"}]`)))

	value, found, err := store.Get(ctx, "inventory")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"name":"Bottle"}]`, string(value))
}

func TestGormStoreSetOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "app_version", []byte(`"2.2.0"`)))
	require.NoError(t, store.Set(ctx, "app_version", []byte(`"2.3.0"`)))

	value, found, err := store.Get(ctx, "app_version")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `"2.3.0"`, string(value))
}

func TestGormStoreDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "customers", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "customers"))
	require.NoError(t, store.Delete(ctx, "customers"), "deleting an absent key is not an error")

	_, found, err := store.Get(ctx, "customers")
	require.NoError(t, err)
	assert.False(t, found)
}

type fakeRedisCmdable struct {
	values map[string]string
}

func (f *fakeRedisCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedisCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if value, ok := f.values[key]; ok {
		return redis.NewStringResult(value, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedisCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.values == nil {
		f.values = map[string]string{}
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedisCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisStoreNamespacesKeys(t *testing.T) {
	fake := &fakeRedisCmdable{}
	store := &RedisStore{store: fake}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "recipes", []byte(`[]`)))
	assert.Contains(t, fake.values, "aquatrack:kv:recipes")

	value, found, err := store.Get(ctx, "recipes")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[]`, string(value))

	_, found, err = store.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Delete(ctx, "recipes"))
	_, found, err = store.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.False(t, found)
}
