package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/cv-studio/internal/core/export"
	"github.com/khoahotran/cv-studio/pkg/apperror"
)

func TestRedisExportStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisExportStore(rdb, time.Minute)
	owner := uuid.New()
	file := &export.File{Name: "cv-export-2024-01-01.json", ContentType: export.ContentTypeJSON, Data: []byte(`{"a":1}`)}

	id, err := store.Put(ctx, owner, file)
	require.NoError(t, err)

	got, err := store.Get(ctx, owner, id)
	require.NoError(t, err)
	require.Equal(t, file, got)

	_, err = store.Get(ctx, uuid.New(), id)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = store.Get(ctx, owner, "not-a-uuid")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	ttl, err := rdb.TTL(ctx, "cv:export:"+owner.String()+":"+id).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
}
