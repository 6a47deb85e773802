package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/internal/core/export"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

const defaultExportTTL = 24 * time.Hour

// NewRedisClient connects the download store and checks it answers.
func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("can not connect Redis at %s: %w", cfg.Redis.Addr, err)
	}

	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr), zap.Duration("export_ttl", cfg.Redis.ExportTTL))
	return rdb, nil
}

type redisExportStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisExportStore keeps finished exports under cv:export:<owner>:<id>
// until ttl expires.
func NewRedisExportStore(rdb *redis.Client, ttl time.Duration) service.ExportStore {
	if ttl <= 0 {
		ttl = defaultExportTTL
	}
	return &redisExportStore{rdb: rdb, ttl: ttl}
}

func (s *redisExportStore) key(ownerID uuid.UUID, downloadID string) string {
	return fmt.Sprintf("cv:export:%s:%s", ownerID, downloadID)
}

func (s *redisExportStore) Put(ctx context.Context, ownerID uuid.UUID, file *export.File) (string, error) {
	data, err := json.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	downloadID := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(ownerID, downloadID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store export: %w", err)
	}
	return downloadID, nil
}

func (s *redisExportStore) Get(ctx context.Context, ownerID uuid.UUID, downloadID string) (*export.File, error) {
	if _, err := uuid.Parse(downloadID); err != nil {
		return nil, apperror.NewNotFound("export", downloadID)
	}
	data, err := s.rdb.Get(ctx, s.key(ownerID, downloadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.NewNotFound("export", downloadID)
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to read export", err)
	}
	file := &export.File{}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, apperror.NewInternal("stored export is corrupt", err)
	}
	return file, nil
}
