package kv

import (
	"context"
	"fmt"

	"github.com/amara-labs/zawadi-backend/pkg/config"
	"github.com/amara-labs/zawadi-backend/pkg/redis"
)

// NewStore constructs a Store from the snapshot configuration. The redis
// backend also needs the redis section of the config.
func NewStore(ctx context.Context, snapshot config.SnapshotConfig, redisCfg config.RedisConfig) (Store, error) {
	switch snapshot.NormalizedBackend() {
	case config.SnapshotBackendMemory:
		return NewMemoryStore(), nil
	case config.SnapshotBackendFile:
		if snapshot.FilePath == "" {
			return nil, fmt.Errorf("file path required for file snapshot store")
		}
		return NewFileStore(snapshot.FilePath)
	case config.SnapshotBackendRedis:
		client, err := redis.New(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrapping redis snapshot store: %w", err)
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown snapshot store kind: %s", snapshot.Backend)
	}
}
