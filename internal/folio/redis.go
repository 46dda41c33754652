package folio

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"
)

// RedisStore increments counters with INCR. Redis cannot join a database
// transaction, so numbers are unique but may have gaps.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "folio"
	}

	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *RedisStore) Increment(ctx context.Context, tenantID uuid.UUID, series string) (int64, error) {
	n, err := s.rdb.Incr(ctx, s.key(tenantID, series)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}

	return n, nil
}

func (s *RedisStore) key(tenantID uuid.UUID, series string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, tenantID, series)
}
