package catalog

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultRedisKey = "catalog:products"

// RedisStore keeps the encoded document under a single key.
type RedisStore struct {
	rdb redis.Cmdable
	key string
	log *zap.Logger
}

func NewRedisStore(rdb redis.Cmdable, key string, log *zap.Logger) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{rdb: rdb, key: key, log: log}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		if err := s.rdb.Ping(ctx).Err(); err != nil {
			return &StoreError{Op: "ping", Err: err}
		}
		return nil
	})
}

func (s *RedisStore) Read(ctx context.Context) ([]Bundle, error) {
	var data []byte

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		raw, err := s.rdb.Get(ctx, s.key).Bytes()
		if errors.Is(err, redis.Nil) {
			return s.bootstrap(ctx)
		}
		if err != nil {
			return &StoreError{Op: "read", Err: err}
		}
		data = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeBundles(data)
}

func (s *RedisStore) bootstrap(ctx context.Context) error {
	empty, err := encodeBundles(nil)
	if err != nil {
		return err
	}
	if err := s.rdb.SetNX(ctx, s.key, empty, 0).Err(); err != nil {
		return &StoreError{Op: "bootstrap", Err: err}
	}
	s.log.Warn("product key not found, created an empty one", zap.String("key", s.key))
	return nil
}

func (s *RedisStore) Write(ctx context.Context, bundles []Bundle) error {
	data, err := encodeBundles(bundles)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
			return &StoreError{Op: "write", Err: err}
		}
		return nil
	})
}
