package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisRetries = 8

// RedisStore keeps a visitor's key space in Redis under
// "storefront:<namespace>:kv:<key>".
//
// Atomic units are optimistic: they WATCH the namespace version key, buffer
// their writes and commit them together with a version bump in one
// MULTI/EXEC. Every plain write bumps the version too, so a unit that raced
// with any writer is retried from scratch.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	retries int
}

// NewRedisStore binds client to namespace ns.
func NewRedisStore(client *redis.Client, ns string) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  "storefront:" + ns + ":",
		retries: defaultRedisRetries,
	}
}

// OpenRedis connects to addr and checks the connection.
func OpenRedis(ctx context.Context, addr, password string, db int, ns string) (*RedisStore, error) {
	if ns == "" {
		return nil, errors.New("redis kv: namespace is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, ns), nil
}

func (s *RedisStore) dataKey(key string) string { return s.prefix + "kv:" + key }
func (s *RedisStore) versionKey() string        { return s.prefix + "version" }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return redisGet(ctx, s.client, s.dataKey(key))
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.dataKey(key), value, 0)
		p.Incr(ctx, s.versionKey())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.dataKey(key))
		p.Incr(ctx, s.versionKey())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) (map[string][]byte, error) {
	return redisList(ctx, s.client, s.prefix+"kv:")
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := redisKeys(ctx, s.client, s.prefix+"kv:")
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if len(keys) > 0 {
			p.Del(ctx, keys...)
		}
		p.Incr(ctx, s.versionKey())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (s *RedisStore) Atomic(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	for range s.retries {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			return s.runUnit(ctx, tx, fn)
		}, s.versionKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

func (s *RedisStore) runUnit(ctx context.Context, tx *redis.Tx, fn func(ctx context.Context, st Store) error) error {
	ws := newWriteSet(redisView{c: tx, s: s})
	if err := fn(ctx, ws); err != nil {
		return err
	}

	var stale []string
	if ws.cleared {
		keys, err := redisKeys(ctx, tx, s.prefix+"kv:")
		if err != nil {
			return err
		}
		stale = keys
	}
	sets, deletes := ws.pending()
	for _, k := range deletes {
		stale = append(stale, s.dataKey(k))
	}

	_, err := tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if len(stale) > 0 {
			p.Del(ctx, stale...)
		}
		for k, v := range sets {
			p.Set(ctx, s.dataKey(k), v, 0)
		}
		p.Incr(ctx, s.versionKey())
		return nil
	})
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisReader is the read surface shared by *redis.Client and *redis.Tx.
type redisReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// redisView reads through a watched transaction.
type redisView struct {
	c redisReader
	s *RedisStore
}

func (v redisView) Get(ctx context.Context, key string) ([]byte, error) {
	return redisGet(ctx, v.c, v.s.dataKey(key))
}

func (v redisView) List(ctx context.Context) (map[string][]byte, error) {
	return redisList(ctx, v.c, v.s.prefix+"kv:")
}

func (v redisView) Set(context.Context, string, []byte) error { return errReadOnly }
func (v redisView) Delete(context.Context, string) error      { return errReadOnly }
func (v redisView) Clear(context.Context) error               { return errReadOnly }
func (v redisView) Close() error                              { return nil }

func (v redisView) Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return fn(ctx, v)
}

func redisGet(ctx context.Context, c redisReader, fullKey string) ([]byte, error) {
	b, err := c.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", fullKey, err)
	}
	return b, nil
}

func redisKeys(ctx context.Context, c redisReader, prefix string) ([]string, error) {
	var keys []string
	iter := c.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if k := iter.Val(); strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan kv: %w", err)
	}
	return keys, nil
}

func redisList(ctx context.Context, c redisReader, prefix string) (map[string][]byte, error) {
	keys, err := redisKeys(ctx, c, prefix)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := redisGet(ctx, c, k)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return result, nil
}
