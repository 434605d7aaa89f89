package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:"

// RedisStore keeps flags as plain keys and sets as Redis sets
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the server
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetFlag(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Get(ctx, keyPrefix+"flag:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read flag %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) SetFlag(ctx context.Context, key string) error {
	if err := s.client.Set(ctx, keyPrefix+"flag:"+key, "true", 0).Err(); err != nil {
		return fmt.Errorf("failed to set flag %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) AddMember(ctx context.Context, set, member string) (bool, error) {
	n, err := s.client.SAdd(ctx, keyPrefix+"set:"+set, member).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add member to %s: %w", set, err)
	}
	return n == 1, nil
}

// Members returns the set sorted
func (s *RedisStore) Members(ctx context.Context, set string) ([]string, error) {
	members, err := s.client.SMembers(ctx, keyPrefix+"set:"+set).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", set, err)
	}
	sort.Strings(members)
	return members, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
