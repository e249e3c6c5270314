package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/storage/kv"
)

const markerKey = "meta:initialized"

type revision struct {
	Value      string `json:"value"`
	ReplacedAt string `json:"replaced_at"`
}

// Store keeps each key as a plain Redis string under constants.RedisKeyPrefix.
// Replaced values are pushed onto a capped list per key.
type Store struct {
	url    string
	client *goredis.Client
}

func New(url string) *Store {
	return &Store{url: url}
}

func (s *Store) connect(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	opts, err := goredis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.client = client
	return nil
}

func (s *Store) Init(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.client.SetNX(ctx, s.key(markerKey), now, 0).Err(); err != nil {
		return fmt.Errorf("failed to initialize redis storage: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	n, err := s.client.Exists(ctx, s.key(markerKey)).Result()
	if err != nil {
		return fmt.Errorf("failed to check redis storage: %w", err)
	}
	if n == 0 {
		return kv.ErrNotInitialized
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, kv.ErrNotInitialized
	}
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return kv.ErrNotInitialized
	}

	prev, err := s.client.Get(ctx, s.key(key)).Result()
	hasPrev := err == nil
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("failed to read key %s: %w", key, err)
	}

	var entry []byte
	if hasPrev && prev != string(value) {
		entry, err = json.Marshal(revision{Value: prev, ReplacedAt: time.Now().UTC().Format(time.RFC3339)})
		if err != nil {
			return fmt.Errorf("failed to encode history for %s: %w", key, err)
		}
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if entry != nil {
			pipe.LPush(ctx, s.historyKey(key), entry)
			pipe.LTrim(ctx, s.historyKey(key), 0, kv.HistoryLimit-1)
		}
		pipe.Set(ctx, s.key(key), value, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return kv.ErrNotInitialized
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// History returns up to limit previous values of key, newest first.
func (s *Store) History(ctx context.Context, key string, limit int) ([]kv.Revision, error) {
	if s.client == nil {
		return nil, kv.ErrNotInitialized
	}
	if limit <= 0 {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, s.historyKey(key), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", key, err)
	}

	revisions := make([]kv.Revision, 0, len(raw))
	for _, item := range raw {
		var rev revision
		if err := json.Unmarshal([]byte(item), &rev); err != nil {
			continue
		}
		revisions = append(revisions, kv.Revision{Value: []byte(rev.Value), ReplacedAt: rev.ReplacedAt})
	}
	return revisions, nil
}

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) Location() string {
	return "redis"
}

func (s *Store) key(k string) string {
	return constants.RedisKeyPrefix + k
}

func (s *Store) historyKey(k string) string {
	return constants.RedisKeyPrefix + "history:" + k
}
