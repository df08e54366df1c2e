package article

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// DefaultRedisKey is the list holding the article documents.
const DefaultRedisKey = "cardfeed:articles"

// RedisStore appends articles as JSON documents to a single Redis list, so
// LRANGE returns them in insertion order.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	opts   options

	mu        sync.Mutex
	connected bool
	last      time.Time
}

func NewRedisStore(client redis.UniversalClient, key string, opts ...Option) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisStore{client: client, key: key, opts: newOptions(opts)}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func (s *RedisStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	if s.opts.seed {
		n, err := s.client.LLen(ctx, s.key).Result()
		if err != nil {
			return fmt.Errorf("count articles: %w", err)
		}

		if n == 0 {
			records := s.opts.seedRecords()
			docs := make([]interface{}, 0, len(records))
			for _, a := range records {
				doc, err := json.Marshal(a)
				if err != nil {
					return fmt.Errorf("encode article: %w", err)
				}
				docs = append(docs, doc)
			}

			if err := s.client.RPush(ctx, s.key, docs...).Err(); err != nil {
				return fmt.Errorf("seed articles: %w", err)
			}
			s.last = records[len(records)-1].CreatedAt
		}
	}

	s.connected = true

	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]model.Article, error) {
	if !s.isConnected() {
		return nil, ErrNotConnected
	}

	docs, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	articles := make([]model.Article, 0, len(docs))
	for _, doc := range docs {
		var a model.Article
		if err := json.Unmarshal([]byte(doc), &a); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, nil
}

func (s *RedisStore) Create(ctx context.Context, in model.NewArticle) (model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.Article{}, ErrNotConnected
	}

	a := s.opts.build(in, s.last)

	doc, err := json.Marshal(a)
	if err != nil {
		return model.Article{}, fmt.Errorf("encode article: %w", err)
	}

	if err := s.client.RPush(ctx, s.key, doc).Err(); err != nil {
		return model.Article{}, fmt.Errorf("append article: %w", err)
	}
	s.last = a.CreatedAt

	return a, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("delete articles: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) isConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.connected
}
