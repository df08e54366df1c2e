package article

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// PgxPool is the subset of *pgxpool.Pool the store uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS articles (
	seq         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	author      TEXT NOT NULL,
	views       BIGINT NOT NULL DEFAULT 0 CHECK (views >= 0),
	likes       BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0),
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertArticleSQL = `
INSERT INTO articles (id, title, description, author, views, likes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const lastCreatedSQL = `SELECT coalesce(max(created_at), 'epoch'::timestamptz) FROM articles`

const listArticlesSQL = `
SELECT id, title, description, author, views, likes, created_at
FROM articles
ORDER BY seq`

// PostgresStore persists articles in a single PostgreSQL table. The seq
// column records insertion order.
type PostgresStore struct {
	pool PgxPool
	opts options

	mu        sync.Mutex
	connected bool
	last      time.Time
}

func NewPostgresStore(pool PgxPool, opts ...Option) *PostgresStore {
	return &PostgresStore{pool: pool, opts: newOptions(opts)}
}

// NewPostgresPool parses dsn and opens a verified connection pool.
func NewPostgresPool(ctx context.Context, dsn string, connectTimeout time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	config.ConnConfig.ConnectTimeout = connectTimeout

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return pool, nil
}

func (s *PostgresStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}

	// restarts must not hand out creation times older than stored ones
	var last time.Time
	if err := s.pool.QueryRow(ctx, lastCreatedSQL).Scan(&last); err != nil {
		return fmt.Errorf("query last created_at: %w", err)
	}
	s.last = last.UTC()

	if s.opts.seed {
		var count int64
		if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM articles").Scan(&count); err != nil {
			return fmt.Errorf("count articles: %w", err)
		}

		if count == 0 {
			for _, a := range s.opts.seedRecords() {
				if err := s.insert(ctx, a); err != nil {
					return fmt.Errorf("seed articles: %w", err)
				}
				s.last = a.CreatedAt
			}
		}
	}

	s.connected = true

	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Article, error) {
	if !s.isConnected() {
		return nil, ErrNotConnected
	}

	rows, err := s.pool.Query(ctx, listArticlesSQL)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Author, &a.Views, &a.Likes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.CreatedAt = a.CreatedAt.UTC()
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

func (s *PostgresStore) Create(ctx context.Context, in model.NewArticle) (model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.Article{}, ErrNotConnected
	}

	a := s.opts.build(in, s.last)
	if err := s.insert(ctx, a); err != nil {
		return model.Article{}, fmt.Errorf("insert article: %w", err)
	}
	s.last = a.CreatedAt

	return a, nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "TRUNCATE articles"); err != nil {
		return fmt.Errorf("truncate articles: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()

	return nil
}

func (s *PostgresStore) insert(ctx context.Context, a model.Article) error {
	_, err := s.pool.Exec(ctx, insertArticleSQL,
		a.ID, a.Title, a.Description, a.Author, a.Views, a.Likes, a.CreatedAt)

	return err
}

func (s *PostgresStore) isConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.connected
}
