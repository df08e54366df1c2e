package article

import (
	"context"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// MemoryStore keeps articles in process memory. Nothing survives a restart.
type MemoryStore struct {
	opts options

	mu        sync.RWMutex
	connected bool
	articles  []model.Article
	last      time.Time
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{opts: newOptions(opts)}
}

func (s *MemoryStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	if s.opts.seed && len(s.articles) == 0 {
		s.articles = s.opts.seedRecords()
		s.last = s.articles[len(s.articles)-1].CreatedAt
	}
	s.connected = true

	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return nil, ErrNotConnected
	}

	out := make([]model.Article, len(s.articles))
	copy(out, s.articles)

	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, in model.NewArticle) (model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.Article{}, ErrNotConnected
	}

	a := s.opts.build(in, s.last)
	s.articles = append(s.articles, a)
	s.last = a.CreatedAt

	return a, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = nil

	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
