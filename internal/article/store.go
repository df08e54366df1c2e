package article

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// ErrNotConnected is returned by store operations invoked before Connect.
var ErrNotConnected = errors.New("article store not connected")

// Store owns the canonical article collection. Implementations must be safe
// for concurrent use and must return copies.
type Store interface {
	// Connect establishes the backing collection. Calling it again is a no-op.
	Connect(ctx context.Context) error
	// List returns every article in insertion order. Callers sort.
	List(ctx context.Context) ([]model.Article, error)
	// Create assigns id, creation time and likes, then appends the article.
	Create(ctx context.Context, in model.NewArticle) (model.Article, error)
	// Clear empties the collection.
	Clear(ctx context.Context) error
	Close() error
}

// Article fixture data
var seedArticles = []model.NewArticle{
	{
		Title:       "Atardecer en la ciudad",
		Description: "Un clip corto mostrando luces y movimiento. Minimalismo, ritmo y color.",
		Author:      "UsuarioDemo",
		Views:       2100,
	},
	{
		Title:       "Cocina express",
		Description: "Recetas rápidas, limpias y con ritmo. Ideal para la semana.",
		Author:      "ChefDemo",
		Views:       15000,
	},
	{
		Title:       "Rutina matutina",
		Description: "Pequeños hábitos, gran impacto. 5 pasos en 30s.",
		Author:      "LifeDemo",
		Views:       4500,
	},
}

// seedLikes keeps the like counters the fixtures were published with.
var seedLikes = []int64{128, 3200, 640}

// Option configures a store.
type Option func(*options)

type options struct {
	seed  bool
	now   func() time.Time
	newID func() string
}

// WithSeed makes Connect populate an empty collection with example articles.
func WithSeed(seed bool) Option {
	return func(o *options) { o.seed = seed }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func newOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// TimestampPrecision is the resolution creation times are stored with. It
// matches postgres timestamptz so a created record equals its listed copy.
const TimestampPrecision = time.Microsecond

// build turns a create command into a record. last is the newest creation
// time the store has handed out; the clock is never allowed to step behind it.
func (o options) build(in model.NewArticle, last time.Time) model.Article {
	in = in.Normalize()

	now := o.now().UTC().Truncate(TimestampPrecision)
	if now.Before(last) {
		now = last
	}

	return model.Article{
		ID:          o.newID(),
		Title:       in.Title,
		Description: in.Description,
		Author:      in.Author,
		Views:       in.Views,
		Likes:       0,
		CreatedAt:   now,
	}
}

// seedRecords builds the fixture records, all sharing one timestamp.
func (o options) seedRecords() []model.Article {
	now := o.now().UTC().Truncate(TimestampPrecision)
	records := make([]model.Article, 0, len(seedArticles))
	for i, in := range seedArticles {
		a := o.build(in, now)
		a.Likes = seedLikes[i]
		records = append(records, a)
	}

	return records
}
