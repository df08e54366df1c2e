package client

import (
	"context"
	"errors"

	"github.com/SergeyParamoshkin/cardfeed/internal/articlerequest"
	"github.com/SergeyParamoshkin/cardfeed/internal/feed"
	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// ErrInvalidTitle is returned by Submit without contacting the server.
var ErrInvalidTitle = errors.New("the title needs at least 2 characters")

// ArticleAPI is the part of Client the Syncer needs.
type ArticleAPI interface {
	ListArticles(ctx context.Context) ([]model.Article, error)
	CreateArticle(ctx context.Context, in CreateInput) (model.Article, error)
}

// Syncer keeps a feed.View in step with the server.
type Syncer struct {
	api        ArticleAPI
	view       *feed.View
	submission feed.Submission
}

func NewSyncer(api ArticleAPI, view *feed.View) *Syncer {
	return &Syncer{api: api, view: view}
}

func (s *Syncer) View() *feed.View {
	return s.view
}

// Load fetches the list and renders it. On failure the view shows its
// placeholder and the error is returned for display; there is no retry.
func (s *Syncer) Load(ctx context.Context) error {
	articles, err := s.api.ListArticles(ctx)
	if err != nil {
		s.view.Fail()

		return err
	}

	s.view.Replace(articles)

	return nil
}

// Submit creates an article and prepends the server's copy to the feed.
// On any failure the feed is left as it was.
func (s *Syncer) Submit(ctx context.Context, in CreateInput) (model.Article, error) {
	if !articlerequest.ValidTitleLength(in.Title) {
		return model.Article{}, ErrInvalidTitle
	}

	done, err := s.submission.Begin()
	if err != nil {
		return model.Article{}, err
	}
	defer done()

	created, err := s.api.CreateArticle(ctx, in)
	if err != nil {
		return model.Article{}, err
	}

	s.view.Prepend(created)

	return created, nil
}

// Submitting reports whether a create request is in flight.
func (s *Syncer) Submitting() bool {
	return s.submission.InFlight()
}
