package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/cardfeed/internal/feed"
	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

type fakeAPI struct {
	articles  []model.Article
	listErr   error
	createErr error
	created   []CreateInput

	// block, when set, holds CreateArticle until it is closed
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeAPI) ListArticles(ctx context.Context) ([]model.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return append([]model.Article(nil), f.articles...), nil
}

func (f *fakeAPI) CreateArticle(ctx context.Context, in CreateInput) (model.Article, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	if f.createErr != nil {
		return model.Article{}, f.createErr
	}
	f.created = append(f.created, in)

	return model.Article{ID: "new", Title: in.Title, Author: model.DefaultAuthor}, nil
}

func TestSyncerLoad(t *testing.T) {
	api := &fakeAPI{articles: []model.Article{
		{ID: "1", Title: "Atardecer en la ciudad"},
		{ID: "2", Title: "Cocina express"},
	}}
	s := NewSyncer(api, feed.NewView())

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, feed.Ready, s.View().Status())
	assert.Len(t, s.View().Cards(), 2)

	s.View().Search("cocina")
	assert.Len(t, s.View().Visible(), 1)
	assert.False(t, s.View().NoResults())

	s.View().Search("zzz")
	assert.Empty(t, s.View().Visible())
	assert.True(t, s.View().NoResults())
}

func TestSyncerLoadFailureShowsPlaceholder(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("network down")}
	s := NewSyncer(api, feed.NewView())

	assert.Error(t, s.Load(context.Background()))
	assert.Equal(t, feed.Failed, s.View().Status())
	assert.Empty(t, s.View().Cards())
}

func TestSyncerSubmitPrependsServerCopy(t *testing.T) {
	api := &fakeAPI{articles: []model.Article{{ID: "1", Title: "Old"}}}
	s := NewSyncer(api, feed.NewView())
	require.NoError(t, s.Load(context.Background()))

	created, err := s.Submit(context.Background(), CreateInput{Title: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	cards := s.View().Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "new", cards[0].Article.ID)
	assert.Equal(t, model.DefaultAuthor, cards[0].Article.Author)
	assert.False(t, s.Submitting())
}

func TestSyncerSubmitRejectsShortTitleLocally(t *testing.T) {
	api := &fakeAPI{}
	s := NewSyncer(api, feed.NewView())

	_, err := s.Submit(context.Background(), CreateInput{Title: " x "})
	assert.ErrorIs(t, err, ErrInvalidTitle)
	assert.Empty(t, api.created)
}

func TestSyncerSubmitFailureLeavesFeed(t *testing.T) {
	api := &fakeAPI{
		articles:  []model.Article{{ID: "1", Title: "Old"}},
		createErr: &APIError{StatusCode: 500, Message: "internal error"},
	}
	s := NewSyncer(api, feed.NewView())
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Submit(context.Background(), CreateInput{Title: "Fresh"})
	assert.Error(t, err)

	cards := s.View().Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "1", cards[0].Article.ID)
}

func TestSyncerSubmitBlocksDoubleSubmit(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{}), entered: make(chan struct{})}
	s := NewSyncer(api, feed.NewView())

	errs := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), CreateInput{Title: "First"})
		errs <- err
	}()

	<-api.entered
	assert.True(t, s.Submitting())

	_, err := s.Submit(context.Background(), CreateInput{Title: "Second"})
	assert.ErrorIs(t, err, feed.ErrInFlight)

	close(api.block)
	require.NoError(t, <-errs)
	assert.Len(t, api.created, 1)
	assert.Len(t, s.View().Cards(), 1)
}
