package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/cardfeed/internal/article"
	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

func newTestClient(t *testing.T, seed bool) *Client {
	t.Helper()

	store := article.NewMemoryStore(article.WithSeed(seed))
	require.NoError(t, store.Connect(context.Background()))

	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	r.Mount("/api/articles", article.NewAPI(store, zap.NewNop().Sugar(), nil).Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &Client{Client: *srv.Client(), Addr: srv.URL}
}

func TestPing(t *testing.T) {
	c := newTestClient(t, false)

	s, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", s)
}

func TestListArticles(t *testing.T) {
	c := newTestClient(t, true)

	articles, err := c.ListArticles(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 3)
}

func TestCreateArticle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, false)

	created, err := c.CreateArticle(ctx, CreateInput{Title: "Hi", Views: 7})
	require.NoError(t, err)
	assert.Equal(t, "Hi", created.Title)
	assert.Equal(t, int64(7), created.Views)
	assert.Equal(t, model.DefaultAuthor, created.Author)

	articles, err := c.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, created.ID, articles[0].ID)
}

func TestCreateArticleInvalidTitle(t *testing.T) {
	c := newTestClient(t, false)

	_, err := c.CreateArticle(context.Background(), CreateInput{Title: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid title", apiErr.Message)
}

func TestNonEnvelopeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := &Client{Addr: srv.URL}
	_, err := c.ListArticles(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestServerErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{Addr: srv.URL}
	_, err := c.ListArticles(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestHealth(t *testing.T) {
	healthy := atomic.NewBool(true)
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, render.M{"ok": false, "error": "store unavailable"})

			return
		}
		render.JSON(w, r, render.M{"ok": true})
	})

	diag := httptest.NewServer(r)
	defer diag.Close()

	c := &Client{Addr: "http://127.0.0.1:0", DiagAddr: diag.URL}
	require.NoError(t, c.Health(context.Background()))

	healthy.Store(false)
	err := c.Health(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "store unavailable", apiErr.Message)
}
