package article

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/cardfeed/internal/articlerequest"
	"github.com/SergeyParamoshkin/cardfeed/internal/articleresponse"
	"github.com/SergeyParamoshkin/cardfeed/internal/errresponse"
	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// MaxBodyBytes bounds the create request body.
const MaxBodyBytes = 1 << 20

// Recorder receives article events. *metrics.Metrics implements it.
type Recorder interface {
	ArticleCreated(ctx context.Context)
	ArticleRejected(ctx context.Context)
}

type nopRecorder struct{}

func (nopRecorder) ArticleCreated(context.Context)  {}
func (nopRecorder) ArticleRejected(context.Context) {}

// API translates HTTP requests into Store operations.
type API struct {
	store   Store
	logger  *zap.SugaredLogger
	metrics Recorder
}

func NewAPI(store Store, logger *zap.SugaredLogger, metrics Recorder) *API {
	if metrics == nil {
		metrics = nopRecorder{}
	}

	return &API{store: store, logger: logger, metrics: metrics}
}

// Routes returns the /api/articles sub-router.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.NotFound(a.NotFound)
	r.MethodNotAllowed(a.MethodNotAllowed)

	r.Get("/", a.ListArticles)  // GET /api/articles
	r.Post("/", a.CreateArticle) // POST /api/articles

	return r
}

// ListArticles renders every article, newest first.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	logger := a.loggerFor(r)

	articles, err := a.store.List(r.Context())
	if err != nil {
		logger.Errorw("list articles", "error", err)
		a.renderError(w, r, errresponse.ErrInternal(err))

		return
	}

	SortNewestFirst(articles)

	if err := render.Render(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		logger.Errorw("render articles", "error", err)
	}
}

// CreateArticle validates the posted Article, persists it and returns the
// stored record back to the client as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	logger := a.loggerFor(r)

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	data := &articlerequest.ArticleRequest{}
	err := decodeArticleRequest(r, data)
	if errors.Is(err, io.EOF) {
		// an empty body is an empty object
		err = nil
	}
	if err == nil {
		err = data.Bind(r)
	}

	if err != nil {
		a.metrics.ArticleRejected(r.Context())

		message := "invalid request body"
		if errors.Is(err, articlerequest.ErrInvalidTitle) {
			message = articlerequest.ErrInvalidTitle.Error()
		}
		logger.Infow("create article rejected", "error", err)
		a.renderError(w, r, errresponse.ErrInvalidRequest(err, message))

		return
	}

	article, err := a.store.Create(r.Context(), data.Article())
	if err != nil {
		logger.Errorw("create article", "error", err)
		a.renderError(w, r, errresponse.ErrInternal(err))

		return
	}
	a.metrics.ArticleCreated(r.Context())

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		logger.Errorw("render article", "error", err)
	}
}

// NotFound answers unknown API paths with the JSON envelope instead of the
// single page app.
func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, errresponse.ErrNotFound)
}

// MethodNotAllowed keeps the JSON envelope for unsupported methods.
func (a *API) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, errresponse.ErrMethodNotAllowed)
}

// decodeArticleRequest reads url encoded forms as form fields and any other
// body as JSON, whatever its declared content type.
func decodeArticleRequest(r *http.Request, data *articlerequest.ArticleRequest) error {
	if render.GetRequestContentType(r) != render.ContentTypeForm {
		return render.DecodeJSON(r.Body, data)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}

	fields := map[string]*interface{}{
		"title":       &data.Title,
		"description": &data.Description,
		"author":      &data.Author,
		"views":       &data.Views,
	}
	for name, field := range fields {
		if values, ok := r.PostForm[name]; ok && len(values) > 0 {
			*field = values[0]
		}
	}

	return nil
}

// SortNewestFirst orders by CreatedAt descending. Equal timestamps keep their
// store order.
func SortNewestFirst(articles []model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
}

func (a *API) renderError(w http.ResponseWriter, r *http.Request, rd render.Renderer) {
	if err := render.Render(w, r, rd); err != nil {
		a.loggerFor(r).Errorw("render error response", "error", err)
	}
}

func (a *API) loggerFor(r *http.Request) *zap.SugaredLogger {
	if logger, ok := LoggerFromContext(r.Context()); ok {
		return logger
	}

	return a.logger
}
