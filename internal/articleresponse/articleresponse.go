package articleresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// ArticleResponse wraps a single Article in the {ok, data} envelope.
type ArticleResponse struct {
	OK   bool           `json:"ok"`
	Data *model.Article `json:"data"`
}

func NewArticleResponse(article model.Article) *ArticleResponse {
	return &ArticleResponse{Data: &article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rd.OK = true

	return nil
}

// ArticleListResponse wraps a list. Data is never null on the wire.
type ArticleListResponse struct {
	OK   bool            `json:"ok"`
	Data []model.Article `json:"data"`
}

func NewArticleListResponse(articles []model.Article) *ArticleListResponse {
	if articles == nil {
		articles = []model.Article{}
	}

	return &ArticleListResponse{Data: articles}
}

func (rd *ArticleListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rd.OK = true

	return nil
}
