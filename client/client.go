package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// ErrMalformedResponse is returned when the server answers with something
// that is not a {ok, data|error} envelope.
var ErrMalformedResponse = errors.New("malformed response")

// APIError is a non-success envelope or status returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}

	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http.Client
	Addr string
	// DiagAddr is the base URL of the diag server. Health uses Addr when it
	// is empty.
	DiagAddr string
}

// CreateInput is the body of a create request.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Views       int64  `json:"views,omitempty"`
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// Health asks the diag server whether the article store answers.
func (c *Client) Health(ctx context.Context) error {
	addr := c.DiagAddr
	if addr == "" {
		addr = c.Addr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/healthz", nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// ListArticles fetches the feed, newest first.
func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/api/articles", nil)
	if err != nil {
		return nil, err
	}

	var articles []model.Article
	if err := c.do(req, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// CreateArticle posts in and returns the stored article.
func (c *Client) CreateArticle(ctx context.Context, in CreateInput) (model.Article, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return model.Article{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Addr+"/api/articles", bytes.NewReader(body))
	if err != nil {
		return model.Article{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var article model.Article
	if err := c.do(req, &article); err != nil {
		return model.Article{}, err
	}

	return article, nil
}

func (c *Client) do(req *http.Request, data interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode}
		}

		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if !env.OK || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if data == nil {
		return nil
	}

	if err := json.Unmarshal(env.Data, data); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
