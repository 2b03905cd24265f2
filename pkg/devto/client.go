// Package devto reads published articles from the dev.to public REST API.
package devto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/pkg/httpclient"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://dev.to/api"

const (
	opListArticles = "fetch articles"
	opGetArticle   = "fetch article"
)

// Client issues read-only requests against the article API. Each call is a
// single attempt with no retry and no caching.
type Client struct {
	http    httpclient.Client
	baseURL string
}

// NewClient builds a client for baseURL (DefaultBaseURL when empty).
func NewClient(http httpclient.Client, baseURL string) (*Client, error) {
	if http == nil {
		return nil, errors.New("devto client requires an http client")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	return &Client{http: http, baseURL: baseURL}, nil
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// ListArticles returns up to perPage published articles written by username.
func (c *Client) ListArticles(ctx context.Context, username string, perPage int) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("per_page", strconv.Itoa(perPage))
	endpoint := c.baseURL + "/articles?" + q.Encode()

	body, err := c.get(ctx, opListArticles, endpoint)
	if err != nil {
		return nil, err
	}

	var articles []domain.Article
	if err := json.Unmarshal(body, &articles); err != nil {
		return nil, &ParseError{Op: opListArticles, Err: err}
	}
	if articles == nil {
		// a literal null is not an array
		return nil, &ParseError{Op: opListArticles, Err: errors.New("expected a JSON array")}
	}
	return articles, nil
}

// GetArticle returns a single article, including its body HTML and author.
func (c *Client) GetArticle(ctx context.Context, id domain.ArticleID) (domain.Article, error) {
	key := strings.TrimSpace(id.String())
	if key == "" {
		return domain.Article{}, errors.New("fetch article: article id is empty")
	}
	endpoint := c.baseURL + "/articles/" + url.PathEscape(key)

	body, err := c.get(ctx, opGetArticle, endpoint)
	if err != nil {
		return domain.Article{}, err
	}

	var article domain.Article
	if err := json.Unmarshal(body, &article); err != nil {
		return domain.Article{}, &ParseError{Op: opGetArticle, Err: err}
	}
	if article.ID == "" {
		return domain.Article{}, &ParseError{Op: opGetArticle, Err: errors.New("article payload has no id")}
	}
	return article, nil
}

func (c *Client) get(ctx context.Context, op, endpoint string) ([]byte, error) {
	resp, err := c.http.Get(ctx, endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	if !httpclient.IsSuccess(resp) {
		return nil, &NetworkError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("body: %s", responseSnippet(resp.Body())),
		}
	}
	return resp.Body(), nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
