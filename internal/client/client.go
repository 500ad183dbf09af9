// Package client is a thin REST client for the catalog service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pcparts/catalog/internal/model"
)

// APIError is returned for every non-2xx response. Violations is empty when the
// body was not a catalog error body.
type APIError struct {
	Status     int
	Violations []model.Violation
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("catalog: status %d: %s", e.Status, strings.TrimSpace(e.Body))
	}
	v := e.Violations[0]
	if len(v.ParamNames) == 0 {
		return fmt.Sprintf("catalog: status %d: %s", e.Status, v.Message)
	}
	return fmt.Sprintf("catalog: status %d: %s %v", e.Status, v.Message, v.ParamNames)
}

// IsDuplicate reports whether err is a 400 caused by a natural key collision.
func IsDuplicate(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusBadRequest || len(apiErr.Violations) == 0 {
		return false
	}
	return strings.HasSuffix(apiErr.Violations[0].Message, "already exists!")
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithDebug dumps requests and responses through resty's debug logger.
func WithDebug(on bool) Option {
	return func(c *Client) { c.http.SetDebug(on) }
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageQuery mirrors the /pageable query parameters. Zero values are omitted.
type PageQuery struct {
	Offset int
	Limit  int
	Sort   string
}

func resourcePath(kind model.Kind) string { return "/api/v1/" + kind.Path() }

func (c *Client) List(ctx context.Context, kind model.Kind) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, resourcePath(kind), nil, nil)
}

func (c *Client) Page(ctx context.Context, kind model.Kind, q PageQuery) (json.RawMessage, error) {
	params := map[string]string{}
	if q.Offset > 0 {
		params["offset"] = strconv.Itoa(q.Offset)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Sort != "" {
		params["sort"] = q.Sort
	}
	return c.do(ctx, http.MethodGet, resourcePath(kind)+"/pageable", params, nil)
}

func (c *Client) Get(ctx context.Context, kind model.Kind, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, resourcePath(kind)+"/"+id, nil, nil)
}

func (c *Client) Create(ctx context.Context, kind model.Kind, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, resourcePath(kind), nil, body)
}

func (c *Client) Replace(ctx context.Context, kind model.Kind, id string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, resourcePath(kind)+"/"+id, nil, body)
}

func (c *Client) Patch(ctx context.Context, kind model.Kind, id string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, resourcePath(kind)+"/"+id, nil, body)
}

func (c *Client) Delete(ctx context.Context, kind model.Kind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, resourcePath(kind)+"/"+id, nil, nil)
	return err
}

// Health returns the status string reported by /api/health.
func (c *Client) Health(ctx context.Context) (string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/health", nil, nil)
	if err != nil {
		return "", err
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode health: %w", err)
	}
	return out.Status, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body any) (json.RawMessage, error) {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Body: resp.String()}
		var er struct {
			Violations []model.Violation `json:"violations"`
		}
		if json.Unmarshal(resp.Body(), &er) == nil {
			apiErr.Violations = er.Violations
		}
		return nil, apiErr
	}
	return json.RawMessage(resp.Body()), nil
}
