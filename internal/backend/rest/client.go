// Package rest는 Supabase 형태의 관리형 백엔드(PostgREST + GoTrue)에 붙는 클라이언트입니다.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
)

// Config holds client configuration.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client는 REST 호출을 담당합니다. 로그인 후에는 세션 토큰을 Bearer로 씁니다.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.apiKey
}

// Select: GET /rest/v1/<table>
func (c *Client) Select(ctx context.Context, table string, params url.Values) (*Response, error) {
	if table == "" {
		return nil, fmt.Errorf("table is required")
	}
	reqURL := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(table))
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	return c.do(req)
}

// Insert: POST /rest/v1/<table>, 생성된 행을 돌려받습니다.
func (c *Client) Insert(ctx context.Context, table string, data any) (*Response, error) {
	if table == "" {
		return nil, fmt.Errorf("table is required")
	}
	reqURL := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(table))

	req, err := c.newJSONRequest(ctx, http.MethodPost, reqURL, data)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")
	return c.do(req)
}

// authRequest: /auth/v1/<path> 호출
func (c *Client) authRequest(ctx context.Context, method, path string, data any) (*Response, error) {
	reqURL := fmt.Sprintf("%s/auth/v1/%s", c.baseURL, path)

	if data != nil {
		req, err := c.newJSONRequest(ctx, method, reqURL, data)
		if err != nil {
			return nil, err
		}
		return c.do(req)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	return c.do(req)
}

func (c *Client) newJSONRequest(ctx context.Context, method, reqURL string, data any) (*http.Request, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.token())
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// Response is a generic API response.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// Error: 4xx/5xx 응답을 오류로 바꿉니다. 401/403은 backend.ErrUnauthenticated를 감쌉니다.
func (r *Response) Error() error {
	if r.StatusCode < 400 {
		return nil
	}

	msg := fmt.Sprintf("status %d", r.StatusCode)
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(r.Body, &errResp); err == nil {
		switch {
		case errResp.Message != "":
			msg = errResp.Message
		case errResp.Msg != "":
			msg = errResp.Msg
		case errResp.Error != "":
			msg = errResp.Error
		}
	}

	switch r.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", backend.ErrUnauthenticated, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", backend.ErrNotFound, msg)
	}
	return fmt.Errorf("backend error: %s", msg)
}
