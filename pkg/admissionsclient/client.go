package admissionsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	apiPrefix       = "/api"
	maxResponseSize = 4 << 20

	headerRequestID = "X-Request-ID"
)

// Client клиент API приемной комиссии
// Методы не возвращают ошибок Go: любой сбой транспорта или ответ не из 2xx
// превращается в Envelope{Success: false, Error: ...}
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore
	now        func() time.Time
}

// Option настройка клиента
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймаут из New не применяется)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenStore задает хранилище сессии; по умолчанию MemoryStore
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithClock подменяет часы для проверки срока сессии
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New создает клиент; baseURL без суффикса /api
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		store: NewMemoryStore(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session текущая действующая сессия; истекшая сессия удаляется из хранилища
func (c *Client) Session() (Session, bool) {
	s, err := c.store.Load()
	if err != nil {
		return Session{}, false
	}
	if !s.Valid(c.now()) {
		if s.Token != "" {
			_ = c.store.Clear()
		}
		return Session{}, false
	}
	return s, true
}

// Logout удаляет сохраненный токен
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) get(ctx context.Context, path string, query url.Values) Envelope {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) Envelope {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) put(ctx context.Context, path string, body interface{}) Envelope {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) delete(ctx context.Context, path string) Envelope {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) Envelope {
	endpoint := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return failure(0, "failed to encode request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return failure(0, "failed to create request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := c.Session(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(0, "network error: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return failure(resp.StatusCode, "failed to read response: %v", err)
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)
	env.StatusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		env.Success = false
		if decodeErr != nil || env.Error == "" {
			env.Error = statusMessage(resp.StatusCode)
		}
		return env
	}

	if decodeErr != nil {
		return failure(resp.StatusCode, "invalid response: %v", decodeErr)
	}
	return env
}

func statusMessage(status int) string {
	return strings.TrimSpace(fmt.Sprintf("HTTP %d %s", status, http.StatusText(status)))
}
