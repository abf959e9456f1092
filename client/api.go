package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/domain"
)

// BoardAPI is the slice of the server surface the reconciliation protocol
// needs. Implementations must treat a timeout as a failure so the caller
// can run its rollback path.
type BoardAPI interface {
	List() ([]domain.Task, error)
	Move(id string, newStatus domain.Status) error
	Delete(id string) error
}

// HTTPBoard talks to one board resource over HTTP with a bearer token and
// a fixed request timeout.
type HTTPBoard struct {
	client   *fasthttp.Client
	baseURL  string
	resource string
	token    string
	timeout  time.Duration
}

// Option configures an HTTPBoard.
type Option func(*HTTPBoard)

// WithTimeout overrides the fixed request timeout.
func WithTimeout(d time.Duration) Option {
	return func(b *HTTPBoard) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewHTTPBoard creates a client for one resource prefix, e.g. "kanban".
func NewHTTPBoard(baseURL, resource, token string, opts ...Option) *HTTPBoard {
	b := &HTTPBoard{
		client:   &fasthttp.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		resource: resource,
		token:    token,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// List fetches the canonical record set. Grouped responses are flattened:
// Reconcile re-buckets them locally anyway.
func (b *HTTPBoard) List() ([]domain.Task, error) {
	body, err := b.do(fasthttp.MethodGet, b.url(""), nil)
	if err != nil {
		return nil, err
	}

	var flat []domain.Task
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	var grouped map[domain.Status][]domain.Task
	if err := json.Unmarshal(body, &grouped); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	var out []domain.Task
	for _, tasks := range grouped {
		out = append(out, tasks...)
	}
	return out, nil
}

func (b *HTTPBoard) Move(id string, newStatus domain.Status) error {
	payload, err := json.Marshal(transport.MoveRequest{NewStatus: newStatus})
	if err != nil {
		return err
	}
	_, err = b.do(fasthttp.MethodPut, b.url("/"+id+"/move"), payload)
	return err
}

func (b *HTTPBoard) Delete(id string) error {
	_, err := b.do(fasthttp.MethodDelete, b.url("/"+id), nil)
	return err
}

func (b *HTTPBoard) url(suffix string) string {
	return fmt.Sprintf("%s/api/%s%s", b.baseURL, b.resource, suffix)
}

func (b *HTTPBoard) do(method, url string, body []byte) (json.RawMessage, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bearer "+b.token)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := b.client.DoTimeout(req, resp, b.timeout); err != nil {
		return nil, err
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest || !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return nil, fmt.Errorf("server rejected %s %s: %s", method, url, message)
	}
	return envelope.Data, nil
}
