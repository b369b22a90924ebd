package vanna

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/config"
)

// ErrUnavailable indicates the Vanna service could not be reached at all
// (as opposed to answering with an error).
var ErrUnavailable = errors.New("vanna service unavailable")

// QueryRequest is the natural-language question forwarded to Vanna
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is Vanna's answer: the generated SQL, the rows it
// returned, or an error message. Fields mirror the upstream contract;
// absent fields stay nil.
type QueryResponse struct {
	Question      string           `json:"question"`
	SQL           *string          `json:"sql,omitempty"`
	Results       []map[string]any `json:"results,omitempty"`
	Error         *string          `json:"error,omitempty"`
	ExecutionTime *float64         `json:"execution_time,omitempty"`
}

// UpstreamError carries a non-2xx answer from Vanna through to the caller
// so the HTTP layer can pass the status along.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("vanna returned status %d: %s", e.StatusCode, e.Detail)
}

// Client wraps interactions with the Vanna natural-language-to-SQL API.
type Client struct {
	baseURL      string
	queryClient  *http.Client
	healthClient *http.Client
}

// NewClient constructs a new client. Query and health probes use separate
// timeouts: SQL generation is slow, liveness checks must not be.
func NewClient(cfg config.VannaConfig) *Client {
	queryTimeout := cfg.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = 30 * time.Second
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = 5 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		queryClient:  &http.Client{Timeout: queryTimeout},
		healthClient: &http.Client{Timeout: healthTimeout},
	}
}

// Query sends a natural-language question and returns Vanna's answer.
func (c *Client) Query(ctx context.Context, question string) (*QueryResponse, error) {
	payload, err := json.Marshal(QueryRequest{Question: question})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/query", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.queryClient.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: upstreamDetail(body)}
	}

	var out QueryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode vanna response: %w", err)
	}
	return &out, nil
}

// Ping checks whether the Vanna service is reachable and healthy.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.healthClient.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("vanna health check returned status %d", resp.StatusCode)
	}
	return nil
}

// isConnectionError reports whether the request never reached the service
func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// upstreamDetail extracts a human-readable message from an error body.
// FastAPI wraps errors as {"detail": "..."}; fall back to the raw body.
func upstreamDetail(body []byte) string {
	var wrapped struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Detail != "" {
		return wrapped.Detail
	}
	return string(body)
}
