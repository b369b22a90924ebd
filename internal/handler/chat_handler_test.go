package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/flowbit/flowbit/analytics-api/internal/testutil"
	"github.com/flowbit/flowbit/analytics-api/internal/vanna"
	"github.com/labstack/echo/v4"
)

func chatRequest(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestChatAsk_Success(t *testing.T) {
	sql := "SELECT COUNT(*) FROM invoices"
	client := &testutil.MockChatClient{
		QueryFn: func(ctx context.Context, question string) (*vanna.QueryResponse, error) {
			return &vanna.QueryResponse{
				Question: question,
				SQL:      &sql,
				Results:  []map[string]any{{"count": float64(42)}},
			}, nil
		},
	}
	handler := NewChatHandler(service.NewChatService(client))

	c, rec := chatRequest(`{"question": "How many invoices are there?"}`)

	if err := handler.Ask(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp vanna.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.SQL == nil || *resp.SQL != sql {
		t.Errorf("Expected generated SQL in response, got %+v", resp)
	}
}

func TestChatAsk_EmptyQuestion(t *testing.T) {
	handler := NewChatHandler(service.NewChatService(&testutil.MockChatClient{}))

	c, rec := chatRequest(`{"question": ""}`)

	if err := handler.Ask(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestChatAsk_Unavailable(t *testing.T) {
	client := &testutil.MockChatClient{
		QueryFn: func(ctx context.Context, question string) (*vanna.QueryResponse, error) {
			return nil, vanna.ErrUnavailable
		},
	}
	handler := NewChatHandler(service.NewChatService(client))

	c, rec := chatRequest(`{"question": "anything"}`)

	if err := handler.Ask(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if problem.Detail != "Vanna AI service is not available" {
		t.Errorf("Unexpected detail: %q", problem.Detail)
	}
}

func TestChatAsk_UpstreamStatusPassesThrough(t *testing.T) {
	client := &testutil.MockChatClient{
		QueryFn: func(ctx context.Context, question string) (*vanna.QueryResponse, error) {
			return nil, &vanna.UpstreamError{StatusCode: 422, Detail: "could not generate SQL"}
		},
	}
	handler := NewChatHandler(service.NewChatService(client))

	c, rec := chatRequest(`{"question": "gibberish"}`)

	if err := handler.Ask(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != 422 {
		t.Errorf("Expected status 422, got %d", rec.Code)
	}
}

func TestChatHealth(t *testing.T) {
	e := echo.New()
	handler := NewChatHandler(service.NewChatService(&testutil.MockChatClient{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Health(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestChatHealth_Down(t *testing.T) {
	e := echo.New()
	client := &testutil.MockChatClient{
		PingFn: func(ctx context.Context) error { return vanna.ErrUnavailable },
	}
	handler := NewChatHandler(service.NewChatService(client))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Health(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}
