package service

import (
	"context"
	"testing"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/testutil"
	"github.com/flowbit/flowbit/analytics-api/internal/vanna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_Ask(t *testing.T) {
	sql := "SELECT COUNT(*) FROM invoices"
	client := &testutil.MockChatClient{
		QueryFn: func(ctx context.Context, question string) (*vanna.QueryResponse, error) {
			return &vanna.QueryResponse{Question: question, SQL: &sql}, nil
		},
	}
	svc := NewChatService(client)

	resp, err := svc.Ask(context.Background(), "How many invoices are there?")

	require.NoError(t, err)
	require.NotNil(t, resp.SQL)
	assert.Equal(t, sql, *resp.SQL)
}

func TestChatService_Ask_BlankQuestion(t *testing.T) {
	svc := NewChatService(&testutil.MockChatClient{})

	_, err := svc.Ask(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrQuestionRequired)
}

func TestChatService_Ask_Unavailable(t *testing.T) {
	client := &testutil.MockChatClient{
		QueryFn: func(ctx context.Context, question string) (*vanna.QueryResponse, error) {
			return nil, vanna.ErrUnavailable
		},
	}
	svc := NewChatService(client)

	_, err := svc.Ask(context.Background(), "anything")

	assert.ErrorIs(t, err, domain.ErrChatUnavailable)
}

func TestChatService_Ask_UpstreamErrorPassesThrough(t *testing.T) {
	client := &testutil.MockChatClient{
		QueryFn: func(ctx context.Context, question string) (*vanna.QueryResponse, error) {
			return nil, &vanna.UpstreamError{StatusCode: 422, Detail: "could not generate SQL"}
		},
	}
	svc := NewChatService(client)

	_, err := svc.Ask(context.Background(), "gibberish")

	var upstream *vanna.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 422, upstream.StatusCode)
}

func TestChatService_Health(t *testing.T) {
	svc := NewChatService(&testutil.MockChatClient{})
	assert.NoError(t, svc.Health(context.Background()))

	down := NewChatService(&testutil.MockChatClient{
		PingFn: func(ctx context.Context) error { return vanna.ErrUnavailable },
	})
	assert.ErrorIs(t, down.Health(context.Background()), domain.ErrChatUnavailable)
}
