package service

import (
	"context"
	"errors"
	"strings"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/vanna"
)

// ChatClient is the upstream natural-language-to-SQL collaborator
type ChatClient interface {
	Query(ctx context.Context, question string) (*vanna.QueryResponse, error)
	Ping(ctx context.Context) error
}

// ChatService proxies chat-with-data questions to the Vanna service
type ChatService struct {
	client ChatClient
}

// NewChatService creates a new ChatService
func NewChatService(client ChatClient) *ChatService {
	return &ChatService{client: client}
}

// Ask forwards a natural-language question and returns Vanna's answer.
// Returns domain.ErrQuestionRequired for blank questions and
// domain.ErrChatUnavailable when the upstream cannot be reached.
func (s *ChatService) Ask(ctx context.Context, question string) (*vanna.QueryResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrQuestionRequired
	}

	resp, err := s.client.Query(ctx, question)
	if err != nil {
		if errors.Is(err, vanna.ErrUnavailable) {
			return nil, domain.ErrChatUnavailable
		}
		return nil, err
	}
	return resp, nil
}

// Health reports whether the Vanna service is reachable
func (s *ChatService) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx); err != nil {
		if errors.Is(err, vanna.ErrUnavailable) {
			return domain.ErrChatUnavailable
		}
		return err
	}
	return nil
}
