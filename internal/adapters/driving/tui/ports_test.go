package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
	Summary    domain.IndexSummary
}

func (m *MockSearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return &domain.SearchResponse{}, nil
}

func (m *MockSearchService) Status(context.Context) domain.IndexSummary {
	return m.Summary
}

// MockAskService implements driving.AskService for testing.
type MockAskService struct {
	AskFunc func(ctx context.Context, question string) (*domain.Answer, error)
}

func (m *MockAskService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return &domain.Answer{}, nil
}

var (
	_ driving.SearchService = (*MockSearchService)(nil)
	_ driving.AskService    = (*MockAskService)(nil)
)

func TestNewPorts(t *testing.T) {
	search := &MockSearchService{}
	ask := &MockAskService{}
	read := func(string) (string, error) { return "", nil }

	ports := NewPorts(search, ask, read)

	assert.Same(t, search, ports.Search)
	assert.Same(t, ask, ports.Ask)
	assert.NotNil(t, ports.ReadSource)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing search", &Ports{Ask: &MockAskService{}}, ErrMissingSearchService},
		{"search only", &Ports{Search: &MockSearchService{}}, nil},
		{"all set", NewPorts(&MockSearchService{}, &MockAskService{}, nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.wantErr)
		})
	}
}
