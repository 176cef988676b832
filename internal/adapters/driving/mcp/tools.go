package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string `json:"query" jsonschema:"the search query"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 8)"`
	Normalise bool   `json:"normalise,omitempty" jsonschema:"scale scores so the top result is 1"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	HasIndex bool                 `json:"hasIndex"`
	Results  []SearchResultOutput `json:"results"`
	Count    int                  `json:"count"`
}

// SearchResultOutput represents a single ranked chunk.
type SearchResultOutput struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// StatusInput is the (empty) input schema for the status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the status tool.
type StatusOutput struct {
	HasIndex bool `json:"hasIndex"`
	Chunks   int  `json:"chunks"`
	Docs     int  `json:"docs"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed notes"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string               `json:"answer"`
	Sources []SearchResultOutput `json:"sources"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Rank indexed note chunks against a query with BM25",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report whether an index exists and how many chunks and documents it holds",
	}, s.handleStatus)

	if s.ports.Ask != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a question using only the most relevant indexed chunks",
		}, s.handleAsk)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	resp, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{
		Limit:     input.Limit,
		Normalise: input.Normalise,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		HasIndex: resp.Present,
		Results:  toResultOutputs(resp.Results),
		Count:    len(resp.Results),
	}
	return nil, output, nil
}

// handleStatus handles the status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	summary := s.ports.Search.Status(ctx)
	return nil, StatusOutput{
		HasIndex: summary.Present,
		Chunks:   summary.Chunks,
		Docs:     summary.Docs,
	}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Ask.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{
		Answer:  answer.Text,
		Sources: toResultOutputs(answer.Sources),
	}, nil
}

func toResultOutputs(results []domain.ScoredResult) []SearchResultOutput {
	out := make([]SearchResultOutput, len(results))
	for i, r := range results {
		out[i] = SearchResultOutput{
			ID:    r.Chunk.ID,
			Title: r.Chunk.Title,
			Path:  r.Chunk.Path,
			Score: r.Score,
			Text:  r.Chunk.Text,
		}
	}
	return out
}
