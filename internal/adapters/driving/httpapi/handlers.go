package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Client-facing messages.
const (
	msgQuestionRequired = "Question required"
	msgNoIndex          = "No index found. Run ingestion."
	msgQueryRequired    = "Query required"
	msgLLMUnavailable   = "Language model not configured"
	msgUpstreamLimited  = "Language model rate limited, try again shortly"
	msgTimeout          = "Request timed out"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ports.Search.Status(r.Context()))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.ports.Search.Search(r.Context(), req.Query, domain.SearchOptions{
		Limit:     req.TopK,
		Normalise: req.Normalise,
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, &httpError{Code: http.StatusBadRequest, Message: msgQueryRequired})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponse(resp))
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if s.ports.Ask == nil {
		writeError(w, &httpError{Code: http.StatusServiceUnavailable, Message: msgLLMUnavailable})
		return
	}

	answer, err := s.ports.Ask.Ask(r.Context(), req.Question)
	if err != nil {
		writeError(w, askError(err))
		return
	}
	writeJSON(w, http.StatusOK, toAskResponse(answer))
}

// askError maps ask failures to HTTP errors.
func askError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return &httpError{Code: http.StatusBadRequest, Message: msgQuestionRequired}
	case errors.Is(err, domain.ErrIndexAbsent):
		return &httpError{Code: http.StatusBadRequest, Message: msgNoIndex}
	case errors.Is(err, domain.ErrLLMUnavailable):
		return &httpError{Code: http.StatusServiceUnavailable, Message: msgLLMUnavailable}
	case errors.Is(err, domain.ErrRateLimited):
		return &httpError{Code: http.StatusTooManyRequests, Message: msgUpstreamLimited}
	case errors.Is(err, context.DeadlineExceeded):
		return &httpError{Code: http.StatusGatewayTimeout, Message: msgTimeout}
	default:
		return err
	}
}
