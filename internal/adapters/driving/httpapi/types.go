package httpapi

import "github.com/custodia-labs/quarry/internal/core/domain"

type errorBody struct {
	Error string `json:"error"`
}

type searchRequest struct {
	Query     string `json:"query"`
	TopK      int    `json:"topK"`
	Normalise bool   `json:"normalise"`
}

type resultBody struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

type searchResponse struct {
	HasIndex bool         `json:"hasIndex"`
	Results  []resultBody `json:"results"`
}

type askRequest struct {
	Question string `json:"question"`
}

type sourceBody struct {
	Title string  `json:"title"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

type askResponse struct {
	Answer  string       `json:"answer"`
	Sources []sourceBody `json:"sources"`
}

func toSearchResponse(resp *domain.SearchResponse) searchResponse {
	out := searchResponse{HasIndex: resp.Present, Results: make([]resultBody, 0, len(resp.Results))}
	for _, r := range resp.Results {
		out.Results = append(out.Results, resultBody{
			ID:    r.Chunk.ID,
			Title: r.Chunk.Title,
			Path:  r.Chunk.Path,
			Score: r.Score,
			Text:  r.Chunk.Text,
		})
	}
	return out
}

func toAskResponse(answer *domain.Answer) askResponse {
	out := askResponse{Answer: answer.Text, Sources: make([]sourceBody, 0, len(answer.Sources))}
	for _, s := range answer.Sources {
		out.Sources = append(out.Sources, sourceBody{Title: s.Chunk.Title, Path: s.Chunk.Path, Score: s.Score})
	}
	return out
}
