package domain

import (
	"fmt"
	"time"
)

// Default policy values. Window size and overlap are measured in characters.
const (
	DefaultChunkSize    = 1800
	DefaultChunkOverlap = 200
	DefaultK1           = 1.5
	DefaultB            = 0.75
	DefaultIndexPath    = "data/index.json"
	DefaultServerAddr   = ":8080"
	DefaultChatModel    = "claude-3-5-haiku-latest"
	DefaultAPIKeyEnv    = "ANTHROPIC_API_KEY"
	DefaultMaxTokens    = 600
	DefaultTemperature  = 0.2
	DefaultAskRate      = 1.0
	DefaultAskBurst     = 5
	DefaultDebounceMS   = 500
)

// Settings is the complete application configuration.
type Settings struct {
	Corpus    CorpusSettings    `toml:"corpus"`
	Index     IndexSettings     `toml:"index"`
	Chunker   ChunkerSettings   `toml:"chunker"`
	Retrieval RetrievalSettings `toml:"retrieval"`
	LLM       LLMSettings       `toml:"llm"`
	Server    ServerSettings    `toml:"server"`
	Watch     WatchSettings     `toml:"watch"`
}

// CorpusSettings controls where ingestion reads from.
type CorpusSettings struct {
	// Root is the default corpus directory when none is given.
	Root string `toml:"root"`

	// ReferenceRoot is the directory chunk paths are made relative to.
	// Empty means the working directory.
	ReferenceRoot string `toml:"reference_root"`
}

// IndexSettings controls where the snapshot lives.
type IndexSettings struct {
	// Path is the snapshot file. A ".zst" suffix enables compression.
	Path string `toml:"path"`
}

// ChunkerSettings controls chunk windowing.
type ChunkerSettings struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalSettings holds BM25 parameters.
type RetrievalSettings struct {
	K1   float64 `toml:"k1"`
	B    float64 `toml:"b"`
	TopK int     `toml:"top_k"`

	// Stem reduces terms to their English stem before matching.
	Stem bool `toml:"stem"`
}

// LLMSettings configures the answer model.
type LLMSettings struct {
	Model       string  `toml:"model"`
	APIKeyEnv   string  `toml:"api_key_env"`
	BaseURL     string  `toml:"base_url"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `toml:"addr"`

	// AskRate is the sustained ask requests per second.
	AskRate  float64 `toml:"ask_rate"`
	AskBurst int     `toml:"ask_burst"`
}

// WatchSettings configures rebuild-on-change.
type WatchSettings struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Debounce returns the debounce window as a duration.
func (w WatchSettings) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// DefaultSettings returns settings populated with defaults.
func DefaultSettings() Settings {
	return Settings{
		Index:   IndexSettings{Path: DefaultIndexPath},
		Chunker: ChunkerSettings{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		Retrieval: RetrievalSettings{
			K1:   DefaultK1,
			B:    DefaultB,
			TopK: DefaultTopK,
		},
		LLM: LLMSettings{
			Model:       DefaultChatModel,
			APIKeyEnv:   DefaultAPIKeyEnv,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		Server: ServerSettings{
			Addr:     DefaultServerAddr,
			AskRate:  DefaultAskRate,
			AskBurst: DefaultAskBurst,
		},
		Watch: WatchSettings{DebounceMS: DefaultDebounceMS},
	}
}

// ApplyDefaults fills zero-valued fields with defaults.
// Zero is never a meaningful value for these fields, except B and
// Overlap which are only defaulted alongside their siblings.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()
	if s.Index.Path == "" {
		s.Index.Path = d.Index.Path
	}
	if s.Chunker.Size == 0 {
		s.Chunker.Size = d.Chunker.Size
		if s.Chunker.Overlap == 0 {
			s.Chunker.Overlap = d.Chunker.Overlap
		}
	}
	if s.Retrieval.K1 == 0 && s.Retrieval.B == 0 {
		s.Retrieval.K1 = d.Retrieval.K1
		s.Retrieval.B = d.Retrieval.B
	}
	if s.Retrieval.TopK == 0 {
		s.Retrieval.TopK = d.Retrieval.TopK
	}
	if s.LLM.Model == "" {
		s.LLM.Model = d.LLM.Model
	}
	if s.LLM.APIKeyEnv == "" {
		s.LLM.APIKeyEnv = d.LLM.APIKeyEnv
	}
	if s.LLM.MaxTokens == 0 {
		s.LLM.MaxTokens = d.LLM.MaxTokens
	}
	if s.LLM.Temperature == 0 {
		s.LLM.Temperature = d.LLM.Temperature
	}
	if s.Server.Addr == "" {
		s.Server.Addr = d.Server.Addr
	}
	if s.Server.AskRate == 0 {
		s.Server.AskRate = d.Server.AskRate
	}
	if s.Server.AskBurst == 0 {
		s.Server.AskBurst = d.Server.AskBurst
	}
	if s.Watch.DebounceMS == 0 {
		s.Watch.DebounceMS = d.Watch.DebounceMS
	}
}

// Validate checks settings for values the engine cannot run with.
func (s Settings) Validate() error {
	if s.Chunker.Size <= 0 {
		return fmt.Errorf("%w: chunker.size must be positive, got %d", ErrInvalidInput, s.Chunker.Size)
	}
	if s.Chunker.Overlap < 0 {
		return fmt.Errorf("%w: chunker.overlap must not be negative, got %d", ErrInvalidInput, s.Chunker.Overlap)
	}
	if s.Retrieval.K1 < 0 {
		return fmt.Errorf("%w: retrieval.k1 must not be negative, got %g", ErrInvalidInput, s.Retrieval.K1)
	}
	if s.Retrieval.B < 0 || s.Retrieval.B > 1 {
		return fmt.Errorf("%w: retrieval.b must be within [0, 1], got %g", ErrInvalidInput, s.Retrieval.B)
	}
	if s.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: retrieval.top_k must be positive, got %d", ErrInvalidInput, s.Retrieval.TopK)
	}
	if s.Server.AskRate <= 0 || s.Server.AskBurst <= 0 {
		return fmt.Errorf("%w: server.ask_rate and server.ask_burst must be positive", ErrInvalidInput)
	}
	return nil
}
