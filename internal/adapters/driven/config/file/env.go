package file

import (
	"strings"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Environment variables recognised on top of the config file.
const (
	EnvConfig     = "QUARRY_CONFIG"
	EnvCorpusDir  = "QUARRY_CORPUS_DIR"
	EnvLegacyDir  = "APPLICATIONS_DIR"
	EnvIndexPath  = "QUARRY_INDEX_PATH"
	EnvChatModel  = "CHAT_MODEL"
	EnvLLMBaseURL = "ANTHROPIC_BASE_URL"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ConfigPath picks the config file: an explicit flag wins over
// QUARRY_CONFIG. Empty means the default location.
func ConfigPath(flag string, lookup LookupFunc) string {
	if flag != "" {
		return flag
	}
	if v, ok := lookup(EnvConfig); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// ApplyEnvironment overlays environment variables on settings.
// QUARRY_CORPUS_DIR takes precedence over APPLICATIONS_DIR.
func ApplyEnvironment(settings *domain.Settings, lookup LookupFunc) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if v := get(EnvCorpusDir); v != "" {
		settings.Corpus.Root = v
	} else if v := get(EnvLegacyDir); v != "" {
		settings.Corpus.Root = v
	}
	if v := get(EnvIndexPath); v != "" {
		settings.Index.Path = v
	}
	if v := get(EnvChatModel); v != "" {
		settings.LLM.Model = v
	}
	if v := get(EnvLLMBaseURL); v != "" {
		settings.LLM.BaseURL = v
	}
}
