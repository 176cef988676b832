package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// mockConnector replays fixed documents and errors, interleaving an error
// before the document at the same position.
type mockConnector struct {
	docs        []domain.RawDocument
	errs        map[int]error
	validateErr error
	changes     chan domain.RawDocumentChange
	watchErr    error

	mu     sync.Mutex
	closed bool
}

func (m *mockConnector) Type() string { return "mock" }
func (m *mockConnector) Root() string { return "/mock" }

func (m *mockConnector) Validate(_ context.Context) error { return m.validateErr }

func (m *mockConnector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docsCh := make(chan domain.RawDocument)
	errsCh := make(chan error)
	go func() {
		defer close(docsCh)
		defer close(errsCh)
		for i := 0; i <= len(m.docs); i++ {
			if err, ok := m.errs[i]; ok {
				select {
				case errsCh <- err:
				case <-ctx.Done():
					return
				}
			}
			if i == len(m.docs) {
				return
			}
			select {
			case docsCh <- m.docs[i]:
			case <-ctx.Done():
				return
			}
		}
	}()
	return docsCh, errsCh
}

func (m *mockConnector) Watch(_ context.Context) (<-chan domain.RawDocumentChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.changes, nil
}

func (m *mockConnector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConnector) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type mockFactory struct {
	connector *mockConnector
	err       error
}

func (f *mockFactory) Create(_ context.Context, _ string) (driven.Connector, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.connector, nil
}

type mockLLM struct {
	reply    string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.messages = messages
	m.opts = opts
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error { return nil }

type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("not found")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

type suffixStemmer struct{}

func (suffixStemmer) Stem(term string) string {
	for _, suffix := range []string{"ing", "s"} {
		if len(term) > len(suffix)+2 && term[len(term)-len(suffix):] == suffix {
			return term[:len(term)-len(suffix)]
		}
	}
	return term
}

func raw(path, content string) domain.RawDocument {
	mime := "text/plain"
	if len(path) > 3 && path[len(path)-3:] == ".md" {
		mime = "text/markdown"
	}
	return domain.RawDocument{URI: "/corpus/" + path, Path: path, MIMEType: mime, Content: []byte(content)}
}
