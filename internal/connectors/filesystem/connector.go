// Package filesystem reads a corpus from a local directory tree.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/logger"
)

// ConnectorType identifies this connector.
const ConnectorType = "filesystem"

// eligible maps accepted file extensions to MIME types.
var eligible = map[string]string{
	".txt": "text/plain",
	".md":  "text/markdown",
}

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector walks a directory and emits every .txt and .md file.
type Connector struct {
	rootPath      string
	referenceRoot string

	// base is the absolute reference root, empty if it could not be resolved.
	base string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a connector for rootPath. Document paths are made relative to
// referenceRoot; empty means the current working directory.
func New(rootPath, referenceRoot string) *Connector {
	c := &Connector{
		rootPath:      rootPath,
		referenceRoot: referenceRoot,
	}
	base := referenceRoot
	if base == "" {
		base = "."
	}
	if abs, err := filepath.Abs(base); err == nil {
		c.base = abs
	} else {
		logger.Warn("resolve reference root %q: %v", base, err)
	}
	return c
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Root returns the directory being read.
func (c *Connector) Root() string {
	return c.rootPath
}

// Validate checks the root exists and is a directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: corpus root %s does not exist", domain.ErrNotFound, c.rootPath)
		}
		return fmt.Errorf("%w: corpus root %s: %v", domain.ErrNotFound, c.rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: corpus root %s is not a directory", domain.ErrNotFound, c.rootPath)
	}
	return nil
}

// FullSync walks the root in lexical order and emits eligible files as
// they are found. Symlinks to regular files are followed; symlinked
// directories are not descended into. Unreadable files are reported
// wrapped in domain.ErrUnreadable and skipped.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error)

	root := c.rootPath
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	go func() {
		defer close(docs)
		defer close(errs)

		send := func(err error) bool {
			select {
			case errs <- err:
				return true
			case <-ctx.Done():
				return false
			}
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if path == root {
					return err
				}
				if !send(fmt.Errorf("walk %s: %w", path, err)) {
					return ctx.Err()
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			mimeType, ok := detectMIMEType(path)
			if !ok {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				info, statErr := os.Stat(path)
				if statErr != nil {
					if !send(fmt.Errorf("%w: %s: %v", domain.ErrUnreadable, path, statErr)) {
						return ctx.Err()
					}
					return nil
				}
				if !info.Mode().IsRegular() {
					return nil
				}
			} else if !d.Type().IsRegular() {
				return nil
			}

			content, readErr := os.ReadFile(path)
			if readErr != nil {
				if !send(fmt.Errorf("%w: %s: %v", domain.ErrUnreadable, path, readErr)) {
					return ctx.Err()
				}
				return nil
			}

			doc := domain.RawDocument{
				URI:      path,
				Path:     c.relativePath(path),
				MIMEType: mimeType,
				Content:  content,
				Metadata: map[string]any{"size": int64(len(content))},
			}
			select {
			case docs <- doc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

		if walkErr != nil && !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
			send(fmt.Errorf("walk %s: %w", c.rootPath, walkErr))
		}
	}()

	return docs, errs
}

// Watch reports changes to eligible files anywhere under the root.
// Directories created after Watch starts are watched too.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.New("connector closed")
	}

	if _, err := os.Stat(c.rootPath); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addRecursive(watcher, c.rootPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}
	c.watcher = watcher

	changes := make(chan domain.RawDocumentChange)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addRecursive(watcher, event.Name); err != nil {
							logger.Warn("watch %s: %v", event.Name, err)
						}
					}
				}
				change := c.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", werr)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent maps an fsnotify event on an eligible file to a change.
// Returns nil for directories, ineligible files and chmod-only events.
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	mimeType, ok := detectMIMEType(event.Name)
	if !ok {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	default:
		return nil
	}

	if changeType != domain.ChangeDeleted {
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
	}

	return &domain.RawDocumentChange{
		Type: changeType,
		Document: domain.RawDocument{
			URI:      event.Name,
			Path:     c.relativePath(event.Name),
			MIMEType: mimeType,
		},
	}
}

// Close stops any active watcher. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}

// relativePath expresses path relative to the reference root with forward
// slashes. Paths that cannot be made relative are returned as-is.
func (c *Connector) relativePath(path string) string {
	if c.base == "" {
		return filepath.ToSlash(path)
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return filepath.ToSlash(path)
		}
		path = abs
	}
	rel, err := filepath.Rel(c.base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// detectMIMEType returns the MIME type for an eligible file name.
// Extensions are matched case-insensitively.
func detectMIMEType(name string) (string, bool) {
	mimeType, ok := eligible[strings.ToLower(filepath.Ext(name))]
	return mimeType, ok
}

// addRecursive watches dir and every directory below it.
func addRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
