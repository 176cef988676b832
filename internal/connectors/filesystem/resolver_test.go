package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want string
	}{
		{"file uri", "/corpus", "file:///Users/test/file.txt", "/Users/test/file.txt"},
		{"relative joined to root", "/corpus", "apps/acme.md", filepath.Join("/corpus", "apps", "acme.md")},
		{"relative without root", "", "apps/acme.md", filepath.Join("apps", "acme.md")},
		{"parent traversal kept", "/work/data", "../apps/a.md", filepath.Join("/work", "apps", "a.md")},
		{"empty", "/corpus", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.root, tt.path))
		})
	}
}

func TestResolvePath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "a.md")
	assert.Equal(t, abs, ResolvePath("/elsewhere", filepath.ToSlash(abs)))
}
