package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolvePath converts a chunk path back into a local file path that can be
// opened. Relative chunk paths are resolved against referenceRoot; file://
// URIs and absolute paths pass through.
func ResolvePath(referenceRoot, chunkPath string) string {
	if strings.HasPrefix(chunkPath, "file://") {
		return strings.TrimPrefix(chunkPath, "file://")
	}
	if chunkPath == "" {
		return ""
	}
	local := filepath.FromSlash(chunkPath)
	if filepath.IsAbs(local) {
		return local
	}
	if referenceRoot == "" {
		return local
	}
	return filepath.Join(referenceRoot, local)
}
