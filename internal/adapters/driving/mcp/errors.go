// Package mcp provides an MCP (Model Context Protocol) server adapter for Quarry.
// It lets AI assistants search the local index and read its status.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
