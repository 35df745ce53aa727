// Package mcp provides an MCP (Model Context Protocol) server adapter for gsearch.
// It lets AI assistants run federated searches and pick results into the recent list.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingTable is returned when a select call names no table.
var ErrMissingTable = errors.New("mcp: table is required")
