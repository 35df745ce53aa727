package mcp

import (
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server talks to.
type Ports struct {
	// Search runs federated searches and records selections.
	Search driving.SearchService

	// Recent lists previously selected results. Optional.
	Recent driving.RecentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
