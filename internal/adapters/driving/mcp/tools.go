package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/services"
)

const defaultSearchTimeout = 10 * time.Second

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Term           string `json:"term" jsonschema:"the text to look for across every configured table"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"how long to wait for slow tables (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	SearchID string        `json:"search_id"`
	Term     string        `json:"term"`
	Tables   []TableOutput `json:"tables"`
	Complete bool          `json:"complete"`
}

// TableOutput carries one table's share of a search.
type TableOutput struct {
	Table   string         `json:"table"`
	Name    string         `json:"name"`
	Icon    string         `json:"icon,omitempty"`
	Status  string         `json:"status"`
	Error   string         `json:"error,omitempty"`
	Results []ResultOutput `json:"results"`
}

// ResultOutput is one normalised record.
type ResultOutput struct {
	ID            string `json:"id"`
	Display       string `json:"display"`
	Reference     string `json:"reference,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Table statuses reported by the search tool.
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusPending   = "pending"
)

// RecentInput is the (empty) input schema for the recent tool.
type RecentInput struct{}

// RecentOutput is the output schema for the recent tool.
type RecentOutput struct {
	Entries []RecentOutputEntry `json:"entries"`
	Count   int                 `json:"count"`
}

// RecentOutputEntry is one recent selection.
type RecentOutputEntry struct {
	Icon      string       `json:"icon"`
	Reference string       `json:"reference"`
	Result    ResultOutput `json:"result"`
}

// SelectInput is the input schema for the select tool.
type SelectInput struct {
	Table         string `json:"table" jsonschema:"the table the result came from"`
	ID            string `json:"id" jsonschema:"the result id"`
	Display       string `json:"display,omitempty" jsonschema:"the result display string"`
	Reference     string `json:"reference,omitempty" jsonschema:"the resolved reference of the result"`
	FailureReason string `json:"failure_reason,omitempty" jsonschema:"set instead of reference for unresolved results"`
}

// SelectOutput is the output schema for the select tool.
type SelectOutput struct {
	Recorded bool `json:"recorded"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search every configured table for a term and return normalised results per table",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recent",
		Description: "List recently selected results, most recent first",
	}, s.handleRecent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select",
		Description: "Record a search result as selected so it shows up in the recent list",
	}, s.handleSelect)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	timeout := defaultSearchTimeout
	if input.TimeoutSeconds > 0 {
		timeout = time.Duration(input.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// A timeout still yields whatever tables finished.
	outcome, _ := services.SearchAndWait(ctx, s.ports.Search, input.Term)

	output := SearchOutput{
		SearchID: outcome.Invocation.ID,
		Term:     input.Term,
		Tables:   make([]TableOutput, len(outcome.Tables)),
		Complete: outcome.Complete(),
	}
	for i, t := range outcome.Tables {
		table := TableOutput{
			Table:   t.Preview.Table,
			Name:    t.Preview.DisplayName,
			Icon:    t.Preview.Icon,
			Results: make([]ResultOutput, len(t.Results)),
		}
		switch {
		case !t.Done:
			table.Status = statusPending
		case t.Err != nil:
			table.Status = statusFailed
			table.Error = t.Err.Error()
		default:
			table.Status = statusCompleted
		}
		for j, r := range t.Results {
			table.Results[j] = toResultOutput(r)
		}
		output.Tables[i] = table
	}

	return nil, output, nil
}

// handleRecent handles the recent tool invocation.
func (s *Server) handleRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RecentInput,
) (*mcp.CallToolResult, RecentOutput, error) {
	output := RecentOutput{Entries: []RecentOutputEntry{}}
	if s.ports.Recent == nil {
		return nil, output, nil
	}

	for _, e := range s.ports.Recent.List(ctx) {
		output.Entries = append(output.Entries, RecentOutputEntry{
			Icon:      e.Icon,
			Reference: e.Reference,
			Result:    toResultOutput(e.Result),
		})
	}
	output.Count = len(output.Entries)
	return nil, output, nil
}

// handleSelect handles the select tool invocation.
func (s *Server) handleSelect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectInput,
) (*mcp.CallToolResult, SelectOutput, error) {
	if strings.TrimSpace(input.Table) == "" {
		return nil, SelectOutput{}, ErrMissingTable
	}

	var result domain.SearchResult
	switch {
	case input.Reference != "" && input.FailureReason == "":
		result = domain.NewResolvedResult(input.ID, input.Display, input.Reference)
	case input.FailureReason != "" && input.Reference == "":
		result = domain.NewUnresolvedResult(input.ID, input.Display, input.FailureReason)
	default:
		return nil, SelectOutput{}, fmt.Errorf("%w: result %q must carry exactly one of reference or failure_reason",
			domain.ErrInvalidInput, input.ID)
	}

	if err := s.ports.Search.Select(ctx, input.Table, result); err != nil {
		return nil, SelectOutput{}, fmt.Errorf("selecting result: %w", err)
	}
	return nil, SelectOutput{Recorded: true}, nil
}

func toResultOutput(r domain.SearchResult) ResultOutput {
	out := ResultOutput{ID: r.ID(), Display: r.Display()}
	if ref, ok := r.Reference(); ok {
		out.Reference = ref
	} else {
		out.FailureReason, _ = r.FailureReason()
	}
	return out
}
