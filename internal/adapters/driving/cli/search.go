package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/services"
)

var (
	searchJSON    bool
	searchTimeout time.Duration
	searchPick    int
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search every configured table",
	Long: `Runs one case-insensitive substring query per configured table and
prints each table's results as they were normalised: a display string
built from the table's fields and a reference resolved from its template.

Tables that have not answered within --timeout are reported as pending.
Use --pick to record one of the printed results in the recent list.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().DurationVarP(&searchTimeout, "timeout", "t", 10*time.Second, "how long to wait for all tables")
	searchCmd.Flags().IntVarP(&searchPick, "pick", "p", 0, "record result N (as numbered in the output) as selected")
	rootCmd.AddCommand(searchCmd)
}

type searchOutputJSON struct {
	SearchID string            `json:"search_id"`
	Term     string            `json:"term"`
	Complete bool              `json:"complete"`
	Tables   []tableOutputJSON `json:"tables"`
}

type tableOutputJSON struct {
	domain.TablePreview
	Status  string                `json:"status"`
	Error   string                `json:"error,omitempty"`
	Results []domain.SearchResult `json:"results"`
}

// pickedResult is a numbered result and the table it came from.
type pickedResult struct {
	table  string
	result domain.SearchResult
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]

	if searchService == nil {
		return errSearchNotConfigured
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	outcome, err := services.SearchAndWait(ctx, searchService, term)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("search failed: %w", err)
	}

	numbered := numberResults(outcome)
	if searchPick != 0 {
		if searchPick < 1 || searchPick > len(numbered) {
			return fmt.Errorf("%w: --pick %d is out of range (1-%d)", domain.ErrInvalidInput, searchPick, len(numbered))
		}
	}

	if searchJSON {
		if err := outputSearchJSON(cmd, term, outcome); err != nil {
			return err
		}
	} else {
		outputSearchText(cmd, outcome)
	}

	if searchPick == 0 {
		return nil
	}
	picked := numbered[searchPick-1]
	// The search deadline may already be spent.
	if err := searchService.Select(context.WithoutCancel(ctx), picked.table, picked.result); err != nil {
		return fmt.Errorf("recording selection: %w", err)
	}
	if !searchJSON {
		cmd.Printf("Selected [%d] %s\n", searchPick, picked.result.Display())
	}
	return nil
}

func numberResults(outcome services.SearchOutcome) []pickedResult {
	var out []pickedResult
	for _, t := range outcome.Tables {
		for _, r := range t.Results {
			out = append(out, pickedResult{table: t.Preview.Table, result: r})
		}
	}
	return out
}

func tableStatus(t services.TableOutcome) string {
	switch {
	case !t.Done:
		return "pending"
	case t.Err != nil:
		return "failed"
	default:
		return "completed"
	}
}

func outputSearchJSON(cmd *cobra.Command, term string, outcome services.SearchOutcome) error {
	out := searchOutputJSON{
		SearchID: outcome.Invocation.ID,
		Term:     term,
		Complete: outcome.Complete(),
		Tables:   make([]tableOutputJSON, len(outcome.Tables)),
	}
	for i, t := range outcome.Tables {
		entry := tableOutputJSON{
			TablePreview: t.Preview,
			Status:       tableStatus(t),
			Results:      t.Results,
		}
		if entry.Results == nil {
			entry.Results = []domain.SearchResult{}
		}
		if t.Err != nil {
			entry.Error = t.Err.Error()
		}
		out.Tables[i] = entry
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, outcome services.SearchOutcome) {
	if outcome.Invocation.Empty() {
		cmd.Println("Nothing to search for.")
		return
	}
	if len(outcome.Tables) == 0 {
		cmd.Println("No tables configured.")
		return
	}

	n := 0
	for _, t := range outcome.Tables {
		name := t.Preview.DisplayName
		if name == "" {
			name = t.Preview.Table
		}
		cmd.Printf("%s (%s)\n", name, t.Preview.Table)

		switch tableStatus(t) {
		case "pending":
			cmd.Println("  still searching, timed out")
		case "failed":
			cmd.Printf("  search failed: %v\n", t.Err)
		default:
			if len(t.Results) == 0 {
				cmd.Println("  no results")
			}
			for _, r := range t.Results {
				n++
				cmd.Printf("  [%d] %s\n", n, r.Display())
				if ref, ok := r.Reference(); ok {
					cmd.Printf("      %s\n", ref)
				} else {
					reason, _ := r.FailureReason()
					cmd.Printf("      unresolved: %s\n", reason)
				}
			}
		}
		cmd.Println()
	}
}
