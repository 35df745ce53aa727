package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var recentJSON bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently selected results",
	Long:  `Lists results recorded with "search --pick" or the MCP select tool, most recent first.`,
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().BoolVar(&recentJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if recentService == nil {
		return errRecentNotConfigured
	}

	entries := recentService.List(cmd.Context())

	if recentJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No recent results.")
		return nil
	}

	for i, e := range entries {
		cmd.Printf("  [%d] %s\n", i+1, e.Result.Display())
		if e.Reference != "" {
			cmd.Printf("      %s\n", e.Reference)
		}
	}
	return nil
}
