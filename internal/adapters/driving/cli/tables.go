package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the configured tables",
	Args:  cobra.NoArgs,
	RunE:  runTablesList,
}

var tablesImportCmd = &cobra.Command{
	Use:   "import [table] [file.json]",
	Short: "Load records into a table from a JSON file",
	Long: `Replaces the contents of a locally cached table with the records in a
JSON file. The file must hold an array of objects; each key becomes a column.`,
	Args: cobra.ExactArgs(2),
	RunE: runTablesImport,
}

func init() {
	tablesCmd.AddCommand(tablesImportCmd)
	rootCmd.AddCommand(tablesCmd)
}

func runTablesList(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}

	tables := searchService.Tables()
	if len(tables) == 0 {
		cmd.Println("No tables configured.")
		return nil
	}

	for _, t := range tables {
		name := t.DisplayName
		if name == "" {
			name = t.Table
		}
		cmd.Printf("  %s (%s)\n", name, t.Table)
		if t.Icon != "" {
			cmd.Printf("      Icon:   %s\n", t.Icon)
		}
		cmd.Printf("      Fields: %s\n", strings.Join(t.FieldsToShow, ", "))
	}
	return nil
}

func runTablesImport(cmd *cobra.Command, args []string) error {
	table, path := args[0], args[1]

	if recordLoader == nil {
		return errLoaderNotConfigured
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %s must hold a JSON array of objects: %v", domain.ErrInvalidInput, path, err)
	}

	if err := recordLoader.Load(cmd.Context(), table, records); err != nil {
		return fmt.Errorf("loading %s: %w", table, err)
	}

	cmd.Printf("Loaded %d records into %s\n", len(records), table)
	return nil
}
