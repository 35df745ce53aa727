package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Inspect and create the configuration file",
	Annotations: map[string]string{annotationConfigOnly: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configService == nil {
			return errConfigNotConfigured
		}
		cmd.Println(configService.Path())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration with one example table",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite existing tables")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// exampleTable is written by config init.
func exampleTable() domain.TableDescriptor {
	return domain.TableDescriptor{
		Table:             "Account__ap",
		DisplayName:       "Accounts",
		Icon:              "standard:account",
		FieldsToShow:      []string{"Name", "Phone"},
		FieldsToQuery:     []string{"Name", "Phone"},
		ReferenceTemplate: "/lightning/r/Account/:Id/view",
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configService == nil {
		return errConfigNotConfigured
	}

	cfg, err := configService.EngineConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	settings, err := configService.StoreSettings()
	if err != nil {
		return fmt.Errorf("reading store settings: %w", err)
	}

	cmd.Printf("Config file: %s\n", configService.Path())
	cmd.Println()
	cmd.Println("Store:")
	cmd.Printf("  Backend:        %s (%s)\n", settings.RecordBackend, settings.RecordBackend.Description())
	if settings.DataDir != "" {
		cmd.Printf("  Data dir:       %s\n", settings.DataDir)
	}
	if settings.RecordBackend == domain.RecordBackendElasticsearch {
		cmd.Printf("  Elasticsearch:  %s\n", strings.Join(settings.ElasticsearchURLs, ", "))
	}
	cmd.Println()
	cmd.Println("Recent:")
	cmd.Printf("  Max items:      %d\n", cfg.EffectiveMaxRecentItems())
	cmd.Printf("  Persist:        %s\n", cfg.EffectivePersistPolicy())
	cmd.Printf("  Backend:        %s\n", settings.RecentBackend)
	cmd.Println()
	cmd.Printf("Tables (%d):\n", len(cfg.Tables))
	for _, t := range cfg.Tables {
		cmd.Printf("  %s\n", t.Table)
		cmd.Printf("      Show:  %s\n", strings.Join(t.FieldsToShow, ", "))
		cmd.Printf("      Query: %s\n", strings.Join(t.FieldsToQuery, ", "))
		cmd.Printf("      Href:  %s\n", t.ReferenceTemplate)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if configService == nil {
		return errConfigNotConfigured
	}

	cfg, err := configService.EngineConfig()
	if err != nil && !configInitForce {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(cfg.Tables) > 0 && !configInitForce {
		return fmt.Errorf("%w: %s already configures %d tables, use --force to overwrite",
			domain.ErrInvalidInput, configService.Path(), len(cfg.Tables))
	}

	settings, err := configService.StoreSettings()
	if err != nil {
		settings = domain.DefaultStoreSettings()
	}

	cfg = domain.EngineConfig{
		MaxRecentItems: domain.DefaultMaxRecentItems,
		PersistPolicy:  domain.PersistLocal,
		Tables:         []domain.TableDescriptor{exampleTable()},
	}
	if err := configService.Save(cfg, settings); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	cmd.Printf("Wrote %s\n", configService.Path())
	return nil
}
