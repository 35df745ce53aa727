// Package cli provides the cobra command tree for gsearch.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
	"github.com/custodia-labs/gsearch/internal/logger"
)

// Command annotations read before services are built.
const (
	// annotationNoServices marks commands that run without building services.
	annotationNoServices = "gsearch/no-services"
	// annotationConfigOnly marks commands (and their children) that only
	// need the config service, so a broken table set cannot lock them out.
	annotationConfigOnly = "gsearch/config-only"
)

var (
	version = "dev"

	verbose   bool
	configDir string

	searchService driving.SearchService
	recentService driving.RecentService
	configService driving.ConfigService
	recordLoader  driven.RecordLoader

	bootstrap Bootstrap
	cleanup   func()
)

var (
	errSearchNotConfigured = errors.New("search service not configured")
	errRecentNotConfigured = errors.New("recent service not configured")
	errConfigNotConfigured = errors.New("config service not configured")
	errLoaderNotConfigured = errors.New("record loader not configured")
)

// Services are the ports the commands drive.
type Services struct {
	Search driving.SearchService
	Recent driving.RecentService
	Config driving.ConfigService
	Loader driven.RecordLoader
}

// BootstrapOptions describe what a command needs built.
type BootstrapOptions struct {
	// ConfigDir is the configuration directory; empty means the default.
	ConfigDir string
	// ConfigOnly asks for the config service alone: no stores are opened
	// and the table set is not validated.
	ConfigOnly bool
}

// Bootstrap builds the services a command needs. The returned release
// function runs once the command ends and may be nil.
type Bootstrap func(ctx context.Context, opts BootstrapOptions) (Services, func(), error)

var rootCmd = &cobra.Command{
	Use:   "gsearch",
	Short: "Federated search across locally cached tables",
	Long: `gsearch fans a search term out across every configured table,
normalises each matching record into a display string and a reference,
and keeps a short list of recently selected results.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if hasAnnotation(cmd, annotationNoServices) || bootstrap == nil {
			return nil
		}

		svcs, release, err := bootstrap(cmd.Context(), BootstrapOptions{
			ConfigDir:  configDir,
			ConfigOnly: hasAnnotation(cmd, annotationConfigOnly),
		})
		if err != nil {
			return err
		}
		SetServices(svcs)
		cleanup = release
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default $GSEARCH_HOME or ~/.gsearch)")
}

// hasAnnotation reports whether cmd or one of its parents carries key.
func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

// Command returns the root command, for callers that set args or output.
func Command() *cobra.Command {
	return rootCmd
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs the services used by every command.
func SetServices(s Services) {
	searchService = s.Search
	recentService = s.Recent
	configService = s.Config
	recordLoader = s.Loader
}

// SetBootstrap registers the function that builds services before a
// command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}
