package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/gsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gsearch/internal/adapters/driven/search/elasticsearch"
	"github.com/custodia-labs/gsearch/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/gsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/core/services"
	"github.com/custodia-labs/gsearch/internal/logger"
)

var version = "dev"

const (
	homeEnv             = "GSEARCH_HOME"
	engineCloseTimeout  = 5 * time.Second
	badgerDirectoryName = "badger"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// closers releases resources in reverse order of acquisition.
type closers []func() error

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}
}

func bootstrap(ctx context.Context, opts cli.BootstrapOptions) (cli.Services, func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = os.Getenv(homeEnv)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("loading config: %w", err)
	}
	configService := services.NewConfigService(configStore)
	if opts.ConfigOnly {
		return cli.Services{Config: configService}, nil, nil
	}

	settings, err := configService.StoreSettings()
	if err != nil {
		return cli.Services{}, nil, err
	}
	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(filepath.Dir(configStore.Path()), "data")
	}

	var release closers
	fail := func(err error) (cli.Services, func(), error) {
		release.close()
		return cli.Services{}, nil, err
	}

	executor, loader, recentKV, err := openStores(settings, dataDir, &release)
	if err != nil {
		return fail(err)
	}

	recent := services.NewRecentCache(recentKV)
	engine, err := services.NewEngine(executor, recent)
	if err != nil {
		return fail(err)
	}
	release = append(release, func() error { return engine.Close(engineCloseTimeout) })

	cfg, err := configService.EngineConfig()
	if err != nil {
		return fail(err)
	}
	if err := engine.Configure(cfg); err != nil {
		return fail(fmt.Errorf("configuring search (fix %s or run \"gsearch config init --force\"): %w",
			configStore.Path(), err))
	}
	logger.Debug("Loaded %d tables from %s", len(cfg.Tables), configStore.Path())

	watcher := file.NewWatcher(configStore.Path(), func() {
		if err := reload(configStore, configService, engine); err != nil {
			logger.Warn("Reloading config: %v", err)
		}
	})
	if err := watcher.Start(ctx); err != nil {
		logger.Warn("Config reload disabled: %v", err)
	} else {
		release = append(release, watcher.Close)
	}

	svcs := cli.Services{
		Search: engine,
		Recent: recent,
		Config: configService,
		Loader: loader,
	}
	return svcs, release.close, nil
}

// openStores opens the record store and the recent-results store chosen
// by settings. The loader is nil for backends that cannot be written.
func openStores(
	settings domain.StoreSettings,
	dataDir string,
	release *closers,
) (driven.QueryExecutor, driven.RecordLoader, driven.KeyValueStore, error) {
	var (
		executor driven.QueryExecutor
		loader   driven.RecordLoader
		sqlStore *sqlite.Store
	)

	openSQLite := func() (*sqlite.Store, error) {
		if sqlStore != nil {
			return sqlStore, nil
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		*release = append(*release, store.Close)
		sqlStore = store
		return store, nil
	}

	switch settings.RecordBackend {
	case domain.RecordBackendSQLite:
		store, err := openSQLite()
		if err != nil {
			return nil, nil, nil, err
		}
		executor, loader = store.QueryExecutor(), store.RecordLoader()
	case domain.RecordBackendElasticsearch:
		es, err := elasticsearch.NewExecutor(settings.ElasticsearchURLs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to elasticsearch: %w", err)
		}
		executor = es
	case domain.RecordBackendMemory:
		tables := memory.NewTableStore()
		executor, loader = tables, tables
	default:
		return nil, nil, nil, fmt.Errorf("%w: record backend %q", domain.ErrUnsupportedBackend, settings.RecordBackend)
	}

	switch settings.RecentBackend {
	case domain.RecentBackendSQLite:
		store, err := openSQLite()
		if err != nil {
			return nil, nil, nil, err
		}
		return executor, loader, store.KeyValueStore(), nil
	case domain.RecentBackendBadger:
		kv, err := badger.Open(filepath.Join(dataDir, badgerDirectoryName))
		if err != nil {
			return nil, nil, nil, err
		}
		*release = append(*release, kv.Close)
		return executor, loader, kv, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: recent backend %q", domain.ErrUnsupportedBackend, settings.RecentBackend)
	}
}

// reload re-reads the config file and reconfigures the engine. On error
// the running configuration stays in place.
func reload(store *file.ConfigStore, configService *services.ConfigService, engine *services.Engine) error {
	if err := store.Load(); err != nil {
		return err
	}
	cfg, err := configService.EngineConfig()
	if err != nil {
		return err
	}
	if err := engine.Configure(cfg); err != nil {
		return err
	}
	logger.Info("Reloaded %d tables", len(cfg.Tables))
	return nil
}
