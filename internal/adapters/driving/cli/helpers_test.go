package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/gsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/services"
)

// testEnv holds the stores behind the services installed by setupTestServices.
type testEnv struct {
	tables *memory.TableStore
	kv     *memory.KeyValueStore
	config *memory.ConfigStore
	engine *services.Engine
	recent *services.RecentCache
}

func testDescriptors() []domain.TableDescriptor {
	return []domain.TableDescriptor{
		{
			Table:             "Account__ap",
			DisplayName:       "Accounts",
			Icon:              "standard:account",
			FieldsToShow:      []string{"Name", "Phone"},
			FieldsToQuery:     []string{"Name", "Phone"},
			ReferenceTemplate: "/lightning/r/Account/:Id/view",
		},
		{
			Table:             "Contact__ap",
			DisplayName:       "Contacts",
			Icon:              "standard:contact",
			FieldsToShow:      []string{"Name"},
			FieldsToQuery:     []string{"Name"},
			ReferenceTemplate: "/lightning/r/Contact/:Id/view",
		},
	}
}

// setupTestServices installs services backed by in-memory stores and
// resets command flags. The returned function restores the previous state.
func setupTestServices() (*testEnv, func()) {
	ctx := context.Background()

	env := &testEnv{
		tables: memory.NewTableStore(),
		kv:     memory.NewKeyValueStore(),
		config: memory.NewConfigStore(),
	}
	_ = env.tables.Load(ctx, "Account__ap", []domain.Record{
		{"Id": "001", "Name": "Acme", "Phone": "555-0100"},
		{"Id": "002", "Name": "Globex", "Phone": "555-0200"},
	})
	_ = env.tables.Load(ctx, "Contact__ap", []domain.Record{
		{"Id": "003", "Name": "Jane Acme"},
		{"Name": "Acme Ghost"},
	})

	env.recent = services.NewRecentCache(env.kv)
	engine, err := services.NewEngine(env.tables, env.recent)
	if err != nil {
		panic(err)
	}
	cfg := domain.EngineConfig{Tables: testDescriptors()}
	if err := engine.Configure(cfg); err != nil {
		panic(err)
	}
	env.engine = engine

	configSvc := services.NewConfigService(env.config)
	if err := configSvc.Save(cfg, domain.DefaultStoreSettings()); err != nil {
		panic(err)
	}

	prev := Services{
		Search: searchService,
		Recent: recentService,
		Config: configService,
		Loader: recordLoader,
	}
	prevBootstrap := bootstrap

	SetServices(Services{
		Search: engine,
		Recent: env.recent,
		Config: configSvc,
		Loader: env.tables,
	})
	bootstrap = nil
	resetFlags()

	return env, func() {
		_ = engine.Close(time.Second)
		SetServices(prev)
		bootstrap = prevBootstrap
		resetFlags()
	}
}

func resetFlags() {
	searchJSON = false
	searchTimeout = 10 * time.Second
	searchPick = 0
	recentJSON = false
	configInitForce = false
	verbose = false
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
