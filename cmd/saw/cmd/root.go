package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/saw/internal/adapters/bbolt"
	"github.com/corey/saw/internal/adapters/resources"
	"github.com/corey/saw/internal/adapters/zaplog"
	"github.com/corey/saw/internal/app"
	"github.com/corey/saw/internal/config"
	"github.com/corey/saw/internal/ports"
)

var (
	cfg     config.Config
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "saw",
	Short: "Declarative block-to-item saw recipe engine",
	Long: "Loads saw recipes from <resources>/<namespace>/saw_recipes/*.json(5)\n" +
		"and evaluates blocks against them. Settings come from SAW_* environment\n" +
		"variables; flags override them.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("resources", "r", "", "Resource root (SAW_RESOURCES)")
	pf.String("db", "", "Catalog database path (SAW_DB_PATH)")
	pf.String("catalog", "", "Stored catalog name (SAW_CATALOG)")
	pf.String("catalog-file", "", "YAML catalog seed file, used instead of the stored catalog (SAW_CATALOG_FILE)")
	pf.Int("workers", 0, "Decode workers (SAW_WORKERS)")
	pf.Uint64("seed", 0, "Random seed for tag_random, 0 = time-seeded (SAW_SEED)")
	pf.String("log-level", "", "Log level (SAW_LOG_LEVEL)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Human-readable development logging")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the environment config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	// DBPath defaults relative to resources; recompute if only resources changed
	dbDefaulted := loaded.DBPath == config.DefaultDBPath(loaded.Resources)

	flags := cmd.Flags()
	if flags.Changed("resources") {
		loaded.Resources, _ = flags.GetString("resources")
		if dbDefaulted {
			loaded.DBPath = config.DefaultDBPath(loaded.Resources)
		}
	}
	if flags.Changed("db") {
		loaded.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("catalog") {
		loaded.Catalog, _ = flags.GetString("catalog")
	}
	if flags.Changed("catalog-file") {
		loaded.CatalogFile, _ = flags.GetString("catalog-file")
	}
	if flags.Changed("workers") {
		loaded.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		loaded.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-level") {
		loaded.LogLevel, _ = flags.GetString("log-level")
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger, err = zaplog.NewLogger(cfg.LogLevel, verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}

// openStore opens the catalog database.
func openStore() (*bbolt.Store, error) {
	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("%w\n%s", err, dbLockHint(cfg.DBPath))
		}
		return nil, err
	}
	return store, nil
}

// newEngine builds an engine over the configured resources and catalog.
// The store is only opened when no catalog file is configured, and is closed
// before returning: the catalog is read once.
func newEngine(diag ports.Diagnostics, observer app.EvalObserver) (*app.Engine, error) {
	var store ports.CatalogStore
	if cfg.CatalogFile == "" {
		s, err := openStore()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		store = s
	}
	cat, err := app.OpenCatalog(store, cfg.Catalog, cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	sink := app.Fanout{zaplog.NewSink(logger)}
	if diag != nil {
		sink = append(sink, diag)
	}
	return app.New(app.Config{
		Source:      resources.NewSource(os.DirFS(cfg.Resources)),
		Catalog:     cat,
		Diagnostics: sink,
		Random:      app.NewRandom(cfg.Seed),
		Observer:    observer,
		Workers:     cfg.Workers,
	})
}

// loadEngine builds an engine and runs the first reload.
func loadEngine(ctx context.Context, diag ports.Diagnostics) (*app.Engine, ports.ReloadReport, error) {
	e, err := newEngine(diag, nil)
	if err != nil {
		return nil, ports.ReloadReport{}, err
	}
	report, err := e.Reload(ctx)
	if err != nil {
		return nil, report, err
	}
	return e, report, nil
}
