package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkodi/alias-buddy/internal/alias"
	"github.com/darkodi/alias-buddy/internal/analytics"
	"github.com/darkodi/alias-buddy/internal/config"
	"github.com/darkodi/alias-buddy/internal/logger"
	"github.com/darkodi/alias-buddy/internal/repository"
	"github.com/darkodi/alias-buddy/internal/service"
	"github.com/darkodi/alias-buddy/internal/storage"
)

var (
	// Version information (set at build time via ldflags)
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// globalOptions override the environment configuration
type globalOptions struct {
	driver string
	dbPath string
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "aliasbuddy",
		Short: "Alias Buddy - email alias generator for developers",
		Long: `Alias Buddy generates plus-addressed email aliases for testing.

Aliases look like user+feature-YYYYMMDD-hash@domain and are kept in a
history that can be listed and exported. Storage is selected with
STORAGE_DRIVER (memory, sqlite, postgres, redis) or --storage.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.driver, "storage", "", "storage driver (overrides STORAGE_DRIVER)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite database path (overrides DB_PATH)")

	root.AddCommand(
		newGenerateCmd(opts),
		newValidateCmd(opts),
		newRemainingCmd(opts),
		newHistoryCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return root
}

// app bundles what a command needs from the service layer
type app struct {
	svc   *service.AliasService
	store storage.Store
}

func (a *app) Close() error {
	return a.store.Close()
}

// openApp loads configuration and opens the configured store. Log output
// goes to stderr so stdout stays machine readable.
func openApp(ctx context.Context, opts *globalOptions) (*app, error) {
	if opts.driver != "" {
		os.Setenv("STORAGE_DRIVER", opts.driver)
	}
	if opts.dbPath != "" {
		os.Setenv("DB_PATH", opts.dbPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg.Log.Output = os.Stderr
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	log := logger.New(cfg.Log)

	store, err := storage.Open(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	svc := service.NewAliasService(
		repository.NewAliasRepository(store, log),
		alias.NewGenerator(nil, nil),
		analytics.NewLogSink(log),
		log,
	).WithBaseURL(cfg.App.BaseURL).WithMaxQuantity(cfg.App.MaxQuantity)

	return &app{svc: svc, store: store}, nil
}

// versionString returns formatted version information
func versionString() string {
	return fmt.Sprintf("Alias Buddy %s (commit: %s, built: %s)",
		Version, Commit, BuildDate)
}
