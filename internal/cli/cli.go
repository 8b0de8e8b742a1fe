package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/config"
	"github.com/pfrederiksen/marathon-results/internal/logger"
	"github.com/pfrederiksen/marathon-results/internal/pagestore"
	"github.com/pfrederiksen/marathon-results/internal/scrape"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDataDir string
	flagDB      string
	flagVerbose bool

	cfg *config.Config
	log *zap.Logger
)

// NewRootCmd creates the root command and its subcommand tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marathon-results",
		Short: "Scrape, clean, and combine marathon results",
		Long: `marathon-results runs each stage of the results pipeline as a subcommand:
scraping result and weather pages into a snapshot store, extracting and
cleaning them into canonical CSV files, deriving per-race modeling features,
and matching runners across races.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("data-dir") && cfg.Data.Dir != "" {
				flagDataDir = cfg.Data.Dir
			}
			log, err = logger.New(flagVerbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "data", "Directory for CSV files")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "Snapshot store path (default <data-dir>/pages.db)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newScrapeCmd(),
		newExtractCmd(),
		newCleanCmd(),
		newCombineCmd(),
		newPriorsCmd(),
		newSplitCmd(),
	)

	return cmd
}

// dataPath places a pipeline file inside the data directory.
func dataPath(name string) string {
	return filepath.Join(flagDataDir, name)
}

// ensureDataDir creates the data directory before a command writes into it.
func ensureDataDir() error {
	if err := os.MkdirAll(flagDataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return nil
}

// openStore opens the snapshot store named by --db.
func openStore() (*pagestore.Store, error) {
	if err := ensureDataDir(); err != nil {
		return nil, err
	}
	path := flagDB
	if path == "" {
		path = cfg.Data.DB
	}
	if path == "" {
		path = dataPath("pages.db")
	}
	store, err := pagestore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	return store, nil
}

// newClient builds the polite page client from configuration.
func newClient() (*scrape.Client, error) {
	opts, err := cfg.Scrape.ClientOptions()
	if err != nil {
		return nil, err
	}
	return scrape.New(opts), nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
