package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/baa"
	"github.com/pfrederiksen/marathon-results/internal/marathonguide"
	"github.com/pfrederiksen/marathon-results/internal/pagestore"
)

var (
	flagExtractSource   string
	flagExtractYear     int
	flagExtractMiddList string
	flagExtractOut      string
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Parse stored snapshots into raw CSV rows",
		Long: `Walks one year's snapshots and writes the parsed rows as raw CSVs:
bos<yy>_marathon.csv for the BAA archive, one <marathon><year>_raw.csv
per race for MarathonGuide. Raw guide headers vary by race, so each race
keeps its own file, keyed back to the race list by its midd column.`,
		RunE: runExtract,
	}
	cmd.Flags().StringVar(&flagExtractSource, "source", "", "Snapshot source: baa or guide (required)")
	cmd.Flags().IntVar(&flagExtractYear, "year", 0, "Race year (required)")
	cmd.Flags().StringVar(&flagExtractMiddList, "midd-list", "", "Midd list for guide extraction (default <data-dir>/<year>midd_list.csv)")
	cmd.Flags().StringVar(&flagExtractOut, "out", "", "Raw CSV path (baa only)")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("year")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch flagExtractSource {
	case "baa":
		return extractBAA(cmd.Context(), store)
	case "guide":
		return extractGuide(cmd.Context(), store)
	default:
		return fmt.Errorf("unknown source %q (must be baa or guide)", flagExtractSource)
	}
}

func extractBAA(ctx context.Context, store *pagestore.Store) error {
	rows, err := baa.Extract(ctx, store, flagExtractYear)
	if err != nil {
		return err
	}
	out := flagExtractOut
	if out == "" {
		if err := ensureDataDir(); err != nil {
			return err
		}
		out = dataPath(baa.Collection(flagExtractYear) + "_marathon.csv")
	}
	rows = uniformRows(baa.Columns(flagExtractYear), rows)
	if err := writeRawFile(out, baa.Columns(flagExtractYear), rows); err != nil {
		return err
	}
	log.Info("raw rows written", zap.String("path", out), zap.Int("rows", len(rows)))
	return nil
}

func extractGuide(ctx context.Context, store *pagestore.Store) error {
	if flagExtractOut != "" {
		return fmt.Errorf("--out applies only to --source baa; guide races each get their own file")
	}
	middPath := flagExtractMiddList
	if middPath == "" {
		middPath = dataPath(fmt.Sprintf("%dmidd_list.csv", flagExtractYear))
	}
	races, err := marathonguide.ReadFile(middPath)
	if err != nil {
		return fmt.Errorf("reading midd list: %w", err)
	}

	tables, err := marathonguide.Extract(ctx, store, races)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return fmt.Errorf("no snapshots stored for the %d midd list", flagExtractYear)
	}
	if err := ensureDataDir(); err != nil {
		return err
	}
	written := 0
	for _, table := range tables {
		out := dataPath(fmt.Sprintf("%s%d_raw.csv", table.Race.Marathon, table.Race.Year))
		rows := uniformRows(table.Header, table.Rows)
		if err := writeRawFile(out, table.Header, rows); err != nil {
			return err
		}
		written += len(rows)
	}
	log.Info("raw rows written",
		zap.Int("races", len(tables)),
		zap.Int("rows", written))
	return nil
}
