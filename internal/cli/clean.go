package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/baa"
	"github.com/pfrederiksen/marathon-results/internal/marathonguide"
	"github.com/pfrederiksen/marathon-results/internal/normalize"
	"github.com/pfrederiksen/marathon-results/internal/runner"
)

var (
	flagCleanSource   string
	flagCleanYear     int
	flagCleanIn       string
	flagCleanMiddList string
	flagCleanMarathon string
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Normalize raw rows into canonical runner records",
		Long: `Converts raw CSVs written by extract into cleaned results files with
the canonical column schema, one <marathon><year>_clean.csv per race.
Guide cleaning walks the year's midd list and picks up whichever raw
files extract produced. Rows that cannot be normalized are dropped and
counted.`,
		RunE: runClean,
	}
	cmd.Flags().StringVar(&flagCleanSource, "source", "", "Raw row source: baa or guide (required)")
	cmd.Flags().IntVar(&flagCleanYear, "year", 0, "Race year (required)")
	cmd.Flags().StringVar(&flagCleanIn, "in", "", "Raw CSV path (baa only; default the extract output for the year)")
	cmd.Flags().StringVar(&flagCleanMiddList, "midd-list", "", "Midd list for guide cleaning (default <data-dir>/<year>midd_list.csv)")
	cmd.Flags().StringVar(&flagCleanMarathon, "marathon", "boston", "Marathon name stamped on cleaned BAA records")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("year")
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	switch flagCleanSource {
	case "baa":
		return cleanBAA()
	case "guide":
		return cleanGuide()
	default:
		return fmt.Errorf("unknown source %q (must be baa or guide)", flagCleanSource)
	}
}

func cleanBAA() error {
	in := flagCleanIn
	if in == "" {
		in = dataPath(baa.Collection(flagCleanYear) + "_marathon.csv")
	}
	header, rows, err := readRawFile(in)
	if err != nil {
		return err
	}
	convert, err := bostonConverter(header)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	records := make([]runner.Record, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		rec, err := convert(row, flagCleanMarathon, flagCleanYear)
		if err != nil {
			log.Debug("dropping raw row", zap.Int("row", i+2), zap.Error(err))
			dropped++
			continue
		}
		records = append(records, rec)
	}
	kept := normalize.FilterRunners(records)

	if err := ensureDataDir(); err != nil {
		return err
	}
	out := dataPath(fmt.Sprintf("%s%d_clean.csv", flagCleanMarathon, flagCleanYear))
	if err := runner.WriteFile(out, kept); err != nil {
		return err
	}
	log.Info("clean records written",
		zap.String("path", out),
		zap.Int("records", len(kept)),
		zap.Int("dropped", dropped),
		zap.Int("filtered", len(records)-len(kept)))
	return nil
}

// bostonConverter picks the raw-row conversion matching the file's header.
func bostonConverter(header []string) (func([]string, string, int) (runner.Record, error), error) {
	switch {
	case slices.Equal(header, normalize.BostonColumns2010):
		return normalize.Boston2010, nil
	case slices.Equal(header, normalize.BostonColumns2001):
		return normalize.Boston2001, nil
	default:
		return nil, fmt.Errorf("unrecognized raw header with %d columns", len(header))
	}
}

func cleanGuide() error {
	if flagCleanIn != "" {
		return fmt.Errorf("--in applies only to --source baa; guide races are read per race")
	}
	middPath := flagCleanMiddList
	if middPath == "" {
		middPath = dataPath(fmt.Sprintf("%dmidd_list.csv", flagCleanYear))
	}
	races, err := marathonguide.ReadFile(middPath)
	if err != nil {
		return fmt.Errorf("reading midd list: %w", err)
	}

	if err := ensureDataDir(); err != nil {
		return err
	}
	written, dropped := 0, 0
	for _, race := range races {
		in := dataPath(fmt.Sprintf("%s%d_raw.csv", race.Marathon, race.Year))
		header, rows, err := readRawFile(in)
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("no raw file for race",
				zap.Int("midd", race.MIDD), zap.String("path", in))
			continue
		}
		if err != nil {
			return err
		}
		records := make([]runner.Record, 0, len(rows))
		for _, row := range rows {
			rec, err := normalize.Guide(header, row, race.Marathon, race.Year)
			if err != nil {
				log.Debug("dropping raw row",
					zap.Int("midd", race.MIDD), zap.Error(err))
				dropped++
				continue
			}
			records = append(records, rec)
		}
		out := dataPath(fmt.Sprintf("%s%d_clean.csv", race.Marathon, race.Year))
		if err := runner.WriteFile(out, records); err != nil {
			return err
		}
		written++
	}
	log.Info("clean files written",
		zap.Int("races", written),
		zap.Int("dropped", dropped))
	return nil
}
