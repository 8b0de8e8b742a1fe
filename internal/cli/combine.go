package cli

import (
	"math/rand"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/enrich"
	"github.com/pfrederiksen/marathon-results/internal/match"
	"github.com/pfrederiksen/marathon-results/internal/runner"
	"github.com/pfrederiksen/marathon-results/internal/weather"
)

var (
	flagCombineOut        string
	flagCombineWeather    string
	flagCombineSample     bool
	flagCombineSeed       int64
	flagCombineFillSplits bool
)

func newCombineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine <clean.csv> [clean.csv...]",
		Short: "Derive modeling features across cleaned races",
		Long: `Builds one modeling dataset from cleaned results files: per race it
locates the qualifier boundary, interpolates missing splits, and joins
the race's weather features; rare home regions fold to MISC across the
whole output. With --sample each race is reduced to its gender and age
matching-estimator cells first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCombine,
	}
	cmd.Flags().StringVar(&flagCombineOut, "out", "", "Combined CSV (default <data-dir>/combined.csv)")
	cmd.Flags().StringVar(&flagCombineWeather, "weather", "", "Observations CSV (default <data-dir>/marathon_weather.csv)")
	cmd.Flags().BoolVar(&flagCombineSample, "sample", false, "Sample matching-estimator cells instead of keeping every runner")
	cmd.Flags().Int64Var(&flagCombineSeed, "seed", 42, "Estimator sampling seed")
	cmd.Flags().BoolVar(&flagCombineFillSplits, "fill-splits", true, "Interpolate missing split times")
	return cmd
}

func runCombine(cmd *cobra.Command, args []string) error {
	table, err := loadWeatherTable(flagCombineWeather)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(flagCombineSeed))

	var combined []enrich.Row
	for _, path := range args {
		records, err := runner.ReadFile(path)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			log.Warn("no records", zap.String("path", path))
			continue
		}
		if flagCombineSample {
			records = match.SampleEstimators(records, rng)
		}
		fs := raceFeatures(table, records[0].Marathon, records[0].Year)
		rows, err := enrich.AddFeatures(records, fs, flagCombineFillSplits)
		if err != nil {
			return err
		}
		combined = append(combined, rows...)
	}
	folded := enrich.MiscHome(combined)

	out := flagCombineOut
	if out == "" {
		if err := ensureDataDir(); err != nil {
			return err
		}
		out = dataPath("combined.csv")
	}
	if err := enrich.WriteFile(out, combined); err != nil {
		return err
	}
	log.Info("combined rows written",
		zap.String("path", out),
		zap.Int("races", len(args)),
		zap.Int("rows", len(combined)),
		zap.Int("misc_homes", folded))
	return nil
}

// loadWeatherTable loads the observation lookup, defaulting to the file
// scrape weather maintains.
func loadWeatherTable(path string) (*weather.Table, error) {
	if path == "" {
		path = dataPath("marathon_weather.csv")
	}
	return weather.LoadTable(path)
}

// raceFeatures aggregates one race's observations. Races missing from the
// observations file keep zero features.
func raceFeatures(table *weather.Table, marathon string, year int) weather.FeatureSet {
	obs := table.At(marathon, year)
	if len(obs) == 0 {
		log.Warn("no weather observations",
			zap.String("marathon", marathon), zap.Int("year", year))
	}
	return weather.Features(obs)
}
