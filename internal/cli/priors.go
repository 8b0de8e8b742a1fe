package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/match"
	"github.com/pfrederiksen/marathon-results/internal/runner"
)

var (
	flagPriorsRoster  string
	flagPriorsWeather string
	flagPriorsOut     string
)

func newPriorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priors <prior-clean.csv> [prior-clean.csv...]",
		Short: "Match a runner roster against past races",
		Long: `Looks up every runner of the roster file in the given prior races'
cleaned results and emits one row per match: the runner's identity
columns plus the prior race, year, finish time, and weather.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPriors,
	}
	cmd.Flags().StringVar(&flagPriorsRoster, "roster", "", "Cleaned results file naming the runners to match (required)")
	cmd.Flags().StringVar(&flagPriorsWeather, "weather", "", "Observations CSV (default <data-dir>/marathon_weather.csv)")
	cmd.Flags().StringVar(&flagPriorsOut, "out", "", "Priors CSV (default derived from the roster name)")
	cmd.MarkFlagRequired("roster")
	return cmd
}

func runPriors(cmd *cobra.Command, args []string) error {
	roster, err := runner.ReadFile(flagPriorsRoster)
	if err != nil {
		return fmt.Errorf("reading roster: %w", err)
	}
	table, err := loadWeatherTable(flagPriorsWeather)
	if err != nil {
		return err
	}

	var priors []match.Prior
	for _, path := range args {
		prior, err := runner.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading prior race: %w", err)
		}
		if len(prior) == 0 {
			continue
		}
		fs := raceFeatures(table, prior[0].Marathon, prior[0].Year)
		found := match.CollectPriors(roster, prior, fs)
		log.Debug("prior race matched",
			zap.String("path", path), zap.Int("matches", len(found)))
		priors = append(priors, found...)
	}
	folded := match.MiscHome(priors)

	out := flagPriorsOut
	if out == "" {
		out = priorsPath(flagPriorsRoster)
	}
	if err := match.WritePriorsFile(out, priors); err != nil {
		return err
	}
	log.Info("priors written",
		zap.String("path", out),
		zap.Int("runners", len(roster)),
		zap.Int("rows", len(priors)),
		zap.Int("misc_homes", folded))
	return nil
}

// priorsPath derives the output name from the roster file:
// boston2015_clean.csv becomes boston2015_priors.csv alongside it.
func priorsPath(roster string) string {
	dir, base := filepath.Split(roster)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, "_clean")
	return filepath.Join(dir, base+"_priors.csv")
}
