package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/marathon-results/internal/enrich"
	"github.com/pfrederiksen/marathon-results/internal/runner"
	"github.com/pfrederiksen/marathon-results/internal/split"
)

var flagSplitFormat string

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <clean.csv>",
		Short: "Locate the qualifier boundary bib in a cleaned results file",
		Long: `Runs the variance-scan boundary finder over one race's finish times,
ordered by bib, and prints the first non-qualifier bib.`,
		Args: cobra.ExactArgs(1),
		RunE: runSplit,
	}
	cmd.Flags().StringVar(&flagSplitFormat, "format", "text", "Output format: text or json")
	return cmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagSplitFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagSplitFormat)
	}

	records, err := runner.ReadFile(args[0])
	if err != nil {
		return err
	}
	samples := enrich.SplitSamples(records)
	bib, err := split.Find(samples, split.DefaultOptions())
	if err != nil {
		return err
	}

	result := &SplitResult{Runners: len(samples), Bib: bib}
	if len(records) > 0 {
		result.Marathon = records[0].Marathon
		result.Year = records[0].Year
	}
	return WriteSplit(cmd.OutOrStdout(), result, format)
}
