package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/baa"
	"github.com/pfrederiksen/marathon-results/internal/marathonguide"
	"github.com/pfrederiksen/marathon-results/internal/weather"
	"github.com/pfrederiksen/marathon-results/internal/wunderground"
)

var (
	flagBAAYear int

	flagGuideYear     int
	flagGuideMiddList string
	flagDiscoverOnly  bool

	flagWeatherYear    int
	flagWeatherQueries string
	flagWeatherOut     string
)

// newScrapeCmd groups the page-fetching stages.
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch site pages into the snapshot store",
	}
	cmd.AddCommand(newScrapeBAACmd(), newScrapeGuideCmd(), newScrapeWeatherCmd())
	return cmd
}

func newScrapeBAACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baa",
		Short: "Fetch one year of BAA result pages",
		RunE:  runScrapeBAA,
	}
	cmd.Flags().IntVar(&flagBAAYear, "year", 0, "Race year (required)")
	cmd.MarkFlagRequired("year")
	return cmd
}

func runScrapeBAA(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	search := baa.SearchURL(cfg.Sites.BAA, flagBAAYear)
	return baa.NewScraper(client, store, log, search, flagBAAYear).Run(cmd.Context())
}

func newScrapeGuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Discover MarathonGuide races and fetch their result pages",
		Long: `Crawls the MarathonGuide race index for one year, writes the discovered
races as <year>midd_list.csv and their weather lookups as
<year>marathon_dates.csv, then fetches every race's result batches. With
--midd-list the crawl is skipped and batches are fetched for the listed
races instead.`,
		RunE: runScrapeGuide,
	}
	cmd.Flags().IntVar(&flagGuideYear, "year", 0, "Race year to crawl")
	cmd.Flags().StringVar(&flagGuideMiddList, "midd-list", "", "Fetch races from an existing midd list instead of crawling")
	cmd.Flags().BoolVar(&flagDiscoverOnly, "discover-only", false, "Crawl and write the index files without fetching results")
	return cmd
}

func runScrapeGuide(cmd *cobra.Command, args []string) error {
	if flagGuideMiddList == "" && flagGuideYear == 0 {
		return fmt.Errorf("either --year or --midd-list is required")
	}
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	scraper := marathonguide.New(client, store, log, cfg.Sites.MarathonGuide)

	var races []marathonguide.Race
	if flagGuideMiddList != "" {
		races, err = marathonguide.ReadFile(flagGuideMiddList)
		if err != nil {
			return fmt.Errorf("reading midd list: %w", err)
		}
	} else {
		races, err = scraper.Crawl(ctx, flagGuideYear)
		if err != nil {
			return fmt.Errorf("crawling race index: %w", err)
		}
		if err := writeGuideIndex(races); err != nil {
			return err
		}
	}

	if flagDiscoverOnly {
		return nil
	}
	return scraper.Run(ctx, races)
}

// writeGuideIndex saves a crawl's midd list and the weather lookups the
// scrape weather stage consumes.
func writeGuideIndex(races []marathonguide.Race) error {
	if err := ensureDataDir(); err != nil {
		return err
	}
	middPath := dataPath(fmt.Sprintf("%dmidd_list.csv", flagGuideYear))
	if err := marathonguide.WriteFile(middPath, races); err != nil {
		return fmt.Errorf("writing midd list: %w", err)
	}

	queries := make([]wunderground.Query, len(races))
	for i, race := range races {
		queries[i] = wunderground.Query{
			Marathon:  race.Marathon,
			Year:      race.Year,
			Date:      race.Date,
			StartCity: race.City,
			EndCity:   race.City,
			StartHour: wunderground.DefaultStartHour,
			EndHour:   wunderground.DefaultEndHour,
		}
	}
	queriesPath := dataPath(fmt.Sprintf("%dmarathon_dates.csv", flagGuideYear))
	if err := wunderground.WriteQueriesFile(queriesPath, queries); err != nil {
		return fmt.Errorf("writing weather queries: %w", err)
	}

	log.Info("race index written",
		zap.Int("races", len(races)),
		zap.String("midd_list", middPath),
		zap.String("weather_queries", queriesPath))
	return nil
}

func newScrapeWeatherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch weather observations for scraped races",
		Long: `Reads a weather-query CSV (written by scrape guide) and samples each
race's daily-history observations into the observations file. Races
already present in the observations file are not fetched again.`,
		RunE: runScrapeWeather,
	}
	cmd.Flags().IntVar(&flagWeatherYear, "year", 0, "Use the query file written by scrape guide for this year")
	cmd.Flags().StringVar(&flagWeatherQueries, "queries", "", "Weather-query CSV (default <data-dir>/<year>marathon_dates.csv)")
	cmd.Flags().StringVar(&flagWeatherOut, "out", "", "Observations CSV (default <data-dir>/marathon_weather.csv)")
	return cmd
}

func runScrapeWeather(cmd *cobra.Command, args []string) error {
	queriesPath := flagWeatherQueries
	if queriesPath == "" {
		if flagWeatherYear == 0 {
			return fmt.Errorf("either --year or --queries is required")
		}
		queriesPath = dataPath(fmt.Sprintf("%dmarathon_dates.csv", flagWeatherYear))
	}
	queries, err := wunderground.ReadQueriesFile(queriesPath)
	if err != nil {
		return fmt.Errorf("reading weather queries: %w", err)
	}

	outPath := flagWeatherOut
	if outPath == "" {
		outPath = dataPath("marathon_weather.csv")
	}
	have, err := weather.ReadFile(outPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	rows, err := wunderground.New(client, log, cfg.Sites.Wunderground).Run(cmd.Context(), queries, have)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		log.Info("no new observations", zap.String("path", outPath))
		return nil
	}

	if err := ensureDataDir(); err != nil {
		return err
	}
	if err := weather.WriteFile(outPath, append(have, rows...)); err != nil {
		return err
	}
	log.Info("observations written",
		zap.String("path", outPath),
		zap.Int("new", len(rows)),
		zap.Int("total", len(have)+len(rows)))
	return nil
}
