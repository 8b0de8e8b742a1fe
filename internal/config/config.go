// Package config loads the pipeline's YAML configuration. Every field
// has a default, so commands run without a config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/marathon-results/internal/scrape"
)

// Sites names the scraped endpoints.
type Sites struct {
	BAA           string `yaml:"baa"`
	MarathonGuide string `yaml:"marathonguide"`
	Wunderground  string `yaml:"wunderground"`
}

// Scrape tunes request politeness. Durations are strings in the file,
// "500ms" or "30s".
type Scrape struct {
	UserAgent string `yaml:"user_agent"`
	Delay     string `yaml:"delay"`
	Timeout   string `yaml:"timeout"`
	Retries   uint64 `yaml:"retries"`
}

// Data names the pipeline's working paths. An empty db means
// pages.db inside the data directory.
type Data struct {
	Dir string `yaml:"dir"`
	DB  string `yaml:"db"`
}

// Config carries everything the commands need beyond their flags.
// Flags override file values.
type Config struct {
	Sites  Sites  `yaml:"sites"`
	Scrape Scrape `yaml:"scrape"`
	Data   Data   `yaml:"data"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Sites: Sites{
			BAA:           "http://registration.baa.org",
			MarathonGuide: "http://www.marathonguide.com",
			Wunderground:  "https://www.wunderground.com",
		},
		Scrape: Scrape{
			UserAgent: scrape.UserAgent,
			Delay:     scrape.Delay.String(),
			Timeout:   scrape.Timeout.String(),
			Retries:   scrape.MaxRetries,
		},
		Data: Data{Dir: "data"},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an
// error; fields omitted from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ClientOptions converts the scrape section for the page client.
func (s Scrape) ClientOptions() (scrape.Options, error) {
	delay, err := time.ParseDuration(s.Delay)
	if err != nil {
		return scrape.Options{}, fmt.Errorf("scrape.delay %q: %w", s.Delay, err)
	}
	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return scrape.Options{}, fmt.Errorf("scrape.timeout %q: %w", s.Timeout, err)
	}
	return scrape.Options{
		UserAgent: s.UserAgent,
		Timeout:   timeout,
		Delay:     delay,
		Retries:   s.Retries,
	}, nil
}
