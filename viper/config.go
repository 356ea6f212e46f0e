// Package viper loads crawl configuration from a JSON file, falling back to
// a bundled sample, with SLOWCRAWL_ environment overrides.
package viper

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/slowcrawl"
	"github.com/spf13/viper"
)

//go:embed sample/config.sample.json
var sampleConfig []byte

// EnvPrefix is the prefix of environment variables that override file settings.
const EnvPrefix = "SLOWCRAWL"

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// SampleSource is reported by Config.Source when no config file was found.
const SampleSource = "embedded sample"

// Config holds all crawl configuration.
type Config struct {
	Seeds             []string      `mapstructure:"seeds"`
	QueuePath         string        `mapstructure:"queue_path"`
	LedgerPath        string        `mapstructure:"ledger_path"`
	CorpusDir         string        `mapstructure:"corpus_dir"`
	Store             string        `mapstructure:"store"`
	DBPath            string        `mapstructure:"db_path"`
	UserAgent         string        `mapstructure:"user_agent"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RobotsCacheTTL    time.Duration `mapstructure:"robots_cache_ttl"`
	BatchSize         int           `mapstructure:"batch_size"`

	// Source is the file the configuration was read from, or SampleSource.
	Source string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seeds", []string{})
	v.SetDefault("queue_path", "assets/queue.json")
	v.SetDefault("ledger_path", "assets/fingerprint.json")
	v.SetDefault("corpus_dir", "corpus")
	v.SetDefault("store", StoreJSON)
	v.SetDefault("db_path", "assets/slowcrawl.db")
	v.SetDefault("user_agent", "slowcrawl/1.0")
	v.SetDefault("fetch_timeout", "10s")
	v.SetDefault("requests_per_second", 1)
	v.SetDefault("robots_cache_ttl", "0s")
	v.SetDefault("batch_size", 10)
}

// Load reads the configuration at path. When path does not exist the
// bundled sample is read instead, so a fresh checkout is runnable.
// Environment variables such as SLOWCRAWL_BATCH_SIZE take precedence over
// the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := path
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, source = sampleConfig, SampleSource
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", source, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", source, err)
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return slowcrawl.Errorf(slowcrawl.EINVALID, "store must be %q or %q, got %q", StoreJSON, StoreSQLite, c.Store)
	}
	if c.RequestsPerSecond < 0 {
		return slowcrawl.Errorf(slowcrawl.EINVALID, "requests_per_second must not be negative")
	}
	if c.FetchTimeout < 0 {
		return slowcrawl.Errorf(slowcrawl.EINVALID, "fetch_timeout must not be negative")
	}
	if c.RobotsCacheTTL < 0 {
		return slowcrawl.Errorf(slowcrawl.EINVALID, "robots_cache_ttl must not be negative")
	}
	return nil
}
