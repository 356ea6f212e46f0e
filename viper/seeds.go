package viper

import (
	"context"
	"slices"

	"github.com/fwojciec/slowcrawl"
)

var _ slowcrawl.SeedSource = (*SeedSource)(nil)

// SeedSource serves the configured seed URLs.
type SeedSource struct {
	cfg *Config
}

// NewSeedSource returns a SeedSource for cfg.
func NewSeedSource(cfg *Config) *SeedSource {
	return &SeedSource{cfg: cfg}
}

// Seeds returns a copy of the configured seed list.
func (s *SeedSource) Seeds(_ context.Context) ([]string, error) {
	return slices.Clone(s.cfg.Seeds), nil
}
