package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
	"github.com/fwojciec/slowcrawl/prometheus"
	"github.com/fwojciec/slowcrawl/sqlite"
	"github.com/fwojciec/slowcrawl/viper"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *viper.Config
	DB       *sqlite.DB
	Frontier *crawl.Frontier
	Ledger   *crawl.Ledger
	Sitemaps slowcrawl.SitemapService
	Crawler  *crawl.Crawler
	Writer   slowcrawl.DocumentWriter
	Metrics  *prometheus.Recorder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" default:"config.json" help:"Path to the JSON config file"`
	Verbose bool   `short:"v" help:"Log every fetch, link extraction and robots check"`

	Crawl   CrawlCmd   `cmd:"" help:"Fetch a batch of documents from the frontier"`
	Enqueue EnqueueCmd `cmd:"" help:"Add URLs to the frontier"`
	Status  StatusCmd  `cmd:"" help:"Show frontier and ledger sizes"`
	Seen    SeenCmd    `cmd:"" help:"Report whether a URL has been fetched"`
	Forget  ForgetCmd  `cmd:"" help:"Remove a URL from the ledger so it can be fetched again"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	N           int    `short:"n" help:"Number of new documents to fetch (default: batch_size from config)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file after the batch"`
}

// EnqueueCmd is the "enqueue" subcommand.
type EnqueueCmd struct {
	URLs    []string `arg:"" optional:"" name:"url" help:"URLs to append to the frontier"`
	Sitemap string   `short:"s" help:"Discover URLs from this site's sitemap"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Pending bool `short:"p" help:"List the queued URLs"`
}

// SeenCmd is the "seen" subcommand.
type SeenCmd struct {
	URL string `arg:"" help:"URL to look up"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	URL string `arg:"" help:"URL to forget"`
}
