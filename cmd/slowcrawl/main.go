package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
	"github.com/fwojciec/slowcrawl/fs"
	"github.com/fwojciec/slowcrawl/goquery"
	slowhttp "github.com/fwojciec/slowcrawl/http"
	"github.com/fwojciec/slowcrawl/prometheus"
	"github.com/fwojciec/slowcrawl/robotstxt"
	slowslog "github.com/fwojciec/slowcrawl/slog"
	"github.com/fwojciec/slowcrawl/sqlite"
	"github.com/fwojciec/slowcrawl/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened only when the config selects the sqlite store.
	DB *sqlite.DB

	// HTTP fetcher shared by the crawler, the robots gate and sitemap discovery.
	Fetcher *slowhttp.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("slowcrawl"),
		kong.Description("A polite, resumable web crawler."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'slowcrawl --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := viper.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Check %s or unset SLOWCRAWL_* variables\n", cli.Config)
		return fmt.Errorf("failed to load config: %w", err)
	}
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	queues, ledgers, err := m.openStores(cfg)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.DB = m.DB

	deps.Frontier, err = crawl.OpenFrontier(ctx, queues, viper.NewSeedSource(cfg))
	if err != nil {
		return err
	}
	deps.Ledger, err = crawl.OpenLedger(ctx, ledgers)
	if err != nil {
		return err
	}

	m.Fetcher = slowhttp.NewFetcher(
		slowhttp.WithTimeout(cfg.FetchTimeout),
		slowhttp.WithUserAgent(cfg.UserAgent),
	)

	var sitemaps slowcrawl.SitemapService = slowhttp.NewSitemapService(m.Fetcher.Client())
	if cli.Verbose {
		sitemaps = slowslog.NewLoggingSitemapService(sitemaps, logger)
	}
	deps.Sitemaps = sitemaps

	if cmd == "crawl" {
		if err := m.wireCrawler(deps, cfg, logger, cli.Verbose); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// openStores selects the queue and ledger backends named by the config.
func (m *Main) openStores(cfg *viper.Config) (slowcrawl.QueueStore, slowcrawl.LedgerStore, error) {
	if cfg.Store != viper.StoreSQLite {
		return fs.NewQueueFile(cfg.QueuePath), fs.NewLedgerFile(cfg.LedgerPath), nil
	}

	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	return sqlite.NewQueueStore(m.DB), sqlite.NewLedgerStore(m.DB), nil
}

func (m *Main) wireCrawler(deps *Dependencies, cfg *viper.Config, logger *slog.Logger, verbose bool) error {
	metrics, err := prometheus.NewRecorder(nil)
	if err != nil {
		return err
	}
	deps.Metrics = metrics

	var fetcher slowcrawl.Fetcher = m.Fetcher
	var links slowcrawl.LinkExtractor = goquery.NewLinkExtractor()
	var robots slowcrawl.RobotsGate = robotstxt.NewGate(m.Fetcher.Client(),
		robotstxt.WithCacheTTL(cfg.RobotsCacheTTL),
		robotstxt.WithLogger(logger),
	)
	if verbose {
		fetcher = slowslog.NewLoggingFetcher(fetcher, logger)
		links = slowslog.NewLoggingLinkExtractor(links, logger)
		robots = slowslog.NewLoggingRobotsGate(robots, logger)
	}

	deps.Crawler = &crawl.Crawler{
		Frontier:     deps.Frontier,
		Fingerprints: deps.Ledger,
		Fetcher:      fetcher,
		Links:        links,
		Robots:       robots,
		Progress:     crawl.MultiProgress(slowslog.NewProgressLogger(logger), metrics.Observe),
	}
	if cfg.RequestsPerSecond > 0 {
		deps.Crawler.RateLimiter = crawl.NewDomainLimiter(cfg.RequestsPerSecond)
	}
	deps.Writer = fs.NewCorpusWriter(cfg.CorpusDir)
	return nil
}
