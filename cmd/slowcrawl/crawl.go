package main

import (
	"fmt"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
)

// urlDisplayWidth is the column width used when printing fetched URLs.
const urlDisplayWidth = 60

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	n := c.N
	if n <= 0 {
		n = deps.Config.BatchSize
	}

	batch := deps.Crawler.Batch(deps.Ctx, n)

	var writeErr error
	for doc := range batch.Documents() {
		if writeErr = deps.Writer.WriteDocument(deps.Ctx, doc); writeErr != nil {
			break
		}
		fmt.Fprintf(deps.Stdout, "  %-*s  %s\n", urlDisplayWidth, crawl.TruncateURL(doc.URL, urlDisplayWidth), crawl.FormatBytes(len(doc.Content)))
	}
	if writeErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", slowcrawl.ErrorMessage(writeErr))
		return writeErr
	}
	if err := batch.Err(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", slowcrawl.ErrorMessage(err))
		return err
	}

	result := batch.Result()
	fmt.Fprintf(deps.Stdout, "%s (%d queued)\n", result.Summary(), deps.Frontier.Len())

	if deps.Metrics != nil {
		deps.Metrics.SetFrontierSize(deps.Frontier.Len())
		deps.Metrics.SetLedgerKeys(slowcrawl.CategoryURL, deps.Ledger.Len(slowcrawl.CategoryURL))
		deps.Metrics.SetLedgerKeys(slowcrawl.CategoryDoc, deps.Ledger.Len(slowcrawl.CategoryDoc))
		if c.MetricsFile != "" {
			if err := deps.Metrics.WriteTextfile(c.MetricsFile); err != nil {
				fmt.Fprintf(deps.Stderr, "error: writing metrics: %v\n", err)
				return err
			}
		}
	}

	return nil
}
