package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
	"github.com/fwojciec/slowcrawl/sqlite"
	"github.com/fwojciec/slowcrawl/viper"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	store := deps.Config.Store
	if store == "" {
		store = viper.StoreJSON
	}

	fmt.Fprintf(deps.Stdout, "Config:   %s\n", deps.Config.Source)
	fmt.Fprintf(deps.Stdout, "Store:    %s\n", store)
	fmt.Fprintf(deps.Stdout, "Frontier: %d queued\n", deps.Frontier.Len())
	fmt.Fprintf(deps.Stdout, "Ledger:   %d URL keys, %d document keys\n",
		deps.Ledger.Len(slowcrawl.CategoryURL), deps.Ledger.Len(slowcrawl.CategoryDoc))

	if deps.DB != nil {
		for _, name := range []string{sqlite.QueueFlushName, sqlite.LedgerFlushName} {
			at, err := deps.DB.LastFlush(deps.Ctx, name)
			switch {
			case slowcrawl.ErrorCode(err) == slowcrawl.ENOTFOUND:
				fmt.Fprintf(deps.Stdout, "Flushed:  %s never\n", name)
			case err != nil:
				fmt.Fprintf(deps.Stderr, "error: %s\n", slowcrawl.ErrorMessage(err))
				return err
			default:
				fmt.Fprintf(deps.Stdout, "Flushed:  %s %s\n", name, at.Format(time.RFC3339))
			}
		}
	}

	if c.Pending {
		for _, u := range deps.Frontier.Pending() {
			fmt.Fprintf(deps.Stdout, "  %s\n", crawl.TruncateURL(u, urlDisplayWidth))
		}
	}

	return nil
}
