package main

import (
	"fmt"

	"github.com/fwojciec/slowcrawl"
)

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if !deps.Ledger.ExistsURL(c.URL) {
		fmt.Fprintf(deps.Stderr, "error: %q has not been fetched. Use 'slowcrawl seen' to check a URL.\n", c.URL)
		return slowcrawl.Errorf(slowcrawl.ENOTFOUND, "URL %q not in ledger", c.URL)
	}

	deps.Ledger.ForgetURL(c.URL)
	if err := deps.Ledger.Flush(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", slowcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Forgot %s\n", c.URL)
	return nil
}
