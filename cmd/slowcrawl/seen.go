package main

import "fmt"

// Run executes the seen command.
func (c *SeenCmd) Run(deps *Dependencies) error {
	if deps.Ledger.ExistsURL(c.URL) {
		fmt.Fprintf(deps.Stdout, "seen     %s\n", c.URL)
	} else {
		fmt.Fprintf(deps.Stdout, "not seen %s\n", c.URL)
	}
	return nil
}
