package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/csv"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	n, err := csv.ConvertFile(c.File, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactcrawl.ErrorMessage(err))
		return err
	}

	output := c.Output
	if output == "" {
		output = strings.TrimSuffix(c.File, ".csv") + ".json"
	}

	fmt.Fprintf(deps.Stdout, "Converted %d sites to %s\n", n, output)
	return nil
}
