package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Furafrafrfr/readability"
)

// Run executes the batch command: every file is extracted concurrently
// and results are printed in input order.
func (c *BatchCmd) Run(deps *Dependencies) error {
	results := make([]string, len(c.Files))
	errs := make([]error, len(c.Files))

	opts := deps.Config.Extract.ToOptions()
	opts.Serializer = formatSerializer(c.Format, "")

	g := new(errgroup.Group)
	g.SetLimit(8)
	for i, file := range c.Files {
		i, file := i, file
		g.Go(func() error {
			source, err := readSource(file)
			if err != nil {
				errs[i] = err
				return nil
			}
			result, err := readability.Extract(source, "", opts)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = result.Content
			return nil
		})
	}
	_ = g.Wait()

	for i, file := range c.Files {
		if errs[i] != nil {
			fmt.Fprintf(deps.Stderr, "%s: %v\n", file, errs[i])
			continue
		}
		fmt.Fprintf(deps.Stdout, "=== %s ===\n%s\n", file, results[i])
	}
	return nil
}
