package main

import (
	"fmt"

	"github.com/fwojciec/grabbr"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	deck, err := deps.Decks.FindDeckByName(deps.Ctx, c.Name)
	if err != nil {
		if grabbr.ErrorCode(err) == grabbr.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: deck %q not found. Use 'grabbr decks' to see saved decks.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		}
		return err
	}

	opts := grabbr.DefaultOptions().With(deps.Config.Options)
	exporter, err := exporterFor(c.Format, opts, c.Study || deps.Config.Study)
	if err != nil {
		return err
	}
	return writeItems(deps.Stdout, c.Output, exporter, filterItems(deck.Items, c.Search))
}
