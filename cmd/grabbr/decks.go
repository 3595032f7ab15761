package main

import (
	"fmt"

	"github.com/fwojciec/grabbr"
)

// Run executes the decks command.
func (c *DecksCmd) Run(deps *Dependencies) error {
	decks, err := deps.Decks.FindDecks(deps.Ctx, grabbr.DeckFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}

	if len(decks) == 0 {
		fmt.Fprintln(deps.Stdout, "No decks found. Use 'grabbr save' to create one.")
		return nil
	}

	for _, d := range decks {
		fmt.Fprintf(deps.Stdout, "%s  %d items  %s  %s\n", d.Name, len(d.Items), d.CreatedAt.Local().Format("2006-01-02 15:04"), d.SourceURL)
	}
	return nil
}
