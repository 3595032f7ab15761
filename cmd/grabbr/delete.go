package main

import (
	"fmt"

	"github.com/fwojciec/grabbr"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return grabbr.Errorf(grabbr.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Decks.DeleteDeck(deps.Ctx, c.Name); err != nil {
		if grabbr.ErrorCode(err) == grabbr.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: deck %q not found. Use 'grabbr decks' to see saved decks.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted deck %q\n", c.Name)
	return nil
}
