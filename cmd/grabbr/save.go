package main

import (
	"fmt"

	"github.com/fwojciec/grabbr"
)

// Run executes the save command.
func (c *SaveCmd) Run(deps *Dependencies) error {
	mode, opts, err := c.resolve(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}
	opts.Format = grabbr.FormatJSON

	if !c.Force {
		_, err := deps.Decks.FindDeckByName(deps.Ctx, c.Name)
		if err == nil {
			fmt.Fprintf(deps.Stderr, "error: deck %q already exists. Use --force to replace it.\n", c.Name)
			return grabbr.Errorf(grabbr.ECONFLICT, "deck %q already exists", c.Name)
		}
		if grabbr.ErrorCode(err) != grabbr.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
			return err
		}
	}

	doc, err := deps.Source.Open(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not open %s: %v\n", c.URL, err)
		return err
	}
	defer grabbr.ReleaseDocument(doc)

	res, err := deps.Extractor.Extract(deps.Ctx, doc, mode, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}
	if len(res.Items) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no study content found on %s\n", c.URL)
		return grabbr.Errorf(grabbr.EINVALID, "no study content found")
	}

	if c.Force {
		if err := deps.Decks.DeleteDeck(deps.Ctx, c.Name); err != nil && grabbr.ErrorCode(err) != grabbr.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
			return err
		}
	}

	deck := &grabbr.Deck{
		Name:      c.Name,
		SourceURL: c.URL,
		Mode:      mode,
		Items:     res.Items,
	}
	if err := deps.Decks.CreateDeck(deps.Ctx, deck); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved deck %q (%d items)\n", deck.Name, len(deck.Items))
	return nil
}
