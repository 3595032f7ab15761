package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/grabbr"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	Source    grabbr.DocumentSource
	Fetcher   grabbr.Fetcher
	Extractor grabbr.Extractor
	Decks     grabbr.DeckService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug output to stderr"`
	Config  string `help:"Config file path (default $GRABBR_CONFIG or ~/.grabbr/config.yaml)" type:"path"`
	Browser bool   `short:"b" help:"Render pages in headless Chrome so scripted content is visible"`

	Extract ExtractCmd `cmd:"" help:"Extract study content from a page"`
	Batch   BatchCmd   `cmd:"" help:"Extract many pages into a directory"`
	Save    SaveCmd    `cmd:"" help:"Extract a page and save it as a named deck"`
	Decks   DecksCmd   `cmd:"" help:"List saved decks"`
	Show    ShowCmd    `cmd:"" help:"Show or export a saved deck"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved deck"`
	Serve   ServeCmd   `cmd:"" help:"Serve the extraction API over HTTP"`
}

// OptionFlags are the extraction options shared by extracting commands.
type OptionFlags struct {
	Mode         string `short:"m" help:"Filtering mode: full, smart, reviewer or flashcard (default from config, else full)"`
	Dedup        bool   `help:"Remove duplicate lines"`
	Numbering    bool   `help:"Keep question numbering"`
	KeepTinyText bool   `help:"Keep text smaller than the tiny-text threshold"`
}

// resolve overlays the flags on the configured defaults.
func (f OptionFlags) resolve(cfg Config) (grabbr.Mode, grabbr.Options, error) {
	mode := cfg.Mode
	if f.Mode != "" {
		mode = grabbr.Mode(f.Mode)
	}
	if !mode.Known() {
		return "", grabbr.Options{}, grabbr.Errorf(grabbr.EINVALID, "unknown mode %q: use full, smart, reviewer or flashcard", mode)
	}

	opts := grabbr.DefaultOptions().With(cfg.Options)
	if f.Dedup {
		opts.RemoveDuplicates = true
	}
	if f.Numbering {
		opts.KeepNumbering = true
	}
	if f.KeepTinyText {
		opts.IgnoreTinyText = false
	}
	return mode, opts, nil
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Target      string `arg:"" help:"Page URL or local HTML file"`
	OptionFlags `embed:""`

	Format string `short:"f" enum:"text,preview,markdown,json,csv,moodle" default:"text" help:"Output: text, preview, markdown, json, csv or moodle"`
	Study  bool   `help:"Mark likely answers in previews"`
	Search string `short:"s" help:"Only show items containing this text"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" help:"Page URLs"`
	OptionFlags `embed:""`

	Index       string  `help:"Extract every same-site page linked from this index page"`
	Selector    string  `help:"CSS selector narrowing the links read from --index"`
	Out         string  `short:"o" default:"grabbr-export" help:"Output directory" type:"path"`
	Format      string  `short:"f" enum:"markdown,json,csv,moodle,preview" default:"json" help:"Export format"`
	Concurrency int     `short:"c" default:"4" help:"Pages extracted at once"`
	RPS         float64 `name:"rps" default:"1" help:"Page loads per second per site (0 for no limit)"`
	Burst       int     `default:"1" help:"Page loads per site allowed back to back before pacing"`
}

// SaveCmd is the "save" subcommand.
type SaveCmd struct {
	Name        string `arg:"" help:"Deck name"`
	URL         string `arg:"" help:"Page URL"`
	OptionFlags `embed:""`

	Force bool `help:"Replace an existing deck with the same name"`
}

// DecksCmd is the "decks" subcommand.
type DecksCmd struct {
	Limit  int `default:"50" help:"Maximum decks listed"`
	Offset int `help:"Decks skipped before listing"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name   string `arg:"" help:"Deck name"`
	Format string `short:"f" enum:"preview,markdown,json,csv,moodle" default:"preview" help:"Output: preview, markdown, json, csv or moodle"`
	Study  bool   `help:"Mark likely answers in previews"`
	Search string `short:"s" help:"Only show items containing this text"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Deck name"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:7420" help:"Listen address"`
}
