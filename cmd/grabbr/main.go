package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/extract"
	"github.com/fwojciec/grabbr/goquery"
	grabbrhttp "github.com/fwojciec/grabbr/http"
	"github.com/fwojciec/grabbr/rod"
	grabbrslog "github.com/fwojciec/grabbr/slog"
	"github.com/fwojciec/grabbr/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Empty means $GRABBR_DB, the configured path, then
	// ~/.grabbr/grabbr.db.
	DBPath string

	// Config file path. Overridden by --config.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set they replace the real
	// page source and fetcher.
	Source  grabbr.DocumentSource
	Fetcher grabbr.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("grabbr"),
		kong.Description("Extract questions, answers and study notes from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'grabbr --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set GRABBR_CONFIG to use a different config file\n")
		return err
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Extractor = grabbrslog.NewLoggingExtractor(&extract.Extractor{SettleDelay: cfg.SettleDelay}, deps.Logger)

	// Open the deck library only for commands that use it.
	switch cmd {
	case "save", "decks", "show", "delete", "serve":
		if m.DBPath == "" {
			m.DBPath = dbPath(cfg.Database)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set GRABBR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Decks = grabbrslog.NewLoggingDeckService(sqlite.NewDeckService(m.DB), deps.Logger)
	}

	// Wire page loading for commands that open pages.
	needSource := false
	switch cmd {
	case "extract":
		needSource = isURL(cli.Extract.Target)
	case "batch", "save", "serve":
		needSource = true
	}
	if needSource {
		closeFn, err := m.wireSource(deps, cli.Browser || cfg.Browser)
		if err != nil {
			return err
		}
		defer closeFn()
	}

	return kongCtx.Run(deps)
}

// wireSource sets the page source and fetcher on deps. With browser set,
// pages are rendered in headless Chrome; otherwise they are fetched over
// HTTP and laid out statically.
func (m *Main) wireSource(deps *Dependencies, browser bool) (func(), error) {
	cfg := deps.Config

	if m.Source != nil {
		deps.Source = grabbrslog.NewLoggingSource(m.Source, deps.Logger)
		if m.Fetcher != nil {
			deps.Fetcher = grabbrslog.NewLoggingFetcher(m.Fetcher, deps.Logger)
		}
		return func() {}, nil
	}

	if browser {
		manager, err := rod.NewBrowserManager()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed to use --browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Source = grabbrslog.NewLoggingSource(rod.NewSource(manager, rod.WithLoadTimeout(cfg.Timeout)), deps.Logger)
		deps.Fetcher = grabbrslog.NewLoggingFetcher(rod.NewFetcher(manager), deps.Logger)
		return func() { _ = deps.Source.Close() }, nil
	}

	fetcher := grabbrslog.NewLoggingFetcher(grabbrhttp.NewFetcher(grabbrhttp.WithTimeout(cfg.Timeout)), deps.Logger)
	deps.Fetcher = fetcher
	deps.Source = grabbrslog.NewLoggingSource(goquery.NewSource(fetcher), deps.Logger)
	return func() { _ = deps.Source.Close() }, nil
}
