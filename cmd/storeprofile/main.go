package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/storeprofile"
	"github.com/fwojciec/storeprofile/crawl"
	"github.com/fwojciec/storeprofile/extract"
	"github.com/fwojciec/storeprofile/fs"
	"github.com/fwojciec/storeprofile/goquery"
	"github.com/fwojciec/storeprofile/htmltomarkdown"
	sphttp "github.com/fwojciec/storeprofile/http"
	spslog "github.com/fwojciec/storeprofile/slog"
	"github.com/fwojciec/storeprofile/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Extractor replaces the network extraction pipeline when set, for
	// end-to-end testing.
	Extractor storeprofile.ProfileExtractor
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("storeprofile"),
		kong.Description("Extract public business profiles of online storefronts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'storeprofile --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cli.DB != "" {
		cfg.DB = cli.DB
	}
	if cmd == "extract" && cli.Extract.Timeout > 0 {
		cfg.Timeout = cli.Extract.Timeout
	}
	if cmd == "serve" && cli.Serve.Addr != "" {
		cfg.Server.Addr = cli.Serve.Addr
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	needsStorage := cmd == "list" || cmd == "show" || cmd == "delete" ||
		(cmd == "extract" && cli.Extract.Save) ||
		(cmd == "serve" && cli.Serve.Save)
	if needsStorage {
		if err := m.openDB(cfg.DB); err != nil {
			fmt.Fprintln(stderr, "Hint: Set STOREPROFILE_DB or --db to use a different database path")
			return err
		}
		defer m.Close()
		deps.Profiles = sqlite.NewProfileService(m.DB)
	}

	if cmd == "extract" || cmd == "serve" {
		deps.Extractor = m.Extractor
		if deps.Extractor == nil {
			deps.Extractor = newExtractor(cfg, deps.Logger)
		}
	}
	deps.Converter = htmltomarkdown.NewConverter()
	if cmd == "extract" && cli.Extract.Out != "" {
		out := filepath.Clean(cli.Extract.Out)
		deps.Exporter = fs.NewExporter(filepath.Dir(out), filepath.Base(out), deps.Converter)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newExtractor wires the network extraction pipeline with logging
// decorators around each collaborator.
func newExtractor(cfg *Config, logger *slog.Logger) storeprofile.ProfileExtractor {
	var fetcher storeprofile.Fetcher = sphttp.NewFetcher(
		sphttp.WithTimeout(cfg.Timeout),
		sphttp.WithUserAgent(cfg.UserAgent),
	)
	if cfg.DomainRPS > 0 {
		fetcher = crawl.NewRateLimitedFetcher(fetcher, crawl.NewDomainLimiter(cfg.DomainRPS))
	}
	fetcher = spslog.NewLoggingFetcher(fetcher, logger)

	return spslog.NewLoggingExtractor(&extract.Extractor{
		Fetcher:  fetcher,
		Catalog:  spslog.NewLoggingCatalogService(sphttp.NewCatalogService(fetcher), logger),
		Analyzer: spslog.NewLoggingPageAnalyzer(goquery.NewAnalyzer(), logger),
		Logger:   logger,
	}, logger)
}
