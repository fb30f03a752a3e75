package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/crawl"
	"github.com/fwojciec/contactcrawl/fs"
	"github.com/fwojciec/contactcrawl/goquery"
	cchttp "github.com/fwojciec/contactcrawl/http"
	ccslog "github.com/fwojciec/contactcrawl/slog"
	"github.com/fwojciec/contactcrawl/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Directory for result files and progress snapshots.
	ResultsDir string

	// Directory for the job queue.
	QueueDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// ResultService for end-to-end testing.
	ResultService contactcrawl.ResultService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ResultsDir: envOr("CONTACTCRAWL_RESULTS", "results"),
		QueueDir:   envOr("CONTACTCRAWL_QUEUE", "queue"),
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
	cfg := contactcrawl.DefaultConfig()
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("contactcrawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'contactcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The convert command runs without storage or network wiring.
	if cmd == "convert" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CONTACTCRAWL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ResultService = sqlite.NewResultService(m.DB)
	deps.DB = m.DB
	deps.Results = m.ResultService
	deps.Queue = fs.NewQueue(m.QueueDir)
	deps.Writer = fs.NewResultWriter(m.ResultsDir)

	if cmd == "crawl" || cmd == "worker" {
		fetcher := ccslog.NewLoggingFetcher(cchttp.NewFetcher(cfg), logger)
		snapshots := ccslog.NewLoggingSnapshotSink(fs.NewSnapshotSink(m.ResultsDir), logger)

		crawler := &crawl.Crawler{
			Fetcher: fetcher,
			Emails: func(siteURL string) contactcrawl.EmailExtractor {
				return goquery.NewEmailExtractor(siteURL, cfg)
			},
			Social: goquery.NewSocialExtractor(cfg),
			Links:  goquery.NewLinkDiscoverer(cfg),
			Config: cfg,
			Logger: logger,
		}

		deps.Scheduler = &crawl.Scheduler{
			Crawler:   crawler,
			Snapshots: snapshots,
			GroupSize: cli.Crawl.Group,
			Logger:    logger,
		}
	}

	return kongCtx.Run(deps)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDBPath() string {
	if path := os.Getenv("CONTACTCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "contactcrawl.db"
	}
	dir := filepath.Join(home, ".contactcrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "contactcrawl.db")
}
