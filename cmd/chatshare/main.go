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
	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/bloom"
	"github.com/fwojciec/chatshare/fs"
	"github.com/fwojciec/chatshare/goquery"
	"github.com/fwojciec/chatshare/htmltomarkdown"
	chathttp "github.com/fwojciec/chatshare/http"
	"github.com/fwojciec/chatshare/rod"
	"github.com/fwojciec/chatshare/share"
	chatslog "github.com/fwojciec/chatshare/slog"
	"github.com/fwojciec/chatshare/sqlite"
	"github.com/fwojciec/chatshare/stream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// Configuration files read before flags are resolved. Missing files
	// are ignored.
	ConfigPaths []string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Conversations chatshare.ConversationService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		ConfigPaths: []string{defaultConfigPath},
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatshare"),
		kong.Description("Extract conversations from shared chat links"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAMLConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'chatshare --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database only for commands that read or write the archive
	if needsArchive(cmd, cli) {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CHATSHARE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.Conversations = chatslog.NewLoggingConversationService(sqlite.NewConversationService(m.DB), deps.Logger)
		deps.Conversations = m.Conversations
	}

	switch cmd {
	case "fetch":
		svc, closeFetchers := m.fetchService(cli.Fetch, deps.Logger)
		defer closeFetchers()
		deps.Shares = svc
		deps.Exports = fs.NewWriter(cli.Fetch.Output)
	case "parse":
		deps.Shares = m.parseService(cli.Parse.ExportFlags, deps.Logger)
		deps.Exports = fs.NewWriter(cli.Parse.Output)
	}

	return kongCtx.Run(deps)
}

// needsArchive reports whether cmd touches the conversation database.
func needsArchive(cmd string, cli *CLI) bool {
	switch cmd {
	case "list", "show", "delete":
		return true
	case "fetch":
		return cli.Fetch.Archive
	case "parse":
		return cli.Parse.Archive
	}
	return false
}

// newChainParser returns the extraction chain: structured message nodes
// first, then the streamed payload.
func newChainParser(logger *slog.Logger) *chatshare.ChainParser {
	return chatshare.NewChainParser(
		chatslog.NewLoggingStrategy(goquery.NewParser(htmltomarkdown.NewConverter()), logger),
		chatslog.NewLoggingStrategy(stream.NewParser(), logger),
	)
}

func (m *Main) parseService(flags ExportFlags, logger *slog.Logger) *share.Service {
	return &share.Service{
		Parser:    newChainParser(logger),
		Extractor: extractorFor(flags.Extractor),
		Logger:    logger,
	}
}

// fetchService wires the fetch pipeline. The plain HTTP fetcher is primary
// unless --browser is set; the browser is otherwise kept as a fallback and
// only launched when a page needs it.
func (m *Main) fetchService(c FetchCmd, logger *slog.Logger) (*share.Service, func()) {
	svc := m.parseService(c.ExportFlags, logger)
	svc.Validate = chatshare.ValidateShareURL
	svc.Limiter = share.NewDomainLimiter(c.RateLimit)
	svc.Seen = bloom.NewURLSet(len(c.URLs))
	svc.Concurrency = c.Concurrency

	browser := newLazyBrowser(
		rod.WithFetchTimeout(c.Timeout+rod.DefaultSelectorTimeout+rod.DefaultHydrationDelay),
		rod.WithNavigationTimeout(c.Timeout),
	)
	browserFetcher := chatslog.NewLoggingFetcher(browser, logger)

	if c.Browser {
		svc.Fetcher = browserFetcher
	} else {
		svc.Fetcher = chatslog.NewLoggingFetcher(chathttp.NewFetcher(chathttp.WithTimeout(c.Timeout)), logger)
		if !c.NoFallback {
			svc.Browser = browserFetcher
		}
	}

	return svc, func() { _ = browser.Close() }
}

const defaultConfigPath = "~/.chatshare/config.yaml"

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "chatshare.db"
	}
	dir := filepath.Join(home, ".chatshare")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "chatshare.db")
}
