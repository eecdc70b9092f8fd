package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"agendafeed/config"
	"agendafeed/internal/app"
	"agendafeed/internal/domain"
)

// options are the global flags shared by every command.
type options struct {
	feed     string
	dbPath   string
	clientID string
}

// runtime is what a command needs once flags are parsed.
type runtime struct {
	cfg     *config.Config
	service domain.AgendaService
	close   func() error
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "agenda",
		Short: "Browse the event agenda",
		Long: `agenda - browse the event schedule from the terminal

Reads the agenda feed (legacy or modern format), filters it by day and
access tier, and remembers your last choice between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.feed, "feed", "", "Feed file path or http(s) URL (default: FEED_URL, FEED_PATH, or the bundled snapshot)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Selection database path (default: SELECTION_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.clientID, "client", "local", "Name under which the selection is remembered")

	rootCmd.AddCommand(newListCmd(opts), newDaysCmd(opts), newFreshnessCmd(opts), newSelectionCmd(opts))
	return rootCmd
}

// open loads configuration, applies flag overrides, and builds the service.
// Postgres is never used from the CLI; selection memory is a local file.
func open(ctx context.Context, opts *options, logOut io.Writer) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = ""
	if opts.dbPath != "" {
		cfg.SelectionDBPath = opts.dbPath
	}
	if opts.feed != "" {
		cfg.FeedURL, cfg.FeedPath = "", ""
		if strings.HasPrefix(opts.feed, "http://") || strings.HasPrefix(opts.feed, "https://") {
			cfg.FeedURL = opts.feed
		} else {
			cfg.FeedPath = opts.feed
		}
	}

	repo, closeRepo, err := app.OpenSelectionRepository(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open selection database: %w", err)
	}
	logger := config.NewLoggerTo(logOut)
	svc := app.NewAgendaService(logger, cfg, app.NewFetcher(cfg), repo)
	return &runtime{cfg: cfg, service: svc, close: closeRepo}, nil
}

func withRuntime(opts *options, fn func(cmd *cobra.Command, rt *runtime) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rt, err := open(cmd.Context(), opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			_ = rt.close()
		}()
		return fn(cmd, rt)
	}
}
