package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/philowalk/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for philowalk.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newHTTPFetcher)
}

// newRootCmd builds the command tree around the given fetcher factory.
func newRootCmd(newFetcher fetcherFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "philowalk [flags] STARTING_URL",
		Short: "Follow Wikipedia links until you get to Philosophy",
		Long: `philowalk starts at an English Wikipedia article and follows the first
usable link of its body, backtracking out of articles it has already seen,
until it reaches an article whose URL contains "Philosophy".

Only the plain paragraphs of the article body are read, so tables and
infoboxes never contribute links. Within a paragraph the first parenthetical
aside is dropped, and links to Help:, File: and Wikipedia: pages, uploaded
media and Wiktionary are skipped. Every other link is a candidate.

Each article entered is printed as it is visited, followed by the outcome.

Examples:
  # Walk from Cat with the default limit of 256 hops
  philowalk https://en.wikipedia.org/wiki/Cat

  # Give up after 20 hops
  philowalk -m 20 https://en.wikipedia.org/wiki/Cat

  # Write a Markdown report of the walk
  philowalk -f markdown -o cat.md https://en.wikipedia.org/wiki/Cat`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalkCmd(cmd, args, newFetcher)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .philowalk in current or home directory)")

	// Fetch flags, shared with the links command
	cmd.PersistentFlags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each article request")
	cmd.PersistentFlags().IntP("retries", "r", config.DefaultRetries,
		"Retries for rate-limited or failed (5xx) requests")
	cmd.PersistentFlags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent to Wikipedia")
	cmd.PersistentFlags().StringToStringP("header", "H", nil,
		"Extra request header as key=value (repeatable)")
	cmd.PersistentFlags().String("origin", config.NewConfig().Origin,
		"Origin used to resolve site-relative links")

	// Walk flags
	cmd.Flags().IntP("max-hops", "m", config.DefaultMaxHops,
		"Give up after this many hops")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Wait this long before descending into each article")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Report format: text, json or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")

	cmd.AddCommand(NewLinksCmd(newFetcher))
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. An interrupt cancels the walk in progress.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
