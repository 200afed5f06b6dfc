package main

import (
	"fmt"

	"github.com/nao1215/philowalk/internal/crawler"
	"github.com/nao1215/philowalk/internal/log"
	"github.com/nao1215/philowalk/internal/model"
	"github.com/nao1215/philowalk/internal/wiki"
	"github.com/spf13/cobra"
)

// NewLinksCmd creates the links command.
func NewLinksCmd(newFetcher fetcherFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links URL",
		Short: "List the links of an article that a walk would consider",
		Long: `Links fetches one article and prints, in order, every link a walk would
consider descending into. The first line is the link a walk follows first.

Examples:
  # Show the candidate links of Cat
  philowalk links https://en.wikipedia.org/wiki/Cat

  # Show only the first three
  philowalk links -n 3 https://en.wikipedia.org/wiki/Cat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinksCmd(cmd, args, newFetcher)
		},
	}

	cmd.Flags().IntP("limit", "n", 0, "Print at most this many links (0 means all)")

	return cmd
}

// runLinksCmd executes the links command.
func runLinksCmd(cmd *cobra.Command, args []string, newFetcher fetcherFactory) error {
	out := cmd.OutOrStdout()

	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if err := wiki.ValidateStartURL(cfg.StartURL); err != nil {
		fmt.Fprintf(out, "%v: %s\n", err, cfg.StartURL)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	src := crawler.NewLinkSource(newFetcher(cfg, logger), model.ArticleURL(cfg.StartURL), cfg.Origin)

	links, err := src.Links(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read links of %s: %w", cfg.StartURL, err)
	}
	logger.Debug("links extracted", "url", cfg.StartURL, "count", len(links))

	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}
	for _, l := range links {
		fmt.Fprintln(out, l)
	}
	return nil
}
