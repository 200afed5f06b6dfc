package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nao1215/philowalk/internal/config"
	"github.com/nao1215/philowalk/internal/crawler"
	"github.com/nao1215/philowalk/internal/log"
	"github.com/nao1215/philowalk/internal/model"
	"github.com/nao1215/philowalk/internal/report"
	"github.com/nao1215/philowalk/internal/walker"
	"github.com/nao1215/philowalk/internal/wiki"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// fetcherFactory builds the PageFetcher a command walks with.
type fetcherFactory func(cfg *config.Config, logger *slog.Logger) crawler.PageFetcher

// newHTTPFetcher is the production fetcherFactory.
func newHTTPFetcher(cfg *config.Config, logger *slog.Logger) crawler.PageFetcher {
	return crawler.NewHTTPFetcher(
		&http.Client{Timeout: cfg.Timeout},
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithHeaders(cfg.Headers),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithRetries(cfg.Retries, cfg.RetryWait),
		crawler.WithFetcherLogger(logger),
	)
}

// runWalkCmd executes the root command.
func runWalkCmd(cmd *cobra.Command, args []string, newFetcher fetcherFactory) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprint(out, cmd.UsageString())
		return nil
	}

	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, wiki.ErrInvalidStartURL) {
			fmt.Fprintf(out, "%v: %s\n", err, cfg.StartURL)
			return nil
		}
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	// Visited URLs are streamed only when they cannot corrupt a structured
	// report on stdout.
	opts := []walker.Option{
		walker.WithMaxHops(cfg.MaxHops),
		walker.WithOrigin(cfg.Origin),
		walker.WithDelay(cfg.Delay),
		walker.WithLogger(logger),
	}
	if cfg.Format == config.FormatText || cfg.ReportFile != "" {
		opts = append(opts, walker.WithVisitFunc(func(u model.ArticleURL, _ int) {
			fmt.Fprintln(out, u)
		}))
	}

	w := walker.New(newFetcher(cfg, logger), opts...)
	result, err := w.Walk(cmd.Context(), model.ArticleURL(cfg.StartURL))
	if err != nil {
		if result != nil {
			logger.Warn("walk stopped early",
				"start", cfg.StartURL,
				"hops", result.Hops,
				"visited", len(result.Visited),
			)
		}
		return fmt.Errorf("walk from %s failed: %w", cfg.StartURL, err)
	}

	logger.Debug("walk finished",
		"outcome", result.Outcome,
		"hops", result.Hops,
		"visited", len(result.Visited),
		"duration", result.Duration(),
	)

	return outputReport(cfg, result, out)
}

// outputReport writes the report in the configured format. With a report
// file, the file gets the report and out still gets the text summary.
func outputReport(cfg *config.Config, result *model.WalkResult, out io.Writer) error {
	terminal := report.Writer(report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)))

	var writer report.Writer
	switch {
	case cfg.ReportFile != "":
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		fileWriter, err := report.New(cfg.Format, f)
		if err != nil {
			return err
		}
		writer = report.NewMultiWriter(fileWriter, terminal)
	case cfg.Format == config.FormatText:
		writer = terminal
	default:
		w, err := report.New(cfg.Format, out)
		if err != nil {
			return err
		}
		writer = w
	}

	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// buildConfig creates a Config for startURL. Values come from the defaults,
// then the config file, then any flag given explicitly on the command line.
func buildConfig(cmd *cobra.Command, startURL string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.StartURL = startURL
	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested file must exist; otherwise a missing file just
	// means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyFlags(flags, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line. Flags a
// command does not define are ignored.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	var err error
	if changed("max-hops") {
		if cfg.MaxHops, err = flags.GetInt("max-hops"); err != nil {
			return err
		}
	}
	if changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if changed("retries") {
		if cfg.Retries, err = flags.GetInt("retries"); err != nil {
			return err
		}
	}
	if changed("delay") {
		if cfg.Delay, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}
	if changed("origin") {
		if cfg.Origin, err = flags.GetString("origin"); err != nil {
			return err
		}
	}
	if changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return err
		}
	}
	if changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if changed("header") {
		headers, err := flags.GetStringToString("header")
		if err != nil {
			return err
		}
		for k, v := range headers {
			cfg.Headers[k] = v
		}
	}
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
