package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/lucrnz/shorthand/internal/cleanup"
	"github.com/lucrnz/shorthand/internal/config"
	"github.com/lucrnz/shorthand/internal/input"
	"github.com/lucrnz/shorthand/internal/logging"
	"github.com/lucrnz/shorthand/internal/progress"
	"github.com/lucrnz/shorthand/internal/report"
	"github.com/lucrnz/shorthand/internal/shorthand"
	"github.com/lucrnz/shorthand/internal/util"
	"github.com/lucrnz/shorthand/internal/version"
)

type options struct {
	inputPath        string
	output           string
	format           string
	lenient          bool
	sum              bool
	quiet            bool
	max              time.Duration
	maxBytesStr      string
	progressInterval string
	configPath       string
	logLevel         string
	logFormat        string
}

// NewRootCommand builds the shorthand command. Temporary output files are
// registered with tracker so an interrupted run leaves nothing behind.
func NewRootCommand(tracker *cleanup.Tracker) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "shorthand [flags] [TEXT...]",
		Short: "Convert shorthand durations such as \"1w 1d\" or \"2.5m\"",
		Long: `shorthand

Converts compact duration text into exact elapsed times. Each expression is a
sequence of <number><unit> tokens, optionally separated by spaces, where the
unit is one of w (week), d (day), h (hour), m (minute) or s (second).

  shorthand 3h "1w 1d" 2.5m
  shorthand --sum --format seconds 1h 30m
  shorthand --input durations.txt.zst --format json

Expressions come from the TEXT arguments, or one per line from --input
(gzip, zstd and xz files are decompressed automatically). Without either,
they are read from stdin.
`,
		Version: version.Long(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, tracker, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputPath, "input", "i", "", "Read one expression per line from this file (\"-\" for stdin)")
	flags.StringVarP(&opts.output, "output", "O", "-", "Write results to this file instead of stdout")
	flags.StringVarP(&opts.format, "format", "f", "text", "Output format: text, seconds or json")
	flags.BoolVarP(&opts.lenient, "lenient", "l", false, "Treat invalid expressions as zero instead of failing")
	flags.BoolVarP(&opts.sum, "sum", "s", false, "Print only the total of all expressions")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not log progress")
	shorthand.DurationVarP(flags, &opts.max, "max", "", 0, "Reject results longer than this shorthand duration (0 = unlimited)")
	flags.StringVarP(&opts.maxBytesStr, "max-bytes", "M", "64MiB", "Maximum decompressed input size (e.g., \"64MiB\", \"1GB\")")
	flags.StringVar(&opts.progressInterval, "progress-interval", "2s", "Interval between progress logs (e.g., \"500ms\", \"10s\")")
	flags.StringVar(&opts.configPath, "config", "", "YAML file with default settings (default $"+config.EnvPath+")")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	// SilenceErrors is true so main controls how errors are printed
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Show usage only when there's a flag parsing error
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	return cmd
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context, tracker *cleanup.Tracker) error {
	return NewRootCommand(tracker).ExecuteContext(ctx)
}

func run(cmd *cobra.Command, tracker *cleanup.Tracker, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd.Flags(), cfg, opts)

	logger, err := logging.New(logging.Options{
		Level:  opts.logLevel,
		Format: opts.logFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("invalid logging flags: %w", err)
	}
	cleanup.SetLogger(logger)
	ctx := logging.WithContext(cmd.Context(), logger)
	if cfg.Path() != "" {
		logger.Debug("config_loaded", "path", cfg.Path())
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	maxBytes, err := util.ParseByteSize(opts.maxBytesStr)
	if err != nil {
		return fmt.Errorf("invalid --max-bytes value: %w", err)
	}
	interval, err := util.ParseDuration(opts.progressInterval)
	if err != nil {
		return fmt.Errorf("invalid --progress-interval value: %w", err)
	}

	if len(args) > 0 && opts.inputPath != "" {
		return fmt.Errorf("TEXT arguments cannot be combined with --input")
	}
	if len(args) == 0 && opts.inputPath == "" {
		if isTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("no input: pass TEXT arguments, --input or pipe expressions on stdin")
		}
		opts.inputPath = "-"
	}

	out, commit, err := openOutput(cmd, tracker, opts.output)
	if err != nil {
		return err
	}

	p := &processor{
		lenient: opts.lenient,
		max:     opts.max,
		sum:     opts.sum,
		w:       report.NewWriter(out, format),
		logger:  logger,
	}

	if len(args) > 0 {
		for _, arg := range args {
			if err := p.handle(0, arg); err != nil {
				return err
			}
		}
	} else {
		inOpts := input.Options{MaxBytes: maxBytes, Stdin: cmd.InOrStdin()}
		if err := processInput(ctx, p, opts.inputPath, inOpts, interval, opts.quiet); err != nil {
			return err
		}
	}

	if err := p.finish(); err != nil {
		return err
	}
	if err := commit(); err != nil {
		return err
	}
	return p.err()
}

func applyConfig(fs *pflag.FlagSet, cfg *config.Config, opts *options) {
	if cfg.Format != "" && !fs.Changed("format") {
		opts.format = cfg.Format
	}
	if cfg.Lenient != nil && !fs.Changed("lenient") {
		opts.lenient = *cfg.Lenient
	}
	if cfg.Sum != nil && !fs.Changed("sum") {
		opts.sum = *cfg.Sum
	}
	if cfg.Max != nil && !fs.Changed("max") {
		opts.max = cfg.Max.Std()
	}
	if cfg.MaxBytes != "" && !fs.Changed("max-bytes") {
		opts.maxBytesStr = cfg.MaxBytes
	}
	if cfg.ProgressInterval != "" && !fs.Changed("progress-interval") {
		opts.progressInterval = cfg.ProgressInterval
	}
	if cfg.Log.Level != "" && !fs.Changed("log-level") {
		opts.logLevel = cfg.Log.Level
	}
	if cfg.Log.Format != "" && !fs.Changed("log-format") {
		opts.logFormat = cfg.Log.Format
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openOutput returns the writer for results and a function that moves a
// file output into place once everything has been written.
func openOutput(cmd *cobra.Command, tracker *cleanup.Tracker, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := tracker.CreateTemp(path)
	if err != nil {
		return nil, nil, err
	}
	commit := func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
		return tracker.Commit(f.Name(), path)
	}
	return f, commit, nil
}

func processInput(ctx context.Context, p *processor, path string, opts input.Options, interval time.Duration, quiet bool) error {
	bar := progress.New(-1, 10, interval, logging.FromContext(ctx), quiet)
	opts.OnRead = bar.Update

	src, err := input.Open(ctx, path, opts)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx = logging.With(ctx, "input", src.Name)
	logger := logging.FromContext(ctx)
	bar.SetTotal(src.Size)
	logger.Debug("input_opened", "encoding", src.Type.String(), "size", util.HumanReadableBytes(src.Size))

	bar.Start()
	defer bar.Stop()

	err = input.ScanLines(ctx, src, func(l input.Line) error {
		bar.AddLine()
		return p.handle(l.Number, l.Text)
	})
	if err != nil {
		return fmt.Errorf("error reading %s: %w", src.Name, err)
	}

	logger.Debug("input_done", "lines", bar.Lines(), "read_bytes", src.RawBytes())
	return nil
}

// processor parses expressions and feeds the results to the report writer.
type processor struct {
	lenient bool
	max     time.Duration
	sum     bool
	w       *report.Writer
	logger  *slog.Logger

	summary  report.Summary
	exceeded int
}

func (p *processor) handle(line int, text string) error {
	res := report.Result{Line: line, Input: text}

	if p.lenient {
		res.Duration = shorthand.ToDuration(text)
	} else {
		d, err := shorthand.Parse(text)
		if err != nil {
			p.summary.Failed++
			p.logger.Warn("parse_failed", "line", line, "input", text, "error", err)
			res.Err = err
			return p.write(res)
		}
		res.Duration = d
	}

	if p.max > 0 && res.Duration > p.max {
		p.exceeded++
		res.Err = fmt.Errorf("%s exceeds maximum of %s", res.Duration, p.max)
		p.logger.Warn("max_exceeded", "line", line, "input", text, "duration", res.Duration.String(), "max", p.max.String())
		res.Duration = 0
		return p.write(res)
	}

	if p.summary.Total > math.MaxInt64-res.Duration {
		return fmt.Errorf("sum of durations overflows at %q", text)
	}
	p.summary.Total += res.Duration
	p.summary.Count++
	return p.write(res)
}

func (p *processor) write(res report.Result) error {
	if p.sum {
		return nil
	}
	if err := p.w.Write(res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (p *processor) finish() error {
	if p.sum {
		if err := p.w.WriteSummary(p.summary); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (p *processor) err() error {
	var problems []string
	if p.summary.Failed > 0 {
		problems = append(problems, fmt.Sprintf("%d invalid", p.summary.Failed))
	}
	if p.exceeded > 0 {
		problems = append(problems, fmt.Sprintf("%d over --max", p.exceeded))
	}
	if len(problems) == 0 {
		return nil
	}
	total := p.summary.Count + p.summary.Failed + p.exceeded
	return fmt.Errorf("%d of %d expressions rejected (%s)", total-p.summary.Count, total, strings.Join(problems, ", "))
}
