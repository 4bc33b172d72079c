package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wxr_validator/internal/config"
	"wxr_validator/internal/extract"
	"wxr_validator/internal/models"
	"wxr_validator/internal/probe"
	"wxr_validator/internal/report"
	"wxr_validator/internal/wxr"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type ValidatorApp struct {
	config  *config.ValidatorConfig
	fs      afero.Fs
	sink    report.Sink
	log     zerolog.Logger
	prober  probe.Prober
	agg     *report.Aggregator
	checker *Checker
}

type Option func(*ValidatorApp)

func WithFs(fs afero.Fs) Option {
	return func(a *ValidatorApp) { a.fs = fs }
}

func WithSink(sink report.Sink) Option {
	return func(a *ValidatorApp) { a.sink = sink }
}

func WithLogger(log zerolog.Logger) Option {
	return func(a *ValidatorApp) { a.log = log }
}

func WithProber(p probe.Prober) Option {
	return func(a *ValidatorApp) { a.prober = p }
}

func NewValidatorApp(cfg *config.ValidatorConfig, opts ...Option) (*ValidatorApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &ValidatorApp{
		config: cfg,
		fs:     afero.NewOsFs(),
		log:    zerolog.Nop(),
		agg:    report.NewAggregator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sink == nil {
		a.sink = report.NewTextSink(os.Stdout, os.Stderr)
	}
	if a.prober == nil {
		a.prober = newProber(cfg)
	}
	a.checker = NewChecker(a.prober, cfg.Logic.Delay(), a.agg, a.sink, a.log)
	return a, nil
}

func newProber(cfg *config.ValidatorConfig) probe.Prober {
	opts := probe.Options{
		UserAgent: cfg.Logic.UserAgent,
		Timeout:   cfg.Logic.Timeout(),
		MaxHops:   cfg.Logic.MaxRedirects,
	}
	if cfg.Probe.Engine == config.EngineColly {
		return probe.NewCollyProber(opts)
	}
	return probe.NewHTTPProber(opts)
}

// Aggregator exposes the run counters, mostly for callers that want to
// inspect them after Run.
func (a *ValidatorApp) Aggregator() *report.Aggregator {
	return a.agg
}

// Run validates every export in the configured directory and prints the
// summary. Unless fail-fast is set, a file that cannot be parsed is reported
// and skipped; with fail-fast the parse error ends the run.
func (a *ValidatorApp) Run(ctx context.Context) error {
	files, err := Discover(a.fs, a.config.Dir)
	if err != nil {
		return err
	}
	a.log.Info().Str("dir", a.config.Dir).Int("files", len(files)).Msg("starting validation")

	for _, file := range files {
		if err := a.processFile(ctx, file); err != nil {
			var perr *wxr.ParseError
			if !errors.As(err, &perr) || a.config.Logic.FailFast {
				return err
			}
			a.log.Warn().Str("file", file).Err(perr.Err).Msg("skipping unparsable file")
			a.agg.RecordParseFailure(file)
			a.sink.Warning("%s", perr.Error())
		}
	}

	a.agg.Report(a.sink)
	return nil
}

func (a *ValidatorApp) processFile(ctx context.Context, file string) error {
	start := time.Now()
	a.agg.RecordFilesProcessed()
	a.agg.Touch(file)
	a.sink.Line("Currently parsing `%s`", file)

	raw, err := afero.ReadFile(a.fs, file)
	if err != nil {
		return &wxr.ParseError{File: file, Err: err}
	}
	data, err := wxr.ParseBytes(file, raw)
	if err != nil {
		return err
	}

	attachments := extract.Attachments(data.Posts)
	if hasAttachmentPosts(data.Posts) {
		a.agg.RecordFound(file, attachments.Len())
		a.sink.Line("Found %d jpg, jpeg, gif, and png attachments in %s", attachments.Len(), file)
		a.checker.Check(ctx, file, attachments, true)
	}

	refs := a.references(raw, data.Posts)
	if len(refs) > 0 {
		inline := extract.Collect(refs, attachments, data.BaseURL, extract.ScanOptions{
			ProbeOriginal: a.config.Scan.ProbeOriginal,
		})
		a.agg.RecordFound(file, inline.Len())
		a.sink.Line("Found %d additional image references in %s", inline.Len(), file)
		a.checker.Check(ctx, file, inline, false)
	}

	c := a.agg.File(file)
	a.log.Info().
		Str("file", file).
		Int("found", c.Found).
		Int("success", c.Success).
		Int("errors", c.Error).
		Dur("elapsed", time.Since(start)).
		Msg("file processed")
	return nil
}

func (a *ValidatorApp) references(raw []byte, posts []models.PostRecord) []string {
	if a.config.Scan.Mode == config.ScanModeMarkup {
		return extract.MarkupReferences(posts)
	}
	return extract.MatchReferences(raw)
}

func hasAttachmentPosts(posts []models.PostRecord) bool {
	for _, post := range posts {
		if post.PostType == models.PostTypeAttachment {
			return true
		}
	}
	return false
}

// Discover lists the *.xml files directly inside dir, sorted by name.
func Discover(fs afero.Fs, dir string) ([]string, error) {
	ok, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := afero.Glob(fs, filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if isDir, err := afero.IsDir(fs, m); err == nil && isDir {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}
