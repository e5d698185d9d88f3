// Package ingest runs store-hours text through the parser and into a repository.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/storehours/internal/config"
	"github.com/javiermolinar/storehours/internal/hours"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Options controls how a batch is parsed.
type Options struct {
	Workers int
	OnError string // config.OnErrorSkip, OnErrorAbort or OnErrorPartial
	Logger  zerolog.Logger
}

// Result is the outcome of parsing a batch.
type Result struct {
	Records []hours.Record
	Lines   int     // non-blank lines read
	Skipped int     // lines that produced no records because of an error
	Errors  []error // every line or clause error, in input order
}

// Err combines the collected errors, or returns nil.
func (r *Result) Err() error {
	return multierr.Combine(r.Errors...)
}

type lineResult struct {
	records []hours.Record
	errs    []error
}

// Parse reads one store per line from r and parses the lines concurrently.
// Records come back in input order. With OnErrorAbort the first bad line fails
// the whole batch; otherwise bad lines or clauses are logged and collected.
func Parse(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	lenient := opts.OnError == config.OnErrorPartial
	abort := opts.OnError == config.OnErrorAbort

	results := make([]lineResult, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, ln := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if lenient {
				recs, errs := hours.ParseLineLenient(ln.text)
				results[i] = lineResult{records: recs, errs: errs}
				return nil
			}
			recs, err := hours.ParseLine(ln.text)
			if err != nil {
				if abort {
					return fmt.Errorf("line %d: %w", ln.number, err)
				}
				results[i] = lineResult{errs: []error{err}}
				return nil
			}
			results[i] = lineResult{records: recs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Lines: len(lines)}
	for i, lr := range results {
		for _, e := range lr.errs {
			logLineError(opts.Logger, lines[i].number, e)
		}
		res.Errors = append(res.Errors, lr.errs...)
		if len(lr.errs) > 0 && len(lr.records) == 0 {
			res.Skipped++
		}
		res.Records = append(res.Records, lr.records...)
	}

	opts.Logger.Debug().
		Int("lines", res.Lines).
		Int("records", len(res.Records)).
		Int("skipped", res.Skipped).
		Int("errors", len(res.Errors)).
		Msg("parsed batch")

	return res, nil
}

type numberedLine struct {
	number int // 1-based line number in the input
	text   string
}

func readLines(r io.Reader) ([]numberedLine, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []numberedLine
	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, numberedLine{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func logLineError(logger zerolog.Logger, number int, err error) {
	ev := logger.Warn().Int("line", number).Err(err)
	var lineErr *hours.LineError
	if errors.As(err, &lineErr) && lineErr.Clause != "" {
		ev = ev.Str("clause", lineErr.Clause)
	}
	ev.Msg("skipping malformed schedule")
}
