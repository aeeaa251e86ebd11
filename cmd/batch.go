package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jd-develop/geodesie-de-bureau/internal/model"
	"github.com/jd-develop/geodesie-de-bureau/internal/reconcile"
	"github.com/jd-develop/geodesie-de-bureau/internal/render"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch [matricule...]",
	Short: "Look up several benchmarks without prompting",
	Long:  "Looks up every given benchmark concurrently. Ambiguous names fail instead of prompting. Records print in input order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queries := args
		if batchFile != "" {
			fromFile, err := readQueries(batchFile)
			if err != nil {
				return err
			}
			queries = append(queries, fromFile...)
		}
		if len(queries) == 0 {
			return eris.New("batch: no benchmark given")
		}

		opts, err := displayOptions(cmd)
		if err != nil {
			return err
		}

		env, err := initLookup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		results := processBatch(ctx, queries, cfg.Batch.MaxConcurrent, env.Service.Lookup)
		return printBatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, opts)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "read benchmark names from a file, one per line (- for stdin)")
	rootCmd.AddCommand(batchCmd)
}

// lookupFunc is the callback signature for looking up one benchmark.
type lookupFunc func(ctx context.Context, query string, chooser reconcile.Chooser) (model.Benchmark, error)

type batchResult struct {
	Query     string
	Benchmark model.Benchmark
	Err       error
}

// processBatch looks up queries concurrently and returns one result per
// query, in input order. Individual failures never abort the batch.
func processBatch(ctx context.Context, queries []string, concurrency int, lookup lookupFunc) []batchResult {
	zap.L().Info("processing batch",
		zap.Int("queries", len(queries)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]batchResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, q := range queries {
		g.Go(func() error {
			b, err := lookup(gctx, q, reconcile.Refuse)
			results[i] = batchResult{Query: q, Benchmark: b, Err: err}
			if err != nil {
				failed.Add(1)
				zap.L().Warn("lookup failed", zap.String("query", q), zap.Error(err))
				return nil // don't abort batch on individual failure
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return results
}

// printBatch writes every successful record to w and every failure to errW.
// It returns an error when any lookup failed.
func printBatch(w, errW io.Writer, results []batchResult, opts display) error {
	var failed []string
	printed := 0
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", r.Query, r.Err))
			continue
		}
		out, err := render.Record(r.Benchmark, opts.format, opts.style)
		if err != nil {
			return err
		}
		if printed > 0 {
			switch opts.format {
			case render.FormatText:
				fmt.Fprintln(w)
			case render.FormatYAML:
				fmt.Fprintln(w, "---")
			}
		}
		fmt.Fprint(w, out)
		printed++
	}

	if len(failed) == 0 {
		return nil
	}
	for _, f := range failed {
		fmt.Fprintln(errW, "failed:", f)
	}
	return eris.Errorf("batch: %d of %d lookups failed", len(failed), len(results))
}

// readQueries reads one benchmark name per line, skipping blank lines and
// lines starting with #.
func readQueries(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "batch: open file")
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return scanQueries(r)
}

func scanQueries(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "batch: read file")
	}
	return out, nil
}
