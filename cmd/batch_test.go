package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jd-develop/geodesie-de-bureau/internal/model"
	"github.com/jd-develop/geodesie-de-bureau/internal/reconcile"
	"github.com/jd-develop/geodesie-de-bureau/internal/render"
	"github.com/jd-develop/geodesie-de-bureau/internal/search"
)

func TestProcessBatch_KeepsInputOrder(t *testing.T) {
	queries := []string{"A", "B", "C", "D"}
	delays := map[string]time.Duration{"A": 30 * time.Millisecond, "B": 0, "C": 10 * time.Millisecond, "D": 0}

	results := processBatch(context.Background(), queries, 4, func(ctx context.Context, q string, _ reconcile.Chooser) (model.Benchmark, error) {
		time.Sleep(delays[q])
		return model.Benchmark{Matricule: q}, nil
	})

	require.Len(t, results, 4)
	for i, q := range queries {
		assert.Equal(t, q, results[i].Query)
		assert.Equal(t, q, results[i].Benchmark.Matricule)
		assert.NoError(t, results[i].Err)
	}
}

func TestProcessBatch_RespectsConcurrency(t *testing.T) {
	var active, peak atomic.Int32
	queries := []string{"A", "B", "C", "D", "E", "F"}

	processBatch(context.Background(), queries, 2, func(ctx context.Context, q string, _ reconcile.Chooser) (model.Benchmark, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return model.Benchmark{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestProcessBatch_NeverPrompts(t *testing.T) {
	candidates := []search.Candidate{{ID: 1, Name: "A - 1"}, {ID: 2, Name: "A - 2"}}

	results := processBatch(context.Background(), []string{"A", "B"}, 2, func(ctx context.Context, q string, chooser reconcile.Chooser) (model.Benchmark, error) {
		if q == "A" {
			c, err := reconcile.Select(q, candidates, chooser)
			return model.Benchmark{Matricule: c.Name}, err
		}
		return model.Benchmark{Matricule: q}, nil
	})

	var cre *reconcile.ChoiceRequiredError
	require.True(t, errors.As(results[0].Err, &cre))
	assert.Equal(t, candidates, cre.Candidates)
	assert.NoError(t, results[1].Err)
}

func TestPrintBatch(t *testing.T) {
	results := []batchResult{
		{Query: "A", Err: errors.New("no match")},
		{Query: "B", Benchmark: model.Benchmark{Matricule: "B", CID: 2}},
		{Query: "C", Benchmark: model.Benchmark{Matricule: "C", CID: 3}},
	}

	var out, errOut bytes.Buffer
	err := printBatch(&out, &errOut, results, display{format: render.FormatJSON, style: render.Plain})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3")

	assert.Less(t, strings.Index(out.String(), `"B"`), strings.Index(out.String(), `"C"`))
	assert.Contains(t, errOut.String(), "failed: A: no match")
	assert.NotContains(t, out.String(), "failed")
}

func TestPrintBatch_AllSucceeded(t *testing.T) {
	results := []batchResult{{Query: "B", Benchmark: model.Benchmark{Matricule: "B"}}}

	var out, errOut bytes.Buffer
	require.NoError(t, printBatch(&out, &errOut, results, display{format: render.FormatText, style: render.Plain}))
	assert.Empty(t, errOut.String())
}

func TestPrintBatch_YAMLDocuments(t *testing.T) {
	results := []batchResult{
		{Query: "B", Benchmark: model.Benchmark{Matricule: "B", CID: 2, Municipality: "VERSAILLES"}},
		{Query: "X", Err: errors.New("no match")},
		{Query: "C", Benchmark: model.Benchmark{Matricule: "C", CID: 3, Municipality: "VIROFLAY"}},
	}

	var out, errOut bytes.Buffer
	require.Error(t, printBatch(&out, &errOut, results, display{format: render.FormatYAML, style: render.Plain}))
	assert.False(t, strings.HasPrefix(out.String(), "---"))

	dec := yaml.NewDecoder(&out)
	var names []string
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		names = append(names, doc["matricule"].(string))
	}
	assert.Equal(t, []string{"B", "C"}, names)
}

func TestScanQueries(t *testing.T) {
	got, err := scanQueries(strings.NewReader("T'.D.S3 - 50\n\n# commentaire\n  T'.D.S3 - 52  \r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"T'.D.S3 - 50", "T'.D.S3 - 52"}, got)
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("file")
	require.NotNil(t, flag, "batch command should have --file flag")
	assert.Equal(t, "", flag.DefValue)
}

func TestBatchCommand_NoQueries(t *testing.T) {
	isolateConfig(t)

	_, err := execute(t, "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no benchmark given")
}
