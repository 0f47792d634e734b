// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package batch aligns many independent sequence pairs in parallel and writes
// the results as a TSV table.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bioalign/align"
	"github.com/grailbio/bioalign/encoding/fasta"
	perrors "github.com/pkg/errors"
)

// Opts configures Align.
type Opts struct {
	Align align.Opts
	// Parallelism is the number of alignment jobs run at once.
	Parallelism int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Align:       align.DefaultOpts,
	Parallelism: runtime.NumCPU(),
}

// Pair is one alignment job.
type Pair struct {
	OneName, TwoName string
	One, Two         []byte
}

// Result is the outcome of aligning a Pair.
type Result struct {
	Pair
	Alignment align.Alignment
}

// fingerprint identifies the contents of a pair.  Equal fingerprints are
// confirmed byte by byte before a result is shared.
func fingerprint(p Pair) uint64 {
	return farm.Hash64WithSeed(p.Two, farm.Fingerprint64(p.One))
}

// Align aligns every pair.  Pairs with identical sequences are aligned once.
// Results are returned in the order of pairs.  The first error aborts the
// batch.
func Align(ctx context.Context, pairs []Pair, opts Opts) ([]Result, error) {
	// unique holds the index into pairs of each distinct job.
	var (
		unique  []int
		byPrint = map[uint64][]int{}
		jobOf   = make([]int, len(pairs))
	)
	for i, p := range pairs {
		fp := fingerprint(p)
		job := -1
		for _, u := range byPrint[fp] {
			if q := pairs[unique[u]]; bytes.Equal(q.One, p.One) && bytes.Equal(q.Two, p.Two) {
				job = u
				break
			}
		}
		if job < 0 {
			job = len(unique)
			unique = append(unique, i)
			byPrint[fp] = append(byPrint[fp], job)
		}
		jobOf[i] = job
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(unique) {
		parallelism = len(unique)
	}
	log.Printf("batch: aligning %d pairs (%d distinct) in %v mode, %d jobs",
		len(pairs), len(unique), opts.Align.Mode, parallelism)

	alignments := make([]align.Alignment, len(unique))
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(unique)) / parallelism
		endIdx := ((jobIdx + 1) * len(unique)) / parallelism
		for u := startIdx; u < endIdx; u++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := pairs[unique[u]]
			a, err := align.Run(p.One, p.Two, opts.Align)
			if err != nil {
				return errors.E(err, fmt.Sprintf("batch: align %s against %s", p.OneName, p.TwoName))
			}
			alignments[u] = a
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(pairs))
	for i, p := range pairs {
		results[i] = Result{Pair: p, Alignment: alignments[jobOf[i]]}
	}
	return results, nil
}

// resultRow is one line of the result table.
type resultRow struct {
	One        string `tsv:"one"`
	Two        string `tsv:"two"`
	Score      int    `tsv:"score"`
	OneStart   int    `tsv:"one_start"`
	OneEnd     int    `tsv:"one_end"`
	TwoStart   int    `tsv:"two_start"`
	TwoEnd     int    `tsv:"two_end"`
	Cigar      string `tsv:"cigar"`
	Identity   string `tsv:"identity"`
	AlignedOne string `tsv:"aligned_one"`
	AlignedTwo string `tsv:"aligned_two"`
}

// WriteResults writes results as a TSV table with a header row.
func WriteResults(w io.Writer, results []Result) error {
	tw := tsv.NewRowWriter(w)
	for _, r := range results {
		a := r.Alignment
		row := resultRow{
			One:        r.OneName,
			Two:        r.TwoName,
			Score:      a.Score,
			OneStart:   a.OneStart,
			OneEnd:     a.OneEnd,
			TwoStart:   a.TwoStart,
			TwoEnd:     a.TwoEnd,
			Cigar:      a.Cigar().String(),
			Identity:   fmt.Sprintf("%.3f", a.Identity()),
			AlignedOne: a.One,
			AlignedTwo: a.Two,
		}
		if err := tw.Write(&row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// ReadPairs reads a TSV table of sequence names with a header row naming
// columns "one" and "two".
func ReadPairs(r io.Reader) ([]PairNames, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	var names []PairNames
	for {
		var n PairNames
		if err := tr.Read(&n); err != nil {
			if err == io.EOF {
				return names, nil
			}
			return nil, perrors.Wrap(err, "batch: read pairs")
		}
		names = append(names, n)
	}
}

// pairs resolves the pairs c names against the sequences of fa.
func (c Config) pairs(ctx context.Context, fa fasta.Fasta) ([]Pair, error) {
	names := c.Pairs
	if c.PairsFile != "" {
		data, err := file.ReadFile(ctx, c.PairsFile)
		if err != nil {
			return nil, err
		}
		more, err := ReadPairs(bytes.NewReader(data))
		if err != nil {
			return nil, perrors.Wrap(err, c.PairsFile)
		}
		names = append(names, more...)
	}
	if len(names) == 0 && c.PairsFile == "" {
		seqNames := fa.SeqNames()
		for i := range seqNames {
			for j := i + 1; j < len(seqNames); j++ {
				names = append(names, PairNames{One: seqNames[i], Two: seqNames[j]})
			}
		}
	}
	pairs := make([]Pair, len(names))
	for i, n := range names {
		one, err := fa.Seq(n.One)
		if err != nil {
			return nil, errors.E(errors.NotExist, err)
		}
		two, err := fa.Seq(n.Two)
		if err != nil {
			return nil, errors.E(errors.NotExist, err)
		}
		pairs[i] = Pair{OneName: n.One, TwoName: n.Two, One: one, Two: two}
	}
	return pairs, nil
}

// Run executes the batch c describes: it reads the sequences, aligns the
// pairs and writes the result table.
func Run(ctx context.Context, c Config) (err error) {
	opts, err := c.Opts(ctx)
	if err != nil {
		return err
	}
	fa, err := fasta.NewFromPath(ctx, c.Sequences)
	if err != nil {
		return err
	}
	pairs, err := c.pairs(ctx, fa)
	if err != nil {
		return err
	}
	results, err := Align(ctx, pairs, opts)
	if err != nil {
		return err
	}
	if c.Output == "" || c.Output == "-" {
		return WriteResults(os.Stdout, results)
	}
	out, err := file.Create(ctx, c.Output)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	return WriteResults(out.Writer(ctx), results)
}
