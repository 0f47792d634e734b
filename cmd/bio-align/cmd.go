// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bioalign/align"
	"github.com/grailbio/bioalign/batch"
	"github.com/grailbio/bioalign/dag"
	"github.com/grailbio/bioalign/encoding/fasta"
	"github.com/grailbio/bioalign/scoring"
	"v.io/x/lib/cmdline"
)

// inputFlags select where the two sequences come from.
type inputFlags struct {
	fasta *string
}

func addInputFlags(cmd *cmdline.Command) inputFlags {
	return inputFlags{
		fasta: cmd.Flags.String("fasta", "", "FASTA file holding the sequences; the arguments are then record names instead of sequences"),
	}
}

// sequences returns the two sequences named by argv.
func (f inputFlags) sequences(ctx context.Context, argv []string) (one, two []byte, err error) {
	if len(argv) != 2 {
		return nil, nil, fmt.Errorf("want two sequences, but got %v", argv)
	}
	if *f.fasta == "" {
		return []byte(argv[0]), []byte(argv[1]), nil
	}
	fa, err := fasta.NewFromPath(ctx, *f.fasta)
	if err != nil {
		return nil, nil, err
	}
	if one, err = fa.Seq(argv[0]); err != nil {
		return nil, nil, err
	}
	if two, err = fa.Seq(argv[1]); err != nil {
		return nil, nil, err
	}
	return one, two, nil
}

// scoringFlags select the scoring model and, for the linear gap modes, the
// gap penalty.
type scoringFlags struct {
	matrix *string
	scores *string
	indel  *int // nil unless the command takes -indel
}

func addScoringFlags(cmd *cmdline.Command, withIndel bool) scoringFlags {
	f := scoringFlags{
		matrix: cmd.Flags.String("matrix", "", fmt.Sprintf("Substitution matrix: one of %s, or a matrix file path", strings.Join(scoring.BuiltinNames(), ", "))),
		scores: cmd.Flags.String("scores", "", `Score symbols by equality instead of by matrix, as "match,mismatch", e.g. "1,-1"`),
	}
	if withIndel {
		f.indel = cmd.Flags.Int("indel", align.DefaultOpts.Indel, "Score of one gap symbol; must not be positive")
	}
	return f
}

// takesIndel reports whether mode scores gaps with Opts.Indel.  Fitting and
// overlap use fixed penalties and affine uses its own pair.
func takesIndel(mode align.Mode) bool {
	return mode == align.ModeGlobal || mode == align.ModeLocal || mode == align.ModeLinearSpace
}

func parseScores(s string) (*scoring.MatchMismatch, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("-scores: want match,mismatch, got %q", s)
	}
	var v [2]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("-scores: %v", err)
		}
		v[i] = n
	}
	return &scoring.MatchMismatch{Match: v[0], Mismatch: v[1]}, nil
}

// opts fills the scoring fields of align options.
func (f scoringFlags) opts(ctx context.Context, opts *align.Opts) (err error) {
	if f.indel != nil {
		opts.Indel = *f.indel
	}
	if *f.matrix != "" {
		if opts.Matrix, err = batch.LoadMatrix(ctx, *f.matrix); err != nil {
			return err
		}
	}
	if *f.scores != "" {
		if opts.MatchMismatch, err = parseScores(*f.scores); err != nil {
			return err
		}
	}
	return nil
}

func (f scoringFlags) model(ctx context.Context) (scoring.Model, error) {
	var opts align.Opts
	if err := f.opts(ctx, &opts); err != nil {
		return nil, err
	}
	return opts.Model()
}

func printAlignment(w io.Writer, a align.Alignment) {
	fmt.Fprintf(w, "score: %d\n", a.Score)
	fmt.Fprintf(w, "one[%d:%d]: %s\n", a.OneStart, a.OneEnd, a.One)
	fmt.Fprintf(w, "two[%d:%d]: %s\n", a.TwoStart, a.TwoEnd, a.Two)
	fmt.Fprintf(w, "cigar: %v\n", a.Cigar())
}

func newCmdAlign(mode align.Mode, short string) *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     mode.String(),
		Short:    short,
		ArgsName: "one two",
	}
	input := addInputFlags(cmd)
	scores := addScoringFlags(cmd, takesIndel(mode))
	var gapOpen, gapExtend *int
	if mode == align.ModeAffine {
		gapOpen = cmd.Flags.Int("gap-open", align.DefaultOpts.GapOpen, "Score of the first gap symbol of a run")
		gapExtend = cmd.Flags.Int("gap-extend", align.DefaultOpts.GapExtend, "Score of each further gap symbol of a run")
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		ctx := vcontext.Background()
		one, two, err := input.sequences(ctx, argv)
		if err != nil {
			return err
		}
		opts := align.DefaultOpts
		opts.Mode = mode
		if err := scores.opts(ctx, &opts); err != nil {
			return err
		}
		if gapOpen != nil {
			opts.GapOpen, opts.GapExtend = *gapOpen, *gapExtend
		}
		log.Debug.Printf("bio-align: %v alignment of %d against %d symbols", mode, len(one), len(two))
		a, err := align.Run(one, two, opts)
		if err != nil {
			return err
		}
		printAlignment(env.Stdout, a)
		return nil
	})
	return cmd
}

func newCmdEdit() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "edit",
		Short:    "Print the Levenshtein edit distance of two sequences",
		ArgsName: "one two",
	}
	input := addInputFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		one, two, err := input.sequences(vcontext.Background(), argv)
		if err != nil {
			return err
		}
		d, err := align.EditDistance(one, two)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, d)
		return nil
	})
	return cmd
}

func newCmdLCS() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "lcs",
		Short:    "Print a longest common subsequence of two sequences",
		ArgsName: "one two",
	}
	input := addInputFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		one, two, err := input.sequences(vcontext.Background(), argv)
		if err != nil {
			return err
		}
		lcs, err := align.LongestCommonSubsequence(one, two)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, lcs)
		return nil
	})
	return cmd
}

func newCmdMiddleEdge() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "middle-edge",
		Short:    "Print an edge of an optimal global alignment path crossing the middle column",
		ArgsName: "one two",
	}
	input := addInputFlags(cmd)
	scores := addScoringFlags(cmd, true)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		ctx := vcontext.Background()
		one, two, err := input.sequences(ctx, argv)
		if err != nil {
			return err
		}
		model, err := scores.model(ctx)
		if err != nil {
			return err
		}
		e, err := align.FindMiddleEdge(one, two, model, *scores.indel)
		if err != nil {
			return err
		}
		row, col := e.Next()
		fmt.Fprintf(env.Stdout, "(%d, %d) (%d, %d) %v\n", e.Row, e.Col, row, col, e.Move)
		return nil
	})
	return cmd
}

func newCmdDAG() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "dag",
		Short:    "Print the longest path through a weighted DAG",
		ArgsName: "path",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("dag takes one pathname argument, but got %v", argv)
		}
		data, err := file.ReadFile(vcontext.Background(), argv[0])
		if err != nil {
			return err
		}
		p, err := dag.Parse(bytes.NewReader(data))
		if err != nil {
			return err
		}
		weight, path, err := p.Graph.LongestPath(p.Source, p.Sink)
		if err != nil {
			return err
		}
		ids := make([]string, len(path))
		for i, id := range path {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintln(env.Stdout, weight)
		fmt.Fprintln(env.Stdout, strings.Join(ids, "->"))
		return nil
	})
	return cmd
}

func newCmdBatch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "batch",
		Short:    "Align every sequence pair a YAML config lists and write a TSV table",
		ArgsName: "config.yaml",
	}
	parallelism := cmd.Flags.Int("parallelism", 0, "Number of simultaneous alignment jobs; overrides the config; 0 = config value or runtime.NumCPU()")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("batch takes one config path, but got %v", argv)
		}
		ctx := vcontext.Background()
		c, err := batch.LoadConfig(ctx, argv[0])
		if err != nil {
			return err
		}
		if *parallelism > 0 {
			c.Parallelism = *parallelism
		}
		if err := batch.Run(ctx, c); err != nil {
			return err
		}
		log.Printf("bio-align: batch %s done", argv[0])
		return nil
	})
	return cmd
}
