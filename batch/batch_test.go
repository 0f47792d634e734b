// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package batch_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bioalign/align"
	"github.com/grailbio/bioalign/batch"
	"github.com/grailbio/bioalign/scoring"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pair(one, two string) batch.Pair {
	return batch.Pair{OneName: one, TwoName: two, One: []byte(one), Two: []byte(two)}
}

func TestAlign(t *testing.T) {
	pairs := []batch.Pair{
		pair("PLEASANTLY", "MEANLY"),
		pair("PA", "APA"),
		pair("PLEASANTLY", "MEANLY"),
		pair("MEANLY", "PLEASANTLY"),
		pair("PRTEINS", "PRTWPSEIN"),
	}
	opts := batch.DefaultOpts
	opts.Align.Matrix = scoring.BLOSUM62()
	for _, parallelism := range []int{1, 2, 16} {
		opts.Parallelism = parallelism
		results, err := batch.Align(context.Background(), pairs, opts)
		require.NoError(t, err)
		var scores []int
		for i, r := range results {
			expect.EQ(t, r.Pair.OneName, pairs[i].OneName)
			want, err := align.Global(pairs[i].One, pairs[i].Two, scoring.BLOSUM62())
			require.NoError(t, err)
			if diff := cmp.Diff(want, r.Alignment, cmp.AllowUnexported(align.Alignment{})); diff != "" {
				t.Errorf("pair %d (-want +got):\n%s", i, diff)
			}
			scores = append(scores, r.Alignment.Score)
		}
		expect.EQ(t, scores, []int{8, 6, 8, 8, 12})
	}
}

func TestAlignError(t *testing.T) {
	opts := batch.DefaultOpts
	opts.Align.Matrix = scoring.BLOSUM62()
	_, err := batch.Align(context.Background(), []batch.Pair{pair("PA", "APA"), pair("PAJ", "PA")}, opts)
	expect.True(t, errors.Is(errors.NotExist, err), "%v", err)
	expect.HasSubstr(t, err.Error(), "PAJ")

	results, err := batch.Align(context.Background(), nil, opts)
	require.NoError(t, err)
	expect.EQ(t, len(results), 0)
}

func TestAlignCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := batch.DefaultOpts
	opts.Align.Matrix = scoring.BLOSUM62()
	_, err := batch.Align(ctx, []batch.Pair{pair("PA", "APA")}, opts)
	require.Error(t, err)
	expect.HasSubstr(t, err.Error(), "canceled")
}

type row struct {
	One      string `tsv:"one"`
	Two      string `tsv:"two"`
	Score    int    `tsv:"score"`
	Cigar    string `tsv:"cigar"`
	Identity string `tsv:"identity"`
}

func readRows(t *testing.T, data []byte) []row {
	r := tsv.NewReader(bytes.NewReader(data))
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	var rows []row
	for {
		var x row
		if err := r.Read(&x); err != nil {
			break
		}
		rows = append(rows, x)
	}
	return rows
}

func TestWriteResults(t *testing.T) {
	opts := batch.DefaultOpts
	opts.Align.Matrix = scoring.BLOSUM62()
	results, err := batch.Align(context.Background(), []batch.Pair{pair("PLEASANTLY", "MEANLY"), pair("PA", "APA")}, opts)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, batch.WriteResults(&buf, results))
	assert.True(t, strings.HasPrefix(buf.String(), "one\ttwo\tscore\t"), buf.String())
	want := []row{
		{"PLEASANTLY", "MEANLY", 8, "1D3M2D1M1D2M", "0.500"},
		{"PA", "APA", 6, "1I2M", "0.667"},
	}
	if diff := cmp.Diff(want, readRows(t, buf.Bytes())); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestParseConfig(t *testing.T) {
	const text = `
mode: local
matrix: pam250
indel: -4
parallelism: 3
sequences: seqs.fa
pairs:
  - {one: a, two: b}
output: out.tsv
`
	c, err := batch.ParseConfig(strings.NewReader(text))
	require.NoError(t, err)
	expect.EQ(t, c.Mode, align.ModeLocal)
	expect.EQ(t, c.Pairs, []batch.PairNames{{One: "a", Two: "b"}})

	opts, err := c.Opts(context.Background())
	require.NoError(t, err)
	expect.EQ(t, opts.Parallelism, 3)
	expect.EQ(t, opts.Align.Indel, -4)
	expect.EQ(t, opts.Align.GapOpen, align.DefaultOpts.GapOpen)
	expect.EQ(t, opts.Align.Matrix.Score('W', 'C'), -8)

	for _, bad := range []string{
		"",
		"mode: global\n",
		"mode: semiglobal\nsequences: x.fa\n",
		"sequences: x.fa\nunknown: 1\n",
	} {
		_, err := batch.ParseConfig(strings.NewReader(bad))
		assert.Error(t, err, bad)
	}
}

func TestConfigOptsErrors(t *testing.T) {
	ctx := context.Background()
	one := 1
	for _, c := range []batch.Config{
		{Sequences: "x.fa"},
		{Sequences: "x.fa", Match: &one},
		{Sequences: "x.fa", Matrix: "blosum62", Match: &one, Mismatch: &one},
		{Sequences: "x.fa", Matrix: "/nonexistent/matrix.txt"},
	} {
		_, err := c.Opts(ctx)
		assert.Error(t, err, "%+v", c)
	}
	// Fitting falls back to its own scores.
	opts, err := batch.Config{Mode: align.ModeFitting, Sequences: "x.fa"}.Opts(ctx)
	require.NoError(t, err)
	expect.True(t, opts.Align.Matrix == nil)
}

func TestRun(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	write := func(name, data string) string {
		path := filepath.Join(tmpdir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
		return path
	}
	seqs := write("seqs.fa", ">p1\nPLEASANTLY\n>p2\nMEANLY\n>p3\nMEASNLY\n")
	matrix := write("match.txt", "  A  E  L  M  N  P  S  T  Y\n"+
		"A  1  0  0  0  0  0  0  0  0\n"+
		"E  0  1  0  0  0  0  0  0  0\n"+
		"L  0  0  1  0  0  0  0  0  0\n"+
		"M  0  0  0  1  0  0  0  0  0\n"+
		"N  0  0  0  0  1  0  0  0  0\n"+
		"P  0  0  0  0  0  1  0  0  0\n"+
		"S  0  0  0  0  0  0  1  0  0\n"+
		"T  0  0  0  0  0  0  0  1  0\n"+
		"Y  0  0  0  0  0  0  0  0  1\n")
	pairsFile := write("pairs.tsv", "one\ttwo\np2\tp3\n")

	out := filepath.Join(tmpdir, "out.tsv")
	c := batch.Config{
		Mode:      align.ModeGlobal,
		Matrix:    "blosum62",
		Sequences: seqs,
		Pairs:     []batch.PairNames{{One: "p1", Two: "p2"}},
		PairsFile: pairsFile,
		Output:    out,
	}
	require.NoError(t, batch.Run(ctx, c))
	data, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	rows := readRows(t, data)
	require.Len(t, rows, 2)
	expect.EQ(t, rows[0].Score, 8)
	expect.EQ(t, []string{rows[1].One, rows[1].Two}, []string{"p2", "p3"})

	// All-against-all with a matrix file and a zero indel penalty: scores
	// are longest common subsequence lengths.
	zero := 0
	c = batch.Config{Matrix: matrix, Indel: &zero, Sequences: seqs, Output: out}
	require.NoError(t, batch.Run(ctx, c))
	data, err = ioutil.ReadFile(out)
	require.NoError(t, err)
	rows = readRows(t, data)
	require.Len(t, rows, 3)
	var scores []int
	for _, r := range rows {
		scores = append(scores, r.Score)
	}
	expect.EQ(t, scores, []int{5, 6, 6})

	c.Pairs = []batch.PairNames{{One: "p1", Two: "missing"}}
	err = batch.Run(ctx, c)
	expect.True(t, errors.Is(errors.NotExist, err), "%v", err)
}
