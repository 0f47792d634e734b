// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scoring_test

import (
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioalign/scoring"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestNewExactlyOne(t *testing.T) {
	blosum := scoring.BLOSUM62()
	mm := &scoring.MatchMismatch{Match: 1, Mismatch: -1}

	_, err := scoring.New(blosum, mm)
	expect.True(t, errors.Is(errors.Invalid, err), "both: %v", err)
	_, err = scoring.New(nil, nil)
	expect.True(t, errors.Is(errors.Invalid, err), "neither: %v", err)

	m, err := scoring.New(blosum, nil)
	require.NoError(t, err)
	expect.EQ(t, m.Score('P', 'P'), 7)

	m, err = scoring.New(nil, mm)
	require.NoError(t, err)
	expect.EQ(t, m.Score('A', 'A'), 1)
	expect.EQ(t, m.Score('A', 'C'), -1)
	expect.NoError(t, m.Check([]byte("anything goes")))
}

func TestNewRejectsBadScalars(t *testing.T) {
	for _, mm := range []scoring.MatchMismatch{
		{Match: 1, Mismatch: 2},
		{Match: -1, Mismatch: -1},
	} {
		_, err := scoring.New(nil, &mm)
		expect.True(t, errors.Is(errors.Invalid, err), "%v: %v", mm, err)
	}
	// Edit distance uses a zero match bonus.
	_, err := scoring.New(nil, &scoring.MatchMismatch{Match: 0, Mismatch: -1})
	expect.NoError(t, err)
}

func TestBuiltin(t *testing.T) {
	tests := []struct {
		name string
		x, y byte
		want int
	}{
		{"blosum62", 'A', 'A', 4},
		{"blosum62", 'W', 'W', 11},
		{"blosum62", 'P', 'A', -1},
		{"BLOSUM62", 'E', 'Q', 2},
		{"pam250", 'E', 'E', 4},
		{"pam250", 'Y', 'Y', 10},
		{"pam250", 'W', 'C', -8},
		{"pam250", 'A', 'N', 0},
	}
	for _, tt := range tests {
		m, err := scoring.Builtin(tt.name)
		require.NoError(t, err)
		got, err := m.Lookup(tt.x, tt.y)
		require.NoError(t, err)
		expect.EQ(t, got, tt.want, "%s(%c,%c)", tt.name, tt.x, tt.y)
	}
	_, err := scoring.Builtin("blosum45")
	expect.True(t, errors.Is(errors.NotExist, err))
	expect.EQ(t, scoring.BuiltinNames(), []string{"blosum62", "pam250"})
}

func TestBuiltinSymmetric(t *testing.T) {
	for _, name := range scoring.BuiltinNames() {
		m, err := scoring.Builtin(name)
		require.NoError(t, err)
		expect.True(t, m.Symmetric(), name)
		expect.EQ(t, len(m.Alphabet()), 20, name)
	}
}

func TestLookupMissingSymbol(t *testing.T) {
	m := scoring.BLOSUM62()
	_, err := m.Lookup('A', 'J')
	expect.True(t, errors.Is(errors.NotExist, err))
	expect.HasSubstr(t, err.Error(), `'J'`)

	err = m.Check([]byte("PEPTIDEZ"))
	expect.True(t, errors.Is(errors.NotExist, err))
	expect.HasSubstr(t, err.Error(), "position 7")
	expect.NoError(t, m.Check([]byte("PEPTIDE")))
	expect.False(t, m.Contains('p'))
}

func TestParseMatrix(t *testing.T) {
	const text = `
  A  C  G  T
A  2 -1 -1 -1
T -1 -1 -1  2
C -1  2 -1 -1
G -1 -1  2 -1
`
	m, err := scoring.ParseMatrix(strings.NewReader(text))
	require.NoError(t, err)
	expect.EQ(t, m.Alphabet(), "ACGT")
	expect.EQ(t, m.Score('T', 'T'), 2)
	expect.EQ(t, m.Score('C', 'C'), 2)
	expect.EQ(t, m.Score('A', 'G'), -1)
	expect.True(t, m.Symmetric())

	// String output parses back to the same matrix.
	again, err := scoring.ParseMatrix(strings.NewReader(m.String()))
	require.NoError(t, err)
	expect.EQ(t, again.String(), m.String())
}

func TestParseMatrixErrors(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", "empty substitution matrix"},
		{"A C\nA 1 0\n", "no row for symbol 'C'"},
		{"A C\nA 1\nC 0 1\n", "has 1 scores"},
		{"A C\nA 1 x\nC 0 1\n", "bad score"},
		{"A C\nA 1 0\nA 1 0\nC 0 1\n", "duplicate row"},
		{"AC G\n", "not a single character"},
		{"A C\nA 1 0\nC 0 1\nG 0 0\n", "3 rows for 2 header symbols"},
	}
	for _, tt := range tests {
		_, err := scoring.ParseMatrix(strings.NewReader(tt.text))
		require.Error(t, err, tt.text)
		expect.HasSubstr(t, err.Error(), tt.want)
	}
}

func TestAsymmetric(t *testing.T) {
	m, err := scoring.NewMatrix("AB", [][]int{{1, -2}, {-3, 1}})
	require.NoError(t, err)
	expect.False(t, m.Symmetric())
	_, err = scoring.NewMatrix("AA", [][]int{{1, 0}, {0, 1}})
	expect.True(t, errors.Is(errors.Invalid, err))
}
