// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioalign/scoring"
)

// Penalties and scalar scores of the derived alignment flavors.
const (
	DefaultIndel = -5
	FittingIndel = -1
	OverlapIndel = -2
	EditIndel    = -1
)

var (
	fittingScores = scoring.MatchMismatch{Match: 1, Mismatch: -1}
	overlapScores = scoring.MatchMismatch{Match: 1, Mismatch: -2}
	editScores    = scoring.MatchMismatch{Match: 0, Mismatch: -1}
	lcsScores     = scoring.MatchMismatch{Match: 1, Mismatch: 0}
)

func align(one, two []byte, model scoring.Model, indel int, policy Policy) (Alignment, error) {
	g, err := NewGrid(one, two, model, indel, policy)
	if err != nil {
		return Alignment{}, err
	}
	return g.Backtrack()
}

// Global aligns all of one against all of two with indel penalty
// DefaultIndel.
func Global(one, two []byte, model scoring.Model) (Alignment, error) {
	return align(one, two, model, DefaultIndel, GlobalPolicy)
}

// Local aligns the best-scoring pair of substrings of one and two with indel
// penalty DefaultIndel.  The empty alignment, scoring 0, is always a
// candidate.
func Local(one, two []byte, model scoring.Model) (Alignment, error) {
	return align(one, two, model, DefaultIndel, LocalPolicy)
}

// Fitting aligns all of short against the best-matching substring of long.
// A nil model scores a match 1 and a mismatch -1.  short must be non-empty
// and no longer than long, otherwise Fitting returns an errors.Precondition
// error.
func Fitting(long, short []byte, model scoring.Model) (Alignment, error) {
	if len(short) == 0 {
		return Alignment{}, errors.E(errors.Precondition, "align: fitting needs a non-empty short sequence")
	}
	if len(short) > len(long) {
		return Alignment{}, errors.E(errors.Precondition,
			fmt.Sprintf("align: fitting sequence of length %d is longer than the sequence of length %d it is fitted to", len(short), len(long)))
	}
	if model == nil {
		model = fittingScores
	}
	return align(long, short, model, FittingIndel, FittingPolicy)
}

// Overlap aligns a suffix of before against a prefix of after.  A nil model
// scores a match 1 and a mismatch -2.
func Overlap(before, after []byte, model scoring.Model) (Alignment, error) {
	if model == nil {
		model = overlapScores
	}
	return align(before, after, model, OverlapIndel, OverlapPolicy)
}

// EditDistance returns the Levenshtein distance between one and two: the
// least number of single-symbol substitutions, insertions and deletions that
// turn one into two.
func EditDistance(one, two []byte) (int, error) {
	g, err := NewGrid(one, two, editScores, EditIndel, GlobalPolicy)
	if err != nil {
		return 0, err
	}
	return -g.Score(), nil
}

// LongestCommonSubsequence returns a longest sequence of symbols appearing, in
// order but not necessarily contiguously, in both one and two.
func LongestCommonSubsequence(one, two []byte) (string, error) {
	a, err := align(one, two, lcsScores, 0, GlobalPolicy)
	if err != nil {
		return "", err
	}
	lcs := make([]byte, 0, a.Score)
	for i := 0; i < len(a.One); i++ {
		if a.One[i] == a.Two[i] && a.One[i] != Gap {
			lcs = append(lcs, a.One[i])
		}
	}
	return string(lcs), nil
}
