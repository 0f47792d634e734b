// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioalign/scoring"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestTieBreakPrefersHorizontal(t *testing.T) {
	g, err := NewGrid([]byte("A"), []byte("C"), scoring.MatchMismatch{Match: 1}, 0, GlobalPolicy)
	assert.NoError(t, err)
	score, tag := g.Cell(1, 1)
	expect.EQ(t, score, 0)
	expect.EQ(t, tag, Tag{Move: Horizontal})
}

func TestLocalRestart(t *testing.T) {
	g, err := NewGrid([]byte("A"), []byte("C"), scoring.MatchMismatch{Match: 1, Mismatch: -1}, -1, LocalPolicy)
	assert.NoError(t, err)
	score, tag := g.Cell(1, 0)
	expect.EQ(t, score, 0)
	expect.EQ(t, tag.Move, Source)
	score, tag = g.Cell(1, 1)
	expect.EQ(t, score, 0)
	expect.EQ(t, tag.Move, Source)
}

func TestSinkJump(t *testing.T) {
	g, err := NewGrid([]byte("PAWHEAE"), []byte("HEAGAWGHEE"), scoring.MatchMismatch{Match: 1, Mismatch: -2}, -2, OverlapPolicy)
	assert.NoError(t, err)
	score, tag := g.Cell(g.Rows()-1, g.Cols()-1)
	expect.EQ(t, score, 1)
	expect.EQ(t, tag, Tag{Move: Jump, Row: 7, Col: 3})
	expect.EQ(t, tag.String(), "(7,3)")
	expect.HasSubstr(t, g.String(), "1/(7,3)")
}

func TestBacktrackCorruptGrid(t *testing.T) {
	g, err := NewGrid([]byte("PA"), []byte("APA"), scoring.BLOSUM62(), -5, GlobalPolicy)
	assert.NoError(t, err)
	g.moves[1*g.nCol+2] = None
	_, err = g.Backtrack()
	expect.True(t, errors.Is(errors.Integrity, err), "%v", err)
	expect.HasSubstr(t, err.Error(), "(1,2)")

	g.moves[1*g.nCol+2] = Vertical
	g.moves[0*g.nCol+2] = Vertical
	_, err = g.Backtrack()
	expect.True(t, errors.Is(errors.Integrity, err), "%v", err)
}

func TestAffineBacktrackCorruptGrid(t *testing.T) {
	g, err := NewAffineGrid([]byte("PAN"), []byte("PLAAN"), scoring.BLOSUM62(), -11, -1)
	assert.NoError(t, err)
	g.steps[DiagonalLayer][len(g.steps[DiagonalLayer])-1] = Extend
	_, err = g.Backtrack()
	expect.True(t, errors.Is(errors.Integrity, err), "%v", err)
}

func TestAffineCells(t *testing.T) {
	g, err := NewAffineGrid([]byte("AA"), []byte("A"), scoring.MatchMismatch{Match: 1, Mismatch: -1}, -3, -1)
	assert.NoError(t, err)
	tests := []struct {
		layer Layer
		i, j  int
		score int
		step  Step
	}{
		{DiagonalLayer, 0, 0, 0, NoStep},
		{VerticalLayer, 1, 0, -3, Open},
		{VerticalLayer, 2, 0, -4, Extend},
		{DiagonalLayer, 2, 0, -4, ToVertical},
		{HorizontalLayer, 0, 1, -3, Open},
		{HorizontalLayer, 1, 0, negInf, NoStep},
		{DiagonalLayer, 1, 1, 1, Match},
		{HorizontalLayer, 1, 1, -6, Open},
		{VerticalLayer, 2, 1, -2, Open},
		// The match from (1, 0) ties the vertical gap and loses.
		{DiagonalLayer, 2, 1, -2, ToVertical},
	}
	for _, tt := range tests {
		score, step := g.Cell(tt.layer, tt.i, tt.j)
		expect.EQ(t, score, tt.score, "%v(%d,%d)", tt.layer, tt.i, tt.j)
		expect.EQ(t, step, tt.step, "%v(%d,%d)", tt.layer, tt.i, tt.j)
	}
	expect.EQ(t, g.Score(), -2)
}

func TestPolicyString(t *testing.T) {
	expect.EQ(t, GlobalPolicy.String(), "in:--,out:--")
	expect.EQ(t, LocalPolicy.String(), "in:vh,out:vh")
	expect.EQ(t, FittingPolicy.String(), "in:v-,out:v-")
	expect.EQ(t, OverlapPolicy.String(), "in:v-,out:-h")
}
