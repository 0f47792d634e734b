// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioalign/scoring"
)

// Layer selects one of the three coordinate-synchronized tables of an
// AffineGrid.
type Layer uint8

const (
	// DiagonalLayer holds paths whose last column is a match or mismatch, or
	// that have just closed a gap.
	DiagonalLayer Layer = iota
	// VerticalLayer holds paths inside a gap in the second sequence.
	VerticalLayer
	// HorizontalLayer holds paths inside a gap in the first sequence.
	HorizontalLayer
)

func (l Layer) String() string {
	switch l {
	case DiagonalLayer:
		return "d"
	case VerticalLayer:
		return "v"
	case HorizontalLayer:
		return "h"
	}
	return fmt.Sprintf("Layer(%d)", l)
}

// Step is the backtrack tag of one layer cell.  Match is a coordinate move of
// the diagonal layer.  Open and Extend are coordinate moves of a gap layer
// that, respectively, return to or stay in that gap layer.  ToVertical and
// ToHorizontal switch layers without moving.
type Step uint8

const (
	NoStep Step = iota
	Match
	Open
	Extend
	ToVertical
	ToHorizontal
)

var stepNames = [...]string{"none", "match", "open", "extend", "to-v", "to-h"}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("Step(%d)", s)
}

// negInf stands in for an unreachable layer cell.  It is far enough from
// math.MinInt64 that adding any penalty of a realistic gap run cannot wrap.
const negInf = math.MinInt64 / 4

// AffineGrid is the three-layer alignment table for an affine gap cost: a gap
// run of length k scores gapOpen + (k-1)*gapExtend.  It always aligns
// globally.
type AffineGrid struct {
	one, two           []byte
	model              scoring.Model
	gapOpen, gapExtend int

	nCol   int
	scores [3][]int
	steps  [3][]Step
}

func checkGapCost(gapOpen, gapExtend int) error {
	if gapOpen > 0 || gapExtend > 0 {
		return errors.E(errors.Invalid,
			fmt.Sprintf("align: gap penalties must not be positive, got open %d extend %d", gapOpen, gapExtend))
	}
	if gapOpen > gapExtend {
		return errors.E(errors.Invalid,
			fmt.Sprintf("align: gap open penalty %d is cheaper than gap extend penalty %d", gapOpen, gapExtend))
	}
	return nil
}

// NewAffineGrid fills the affine grid of one (down the rows) against two
// (across the columns).  It requires gapOpen <= gapExtend <= 0 and returns an
// errors.Invalid error otherwise.
func NewAffineGrid(one, two []byte, model scoring.Model, gapOpen, gapExtend int) (*AffineGrid, error) {
	if err := checkGapCost(gapOpen, gapExtend); err != nil {
		return nil, err
	}
	if err := checkInputs(one, two, model); err != nil {
		return nil, err
	}
	n, m := len(one), len(two)
	log.Debug.Printf("align: filling 3x%dx%d affine grid, open %d extend %d", n+1, m+1, gapOpen, gapExtend)
	g := &AffineGrid{
		one:       one,
		two:       two,
		model:     model,
		gapOpen:   gapOpen,
		gapExtend: gapExtend,
		nCol:      m + 1,
	}
	for l := range g.scores {
		g.scores[l] = make([]int, (n+1)*(m+1))
		g.steps[l] = make([]Step, (n+1)*(m+1))
	}
	g.fill()
	return g, nil
}

func (g *AffineGrid) fill() {
	n, m := len(g.one), len(g.two)
	var (
		vs, hs, ds = g.scores[VerticalLayer], g.scores[HorizontalLayer], g.scores[DiagonalLayer]
		vt, ht, dt = g.steps[VerticalLayer], g.steps[HorizontalLayer], g.steps[DiagonalLayer]
	)
	for k := range vs {
		vs[k], hs[k], ds[k] = negInf, negInf, negInf
	}
	ds[0] = 0

	// Column 0 is one uninterrupted vertical gap, row 0 a horizontal one.
	for i := 1; i <= n; i++ {
		k := i * g.nCol
		vs[k], vt[k] = g.gapOpen+(i-1)*g.gapExtend, Extend
		if i == 1 {
			vt[k] = Open
		}
		ds[k], dt[k] = vs[k], ToVertical
	}
	for j := 1; j <= m; j++ {
		hs[j], ht[j] = g.gapOpen+(j-1)*g.gapExtend, Extend
		if j == 1 {
			ht[j] = Open
		}
		ds[j], dt[j] = hs[j], ToHorizontal
	}

	for i := 1; i <= n; i++ {
		x := g.one[i-1]
		for j := 1; j <= m; j++ {
			k := i*g.nCol + j
			up, left, diag := k-g.nCol, k-1, k-g.nCol-1

			vs[k], vt[k] = ds[up]+g.gapOpen, Open
			if e := vs[up] + g.gapExtend; e > vs[k] {
				vs[k], vt[k] = e, Extend
			}
			hs[k], ht[k] = ds[left]+g.gapOpen, Open
			if e := hs[left] + g.gapExtend; e > hs[k] {
				hs[k], ht[k] = e, Extend
			}

			ds[k], dt[k] = hs[k], ToHorizontal
			if vs[k] > ds[k] {
				ds[k], dt[k] = vs[k], ToVertical
			}
			if d := ds[diag] + g.model.Score(x, g.two[j-1]); d > ds[k] {
				ds[k], dt[k] = d, Match
			}
		}
	}
}

// Score returns the optimal alignment score, the diagonal layer of the sink.
func (g *AffineGrid) Score() int {
	return g.scores[DiagonalLayer][len(g.one)*g.nCol+len(g.two)]
}

// Cell returns the score and backtrack step of cell (i, j) in layer l.
func (g *AffineGrid) Cell(l Layer, i, j int) (int, Step) {
	k := i*g.nCol + j
	return g.scores[l][k], g.steps[l][k]
}

// Backtrack reconstructs an optimal alignment starting in the diagonal layer
// at the sink.  In a gap layer every step consumes a symbol; its tag only
// decides whether the next step stays in the gap.
func (g *AffineGrid) Backtrack() (Alignment, error) {
	n, m := len(g.one), len(g.two)
	i, j, layer := n, m, DiagonalLayer
	var b builder
	for i > 0 || j > 0 {
		k := i*g.nCol + j
		step := g.steps[layer][k]
		switch layer {
		case DiagonalLayer:
			switch step {
			case Match:
				if i == 0 || j == 0 {
					return Alignment{}, corrupt("align: affine match step out of the boundary at (%d,%d)", i, j)
				}
				i--
				j--
				b.column(g.one[i], g.two[j])
			case ToVertical:
				layer = VerticalLayer
			case ToHorizontal:
				layer = HorizontalLayer
			default:
				return Alignment{}, corrupt("align: affine cell (%d,%d) layer %v has step %v", i, j, layer, step)
			}
		case VerticalLayer:
			if i == 0 || (step != Open && step != Extend) {
				return Alignment{}, corrupt("align: affine cell (%d,%d) layer %v has step %v", i, j, layer, step)
			}
			i--
			b.column(g.one[i], Gap)
			if step == Open {
				layer = DiagonalLayer
			}
		case HorizontalLayer:
			if j == 0 || (step != Open && step != Extend) {
				return Alignment{}, corrupt("align: affine cell (%d,%d) layer %v has step %v", i, j, layer, step)
			}
			j--
			b.column(Gap, g.two[j])
			if step == Open {
				layer = DiagonalLayer
			}
		}
	}
	a := b.finish(g.Score(), n, m)
	a.OneEnd, a.TwoEnd = n, m
	return a, nil
}

// Affine aligns all of one against all of two with an affine gap cost.
func Affine(one, two []byte, gapOpen, gapExtend int, model scoring.Model) (Alignment, error) {
	g, err := NewAffineGrid(one, two, model, gapOpen, gapExtend)
	if err != nil {
		return Alignment{}, err
	}
	return g.Backtrack()
}
