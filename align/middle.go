// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioalign/scoring"
)

// Region is a rectangle of the global alignment grid of one against two,
// covering rows [Top, Bottom] and columns [Left, Right] inclusive.
type Region struct {
	Top, Left, Bottom, Right int
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d]x[%d,%d]", r.Top, r.Bottom, r.Left, r.Right)
}

// MiddleEdge is an edge of an optimal global path.  It leaves node (Row, Col)
// in direction Move.
type MiddleEdge struct {
	Row, Col int
	Move     Move
}

// Next returns the node the edge enters.
func (e MiddleEdge) Next() (row, col int) {
	switch e.Move {
	case Horizontal:
		return e.Row, e.Col + 1
	case Vertical:
		return e.Row + 1, e.Col
	default:
		return e.Row + 1, e.Col + 1
	}
}

func (e MiddleEdge) String() string {
	return fmt.Sprintf("(%d,%d)%v", e.Row, e.Col, e.Move)
}

// MiddleEdgeFinder finds middle edges of sub-regions of one global alignment
// grid while holding only a few columns of scores.  Buffers are reused across
// calls, so a finder must not be shared between goroutines.
type MiddleEdgeFinder struct {
	one, two []byte
	model    scoring.Model
	indel    int

	fwd, bwd, tmp, past []int
	moves               []Move
}

// NewMiddleEdgeFinder returns a finder over the grid of one (down the rows)
// against two (across the columns) with linear gap penalty indel.
func NewMiddleEdgeFinder(one, two []byte, model scoring.Model, indel int) (*MiddleEdgeFinder, error) {
	if err := checkIndel(indel); err != nil {
		return nil, err
	}
	if err := checkInputs(one, two, model); err != nil {
		return nil, err
	}
	rows := len(one) + 1
	return &MiddleEdgeFinder{
		one:   one,
		two:   two,
		model: model,
		indel: indel,
		fwd:   make([]int, rows),
		bwd:   make([]int, rows),
		tmp:   make([]int, rows),
		past:  make([]int, rows),
		moves: make([]Move, rows),
	}, nil
}

// Find returns an edge of an optimal global path from (r.Top, r.Left) to
// (r.Bottom, r.Right) that crosses from column mid = (r.Left+r.Right)/2 into
// column mid+1.  A region with a single column has no such edge; Find then
// returns the vertical edge out of (r.Top, r.Left).
func (f *MiddleEdgeFinder) Find(r Region) (MiddleEdge, error) {
	if r.Top < 0 || r.Left < 0 || r.Top > r.Bottom || r.Left > r.Right ||
		r.Bottom > len(f.one) || r.Right > len(f.two) {
		return MiddleEdge{}, errors.E(errors.Invalid,
			fmt.Sprintf("align: region %v outside the %dx%d grid", r, len(f.one)+1, len(f.two)+1))
	}
	if r.Left == r.Right {
		return MiddleEdge{Row: r.Top, Col: r.Left, Move: Vertical}, nil
	}
	var (
		mid   = (r.Left + r.Right) / 2
		rows  = r.Bottom - r.Top + 1
		indel = f.indel
		fwd   = f.fwd[:rows]
		bwd   = f.bwd[:rows]
		tmp   = f.tmp[:rows]
	)

	// Forward sweep: fwd[k] is the best score from (Top, Left) to (Top+k, mid).
	for k := range fwd {
		fwd[k] = k * indel
	}
	for c := r.Left + 1; c <= mid; c++ {
		y := f.two[c-1]
		tmp[0] = fwd[0] + indel
		for k := 1; k < rows; k++ {
			tmp[k] = max3(fwd[k]+indel, tmp[k-1]+indel, fwd[k-1]+f.model.Score(f.one[r.Top+k-1], y))
		}
		fwd, tmp = tmp, fwd
	}

	// Backward sweep: bwd[k] is the best score from (Top+k, mid+1) to
	// (Bottom, Right).
	for k := range bwd {
		bwd[k] = (rows - 1 - k) * indel
	}
	for c := r.Right - 1; c > mid; c-- {
		y := f.two[c]
		tmp[rows-1] = bwd[rows-1] + indel
		for k := rows - 2; k >= 0; k-- {
			tmp[k] = max3(bwd[k]+indel, tmp[k+1]+indel, bwd[k+1]+f.model.Score(f.one[r.Top+k], y))
		}
		bwd, tmp = tmp, bwd
	}

	// One more forward step into column mid+1, remembering the move.  Ties go
	// to the later of vertical, horizontal and diagonal.
	var (
		past  = f.past[:rows]
		moves = f.moves[:rows]
		y     = f.two[mid]
	)
	past[0], moves[0] = fwd[0]+indel, Horizontal
	for k := 1; k < rows; k++ {
		past[k], moves[k] = past[k-1]+indel, Vertical
		if h := fwd[k] + indel; h >= past[k] {
			past[k], moves[k] = h, Horizontal
		}
		if d := fwd[k-1] + f.model.Score(f.one[r.Top+k-1], y); d >= past[k] {
			past[k], moves[k] = d, Diagonal
		}
	}

	best, row := past[0]+bwd[0], 0
	for k := 1; k < rows; k++ {
		if s := past[k] + bwd[k]; s > best {
			best, row = s, k
		}
	}
	e := MiddleEdge{Row: r.Top + row, Col: mid, Move: moves[row]}
	if e.Move == Diagonal {
		e.Row--
	}
	log.Debug.Printf("align: middle edge of %v is %v, score %d", r, e, best)
	return e, nil
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// FindMiddleEdge returns an edge of an optimal global alignment path of one
// against two that crosses the middle column of the full grid.
func FindMiddleEdge(one, two []byte, model scoring.Model, indel int) (MiddleEdge, error) {
	f, err := NewMiddleEdgeFinder(one, two, model, indel)
	if err != nil {
		return MiddleEdge{}, err
	}
	return f.Find(Region{Bottom: len(one), Right: len(two)})
}

// LinearSpace computes an optimal global alignment of one against two by
// divide and conquer over middle edges.  The result scores the same as Global
// with the same indel penalty, though ties may be resolved along a different
// path.  Apart from the output it uses space linear in len(one).
func LinearSpace(one, two []byte, model scoring.Model, indel int) (Alignment, error) {
	f, err := NewMiddleEdgeFinder(one, two, model, indel)
	if err != nil {
		return Alignment{}, err
	}
	l := linear{f: f}
	if err := l.align(Region{Bottom: len(one), Right: len(two)}); err != nil {
		return Alignment{}, err
	}
	return Alignment{
		Score:  l.score,
		One:    string(l.one),
		Two:    string(l.two),
		OneEnd: len(one),
		TwoEnd: len(two),
		oneLen: len(one),
		twoLen: len(two),
	}, nil
}

// linear accumulates the columns of a linear-space alignment in reading
// order.
type linear struct {
	f        *MiddleEdgeFinder
	one, two []byte
	score    int
}

func (l *linear) column(x, y byte, score int) {
	l.one = append(l.one, x)
	l.two = append(l.two, y)
	l.score += score
}

func (l *linear) align(r Region) error {
	f := l.f
	if r.Left == r.Right {
		for i := r.Top; i < r.Bottom; i++ {
			l.column(f.one[i], Gap, f.indel)
		}
		return nil
	}
	if r.Top == r.Bottom {
		for j := r.Left; j < r.Right; j++ {
			l.column(Gap, f.two[j], f.indel)
		}
		return nil
	}
	e, err := f.Find(r)
	if err != nil {
		return err
	}
	if err := l.align(Region{Top: r.Top, Left: r.Left, Bottom: e.Row, Right: e.Col}); err != nil {
		return err
	}
	switch e.Move {
	case Horizontal:
		l.column(Gap, f.two[e.Col], f.indel)
	case Vertical:
		l.column(f.one[e.Row], Gap, f.indel)
	default:
		l.column(f.one[e.Row], f.two[e.Col], f.model.Score(f.one[e.Row], f.two[e.Col]))
	}
	row, col := e.Next()
	return l.align(Region{Top: row, Left: col, Bottom: r.Bottom, Right: r.Right})
}
