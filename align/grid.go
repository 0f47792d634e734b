// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioalign/scoring"
)

// Grid is the quadratic-space alignment table for a linear gap cost.  Every
// cell is computed exactly once, in row-major order, by NewGrid and never
// mutated afterwards.  A Grid is owned by one goroutine.
type Grid struct {
	one, two []byte
	model    scoring.Model
	indel    int
	policy   Policy

	nCol   int    // len(two)+1
	scores []int  // row-major (len(one)+1)*(len(two)+1) array.
	moves  []Move // backtrack tags, same layout as scores.
	sink   Tag    // tag of cell (n, m); a Jump when the path exits early.
}

func checkInputs(one, two []byte, model scoring.Model) error {
	if model == nil {
		return errors.E(errors.Invalid, "align: no scoring model")
	}
	if err := model.Check(one); err != nil {
		return errors.E(err, "align: first sequence")
	}
	if err := model.Check(two); err != nil {
		return errors.E(err, "align: second sequence")
	}
	return nil
}

func checkIndel(indel int) error {
	if indel > 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("align: indel penalty must not be positive, got %d", indel))
	}
	return nil
}

// NewGrid fills the alignment grid of one (down the rows) against two (across
// the columns).  indel is the score of one gap symbol and must be <= 0.  It
// returns an errors.Invalid error for a bad configuration and an
// errors.NotExist error if model cannot score a symbol of either sequence.
func NewGrid(one, two []byte, model scoring.Model, indel int, policy Policy) (*Grid, error) {
	if err := checkIndel(indel); err != nil {
		return nil, err
	}
	if err := checkInputs(one, two, model); err != nil {
		return nil, err
	}
	n, m := len(one), len(two)
	log.Debug.Printf("align: filling %dx%d grid, policy %v, indel %d", n+1, m+1, policy, indel)
	g := &Grid{
		one:    one,
		two:    two,
		model:  model,
		indel:  indel,
		policy: policy,
		nCol:   m + 1,
		scores: make([]int, (n+1)*(m+1)),
		moves:  make([]Move, (n+1)*(m+1)),
	}
	g.fill()
	return g, nil
}

// fill computes every cell.  Cell (i, j) depends only on (i-1, j), (i, j-1) and
// (i-1, j-1).
func (g *Grid) fill() {
	var (
		n, m    = len(g.one), len(g.two)
		p       = g.policy
		indel   = g.indel
		taxiOut = p.taxiOut()
		restart = p.restarts()

		// Best cell the path may leave from for the sink, in row-major order.
		exitSet          bool
		exitScore        int
		exitRow, exitCol int
	)
	consider := func(i, j, score int) {
		if p.exitable(i, j, n, m) && (!exitSet || score > exitScore) {
			exitSet, exitScore, exitRow, exitCol = true, score, i, j
		}
	}

	// Row 0.  The source cell (0, 0) is left as (0, None).
	for j := 1; j <= m; j++ {
		if p.TaxiInHorizontal {
			g.moves[j] = Source
		} else {
			g.scores[j], g.moves[j] = j*indel, Horizontal
		}
	}
	if taxiOut {
		for j := 0; j <= m; j++ {
			consider(0, j, g.scores[j])
		}
	}

	for i := 1; i <= n; i++ {
		row := g.scores[i*g.nCol : (i+1)*g.nCol]
		prev := g.scores[(i-1)*g.nCol : i*g.nCol]
		moves := g.moves[i*g.nCol : (i+1)*g.nCol]
		if p.TaxiInVertical {
			row[0], moves[0] = 0, Source
		} else {
			row[0], moves[0] = i*indel, Vertical
		}
		if taxiOut {
			consider(i, 0, row[0])
		}
		x := g.one[i-1]
		for j := 1; j <= m; j++ {
			best, move := row[j-1]+indel, Horizontal
			if v := prev[j] + indel; v > best {
				best, move = v, Vertical
			}
			if d := prev[j-1] + g.model.Score(x, g.two[j-1]); d > best {
				best, move = d, Diagonal
			}
			if restart && best < 0 {
				best, move = 0, Source
			}
			row[j], moves[j] = best, move
			if taxiOut {
				consider(i, j, best)
			}
		}
	}

	sink := n*g.nCol + m
	g.sink = Tag{Move: g.moves[sink]}
	if exitSet && exitScore > g.scores[sink] {
		g.scores[sink] = exitScore
		g.sink = Tag{Move: Jump, Row: exitRow, Col: exitCol}
	}
}

// Rows returns the number of rows, len(one)+1.
func (g *Grid) Rows() int { return len(g.one) + 1 }

// Cols returns the number of columns, len(two)+1.
func (g *Grid) Cols() int { return g.nCol }

// Score returns the optimal alignment score, the value of the sink cell.
func (g *Grid) Score() int { return g.scores[len(g.scores)-1] }

// Cell returns the optimal score and backtrack tag of cell (i, j).
func (g *Grid) Cell(i, j int) (int, Tag) {
	k := i*g.nCol + j
	if i == len(g.one) && j == len(g.two) {
		return g.scores[k], g.sink
	}
	return g.scores[k], Tag{Move: g.moves[k]}
}

// String renders the grid as a table of "score/tag" cells, for debugging.
func (g *Grid) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "\t\t")
	for _, c := range g.two {
		fmt.Fprintf(w, "%c\t", c)
	}
	fmt.Fprintln(w)
	for i := 0; i < g.Rows(); i++ {
		if i == 0 {
			fmt.Fprint(w, "\t")
		} else {
			fmt.Fprintf(w, "%c\t", g.one[i-1])
		}
		for j := 0; j < g.nCol; j++ {
			score, tag := g.Cell(i, j)
			fmt.Fprintf(w, "%d/%v\t", score, tag)
		}
		fmt.Fprintln(w)
	}
	w.Flush() // nolint: errcheck
	return sb.String()
}
