// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scoring

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/grailbio/base/errors"
)

// Matrix is a substitution matrix: a total mapping from (symbol, symbol) to an
// integer score over a fixed alphabet.  A Matrix is immutable once built and
// safe for concurrent use.
type Matrix struct {
	alphabet []byte
	// index maps a symbol to its row/column, or -1 if the symbol is not in the
	// alphabet.
	index  [256]int16
	scores []int // row-major len(alphabet)*len(alphabet) array.
}

// NewMatrix builds a matrix over the given alphabet.  scores[i][j] is the cost
// of aligning alphabet[i] with alphabet[j].
func NewMatrix(alphabet string, scores [][]int) (*Matrix, error) {
	m := &Matrix{alphabet: []byte(alphabet)}
	for i := range m.index {
		m.index[i] = -1
	}
	n := len(alphabet)
	if n == 0 {
		return nil, errors.E(errors.Invalid, "scoring: empty substitution matrix alphabet")
	}
	if len(scores) != n {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("scoring: alphabet has %d symbols but matrix has %d rows", n, len(scores)))
	}
	for i := 0; i < n; i++ {
		sym := alphabet[i]
		if m.index[sym] >= 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("scoring: duplicate symbol %q in alphabet", sym))
		}
		m.index[sym] = int16(i)
	}
	m.scores = make([]int, n*n)
	for i, row := range scores {
		if len(row) != n {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("scoring: row %q has %d scores, want %d", alphabet[i], len(row), n))
		}
		copy(m.scores[i*n:], row)
	}
	return m, nil
}

// Alphabet returns the symbols of the matrix in row order.
func (m *Matrix) Alphabet() string { return string(m.alphabet) }

// Contains reports whether sym is part of the alphabet.
func (m *Matrix) Contains(sym byte) bool { return m.index[sym] >= 0 }

// Score implements Model.
func (m *Matrix) Score(x, y byte) int {
	return m.scores[int(m.index[x])*len(m.alphabet)+int(m.index[y])]
}

// Lookup returns the cost of aligning x with y, or an errors.NotExist error if
// either symbol is absent from the matrix.
func (m *Matrix) Lookup(x, y byte) (int, error) {
	for _, sym := range [2]byte{x, y} {
		if m.index[sym] < 0 {
			return 0, errors.E(errors.NotExist, fmt.Sprintf("scoring: symbol %q is not in the substitution matrix", sym))
		}
	}
	return m.Score(x, y), nil
}

// Check implements Model.
func (m *Matrix) Check(seq []byte) error {
	for i, sym := range seq {
		if m.index[sym] < 0 {
			return errors.E(errors.NotExist,
				fmt.Sprintf("scoring: symbol %q at position %d is not in the substitution matrix (alphabet %q)", sym, i, m.alphabet))
		}
	}
	return nil
}

// Symmetric reports whether Score(x, y) == Score(y, x) for every pair.
func (m *Matrix) Symmetric() bool {
	n := len(m.alphabet)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.scores[i*n+j] != m.scores[j*n+i] {
				return false
			}
		}
	}
	return true
}

// String renders the matrix in the text format accepted by ParseMatrix.
func (m *Matrix) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 1, ' ', tabwriter.AlignRight)
	n := len(m.alphabet)
	fmt.Fprint(w, "\t")
	for _, sym := range m.alphabet {
		fmt.Fprintf(w, "%c\t", sym)
	}
	fmt.Fprintln(w)
	for i, sym := range m.alphabet {
		fmt.Fprintf(w, "%c\t", sym)
		for _, v := range m.scores[i*n : (i+1)*n] {
			fmt.Fprintf(w, "%d\t", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush() // nolint: errcheck
	return sb.String()
}
