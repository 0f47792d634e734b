// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scoring

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Model scores the alignment of two symbols.
type Model interface {
	// Score returns the cost of aligning x with y.  Both symbols must have been
	// accepted by Check; the result for other symbols is unspecified.
	Score(x, y byte) int

	// Check returns an errors.NotExist error naming the first symbol in seq
	// that the model cannot score.
	Check(seq []byte) error
}

// MatchMismatch scores a pair of symbols by equality: Match if they are the
// same symbol, Mismatch otherwise.
type MatchMismatch struct {
	Match    int
	Mismatch int
}

// Score implements Model.
func (m MatchMismatch) Score(x, y byte) int {
	if x == y {
		return m.Match
	}
	return m.Mismatch
}

// Check implements Model.  Every symbol can be compared for equality.
func (m MatchMismatch) Check(seq []byte) error { return nil }

func (m MatchMismatch) validate() error {
	if m.Match < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("scoring: match bonus must not be negative, got %d", m.Match))
	}
	if m.Mismatch > 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("scoring: mismatch penalty must not be positive, got %d", m.Mismatch))
	}
	return nil
}

// String returns e.g. "match=1,mismatch=-2".
func (m MatchMismatch) String() string {
	return fmt.Sprintf("match=%d,mismatch=%d", m.Match, m.Mismatch)
}

// New returns the Model described by exactly one of matrix and mm.  It returns
// an errors.Invalid error if both or neither are set, or if mm carries a
// positive mismatch penalty or a negative match bonus.
func New(matrix *Matrix, mm *MatchMismatch) (Model, error) {
	switch {
	case matrix != nil && mm != nil:
		return nil, errors.E(errors.Invalid, "scoring: both a substitution matrix and match/mismatch scores were supplied")
	case matrix != nil:
		return matrix, nil
	case mm != nil:
		if err := mm.validate(); err != nil {
			return nil, err
		}
		return *mm, nil
	}
	return nil, errors.E(errors.Invalid, "scoring: one of a substitution matrix or match/mismatch scores is required")
}
