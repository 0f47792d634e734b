// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"

	"github.com/grailbio/hts/sam"
)

// Gap is the symbol inserted into an aligned sequence opposite a symbol of the
// other sequence.
const Gap = '-'

// Alignment is the result of aligning two sequences.  One and Two have equal
// length; stripping Gap from them yields one[OneStart:OneEnd] and
// two[TwoStart:TwoEnd] respectively.
type Alignment struct {
	Score    int
	One, Two string

	// Bounds of the aligned substrings, 0-based half-open.
	OneStart, OneEnd int
	TwoStart, TwoEnd int

	// Full input lengths, for soft clips in Cigar.
	oneLen, twoLen int
}

// Cigar describes the alignment of the second sequence (the query) against
// the first (the reference).  A gap in One is an insertion and a gap in Two is
// a deletion.  Unaligned ends of the second sequence are soft clipped.
func (a Alignment) Cigar() sam.Cigar {
	var (
		cigar sam.Cigar
		op    sam.CigarOpType
		n     int
	)
	push := func(t sam.CigarOpType, k int) {
		if k == 0 {
			return
		}
		if n > 0 && t == op {
			n += k
			return
		}
		if n > 0 {
			cigar = append(cigar, sam.NewCigarOp(op, n))
		}
		op, n = t, k
	}
	push(sam.CigarSoftClipped, a.TwoStart)
	for i := 0; i < len(a.One); i++ {
		switch {
		case a.One[i] == Gap:
			push(sam.CigarInsertion, 1)
		case a.Two[i] == Gap:
			push(sam.CigarDeletion, 1)
		default:
			push(sam.CigarMatch, 1)
		}
	}
	push(sam.CigarSoftClipped, a.twoLen-a.TwoEnd)
	if n > 0 {
		cigar = append(cigar, sam.NewCigarOp(op, n))
	}
	return cigar
}

// Identity returns the fraction of alignment columns holding the same symbol
// on both sides.  It is 0 for an empty alignment.
func (a Alignment) Identity() float64 {
	if len(a.One) == 0 {
		return 0
	}
	same := 0
	for i := 0; i < len(a.One); i++ {
		if a.One[i] == a.Two[i] && a.One[i] != Gap {
			same++
		}
	}
	return float64(same) / float64(len(a.One))
}

func (a Alignment) String() string {
	return fmt.Sprintf("score=%d one[%d:%d]=%s two[%d:%d]=%s",
		a.Score, a.OneStart, a.OneEnd, a.One, a.TwoStart, a.TwoEnd, a.Two)
}

// builder accumulates alignment columns from the sink back to the source.
type builder struct {
	one, two []byte
}

func (b *builder) column(x, y byte) {
	b.one = append(b.one, x)
	b.two = append(b.two, y)
}

// finish reverses the accumulated columns into reading order.
func (b *builder) finish(score int, oneLen, twoLen int) Alignment {
	reverse(b.one)
	reverse(b.two)
	return Alignment{
		Score:  score,
		One:    string(b.one),
		Two:    string(b.two),
		oneLen: oneLen,
		twoLen: twoLen,
	}
}

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
