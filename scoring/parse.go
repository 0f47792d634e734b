// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scoring

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseMatrix reads a substitution matrix in the text format described in the
// package comment.  Rows may appear in any order, but every header symbol
// must have exactly one row.  Blank lines are ignored.
func ParseMatrix(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	var (
		header []string
		rows   = map[byte][]int{}
		lineno int
	)
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if header == nil {
			for _, f := range fields {
				if len(f) != 1 {
					return nil, errors.Errorf("line %d: matrix header symbol %q is not a single character", lineno, f)
				}
			}
			header = fields
			continue
		}
		if len(fields[0]) != 1 {
			return nil, errors.Errorf("line %d: row symbol %q is not a single character", lineno, fields[0])
		}
		sym := fields[0][0]
		if _, ok := rows[sym]; ok {
			return nil, errors.Errorf("line %d: duplicate row for symbol %q", lineno, sym)
		}
		if len(fields)-1 != len(header) {
			return nil, errors.Errorf("line %d: row %q has %d scores, header has %d symbols",
				lineno, sym, len(fields)-1, len(header))
		}
		row := make([]int, len(header))
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad score for (%c, %s)", lineno, sym, header[i])
			}
			row[i] = v
		}
		rows[sym] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read substitution matrix")
	}
	if header == nil {
		return nil, errors.Errorf("empty substitution matrix")
	}
	alphabet := strings.Join(header, "")
	scores := make([][]int, len(header))
	for i := range header {
		row, ok := rows[alphabet[i]]
		if !ok {
			return nil, errors.Errorf("substitution matrix has no row for symbol %q", alphabet[i])
		}
		scores[i] = row
	}
	if len(rows) != len(header) {
		return nil, errors.Errorf("substitution matrix has %d rows for %d header symbols", len(rows), len(header))
	}
	return NewMatrix(alphabet, scores)
}
