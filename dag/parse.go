// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dag

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Problem is a graph together with the endpoints of the path sought.
type Problem struct {
	Source, Sink int
	Graph        *Graph
}

// Parse reads a longest-path problem: the source id on the first line, the
// sink id on the second, then one edge per line written "from->to:weight".
// Blank lines are ignored.
func Parse(r io.Reader) (Problem, error) {
	var (
		p       = Problem{Graph: &Graph{}}
		scanner = bufio.NewScanner(r)
		lineno  = 0
		header  = 0
	)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if header < 2 {
			id, err := strconv.Atoi(line)
			if err != nil {
				return Problem{}, errors.Wrapf(err, "dag: line %d: bad node id", lineno)
			}
			if header == 0 {
				p.Source = id
			} else {
				p.Sink = id
			}
			header++
			continue
		}
		arrow := strings.Index(line, "->")
		colon := strings.LastIndex(line, ":")
		if arrow < 0 || colon < arrow {
			return Problem{}, errors.Errorf("dag: line %d: want from->to:weight, got %q", lineno, line)
		}
		var ids [3]int
		for i, field := range []string{line[:arrow], line[arrow+2 : colon], line[colon+1:]} {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return Problem{}, errors.Wrapf(err, "dag: line %d", lineno)
			}
			ids[i] = v
		}
		if err := p.Graph.AddEdge(ids[0], ids[1], ids[2]); err != nil {
			return Problem{}, errors.Wrapf(err, "dag: line %d", lineno)
		}
	}
	if err := scanner.Err(); err != nil {
		return Problem{}, errors.Wrap(err, "dag: read")
	}
	if header < 2 {
		return Problem{}, errors.New("dag: missing source or sink line")
	}
	return p, nil
}
