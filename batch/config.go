// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package batch

import (
	"bytes"
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/bioalign/align"
	"github.com/grailbio/bioalign/scoring"
	perrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML description of a batch run.  For example:
//
//	mode: local
//	matrix: pam250
//	indel: -5
//	parallelism: 8
//	sequences: proteins.fa.gz
//	pairs:
//	  - {one: MEANLY, two: PENALTY}
//	pairs_file: more_pairs.tsv
//	output: results.tsv
//
// Unset penalties take their values from align.DefaultOpts.  With neither
// pairs nor pairs_file, every sequence is aligned against every later one.
type Config struct {
	Mode align.Mode `yaml:"mode"`

	// Matrix is a builtin matrix name (see scoring.BuiltinNames) or the path of
	// a matrix file.
	Matrix    string `yaml:"matrix"`
	Match     *int   `yaml:"match"`
	Mismatch  *int   `yaml:"mismatch"`
	Indel     *int   `yaml:"indel"`
	GapOpen   *int   `yaml:"gap_open"`
	GapExtend *int   `yaml:"gap_extend"`

	Parallelism int `yaml:"parallelism"`

	// Sequences is the path of a FASTA file holding every named sequence.
	Sequences string      `yaml:"sequences"`
	Pairs     []PairNames `yaml:"pairs"`
	// PairsFile is the path of a TSV file with "one" and "two" columns.
	PairsFile string `yaml:"pairs_file"`
	// Output is the path of the result TSV; empty or "-" means stdout.
	Output string `yaml:"output"`
}

// PairNames names the two sequences of one alignment.
type PairNames struct {
	One string `yaml:"one" tsv:"one"`
	Two string `yaml:"two" tsv:"two"`
}

// ParseConfig decodes a YAML config.  Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Config{}, perrors.New("batch: empty config")
		}
		return Config{}, perrors.Wrap(err, "batch: parse config")
	}
	if c.Sequences == "" {
		return Config{}, perrors.New("batch: config names no sequences file")
	}
	return c, nil
}

// LoadConfig reads and decodes the YAML config at path.
func LoadConfig(ctx context.Context, path string) (Config, error) {
	data, err := file.ReadFile(ctx, path)
	if err != nil {
		return Config{}, err
	}
	c, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, perrors.Wrap(err, path)
	}
	return c, nil
}

// Opts resolves the scoring model and penalties of c.
func (c Config) Opts(ctx context.Context) (Opts, error) {
	opts := DefaultOpts
	opts.Align.Mode = c.Mode
	if c.Parallelism > 0 {
		opts.Parallelism = c.Parallelism
	}
	for _, p := range []struct {
		src *int
		dst *int
	}{
		{c.Indel, &opts.Align.Indel},
		{c.GapOpen, &opts.Align.GapOpen},
		{c.GapExtend, &opts.Align.GapExtend},
	} {
		if p.src != nil {
			*p.dst = *p.src
		}
	}
	if (c.Match == nil) != (c.Mismatch == nil) {
		return Opts{}, errors.E(errors.Invalid, "batch: match and mismatch must be set together")
	}
	if c.Match != nil {
		opts.Align.MatchMismatch = &scoring.MatchMismatch{Match: *c.Match, Mismatch: *c.Mismatch}
	}
	if c.Matrix != "" {
		m, err := LoadMatrix(ctx, c.Matrix)
		if err != nil {
			return Opts{}, err
		}
		opts.Align.Matrix = m
	}
	// Surface a bad scoring configuration before any input is read.
	if _, err := opts.Align.Model(); err != nil {
		return Opts{}, err
	}
	return opts, nil
}

// LoadMatrix returns the builtin matrix called name or, if there is none,
// parses the matrix file at path name.
func LoadMatrix(ctx context.Context, name string) (*scoring.Matrix, error) {
	if m, err := scoring.Builtin(name); err == nil {
		return m, nil
	}
	data, err := file.ReadFile(ctx, name)
	if err != nil {
		return nil, errors.E(err, "batch: substitution matrix", name)
	}
	m, err := scoring.ParseMatrix(bytes.NewReader(data))
	if err != nil {
		return nil, perrors.Wrap(err, name)
	}
	return m, nil
}
