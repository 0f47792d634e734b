// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioalign/scoring"
)

// Mode names an alignment flavor run by Run.
type Mode int

const (
	ModeGlobal Mode = iota
	ModeLocal
	ModeFitting
	ModeOverlap
	ModeAffine
	ModeLinearSpace
)

var modeNames = [...]string{"global", "local", "fitting", "overlap", "affine", "linear"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name, as printed by Mode.String, to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, errors.E(errors.Invalid, fmt.Sprintf("align: unknown mode %q, want one of %s", s, strings.Join(modeNames[:], ", ")))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Opts configures Run.
type Opts struct {
	Mode Mode
	// Indel is the linear gap penalty of ModeGlobal, ModeLocal and
	// ModeLinearSpace.  Fitting and overlap use their fixed penalties.
	Indel int
	// GapOpen and GapExtend are the affine gap penalties of ModeAffine.
	GapOpen, GapExtend int
	// Exactly one of Matrix and MatchMismatch must be set, except that
	// ModeFitting and ModeOverlap fall back to their own scalar scores when
	// neither is.
	Matrix        *scoring.Matrix
	MatchMismatch *scoring.MatchMismatch
}

// DefaultOpts sets the default values to Opts.  A scoring model still has to
// be supplied.
var DefaultOpts = Opts{
	Mode:      ModeGlobal,
	Indel:     DefaultIndel,
	GapOpen:   -11,
	GapExtend: -1,
}

// Model returns the scoring model opts describe.  It is nil, with no error,
// for a fitting or overlap alignment that uses its default scores.
func (o Opts) Model() (scoring.Model, error) {
	if o.Matrix == nil && o.MatchMismatch == nil && (o.Mode == ModeFitting || o.Mode == ModeOverlap) {
		return nil, nil
	}
	return scoring.New(o.Matrix, o.MatchMismatch)
}

// Run aligns one against two as opts direct.
func Run(one, two []byte, opts Opts) (Alignment, error) {
	model, err := opts.Model()
	if err != nil {
		return Alignment{}, err
	}
	switch opts.Mode {
	case ModeGlobal:
		return align(one, two, model, opts.Indel, GlobalPolicy)
	case ModeLocal:
		return align(one, two, model, opts.Indel, LocalPolicy)
	case ModeFitting:
		return Fitting(one, two, model)
	case ModeOverlap:
		return Overlap(one, two, model)
	case ModeAffine:
		return Affine(one, two, opts.GapOpen, opts.GapExtend, model)
	case ModeLinearSpace:
		return LinearSpace(one, two, model, opts.Indel)
	}
	return Alignment{}, errors.E(errors.Invalid, fmt.Sprintf("align: unknown mode %v", opts.Mode))
}
