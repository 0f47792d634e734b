// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/bioalign/align"
	"v.io/x/lib/cmdline"
)

func main() {
	shutdown := grail.Init()
	cmdline.HideGlobalFlagsExcept()
	root := &cmdline.Command{
		Name:     "bio-align",
		Short:    "Pairwise sequence alignment",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdAlign(align.ModeGlobal, "Align two sequences end to end"),
			newCmdAlign(align.ModeLocal, "Align the best-scoring substrings of two sequences"),
			newCmdAlign(align.ModeFitting, "Align all of a short sequence against a substring of a long one"),
			newCmdAlign(align.ModeOverlap, "Align a suffix of the first sequence against a prefix of the second"),
			newCmdAlign(align.ModeAffine, "Align two sequences end to end with affine gap penalties"),
			newCmdAlign(align.ModeLinearSpace, "Align two sequences end to end in linear space"),
			newCmdEdit(),
			newCmdLCS(),
			newCmdMiddleEdge(),
			newCmdDAG(),
			newCmdBatch(),
		},
	}
	env := cmdline.EnvFromOS()
	err := cmdline.ParseAndRun(root, env, os.Args[1:])
	shutdown()
	os.Exit(cmdline.ExitCode(err, env.Stderr))
}
