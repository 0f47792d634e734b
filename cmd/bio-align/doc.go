// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-align computes optimal pairwise alignments of protein or nucleotide
sequences.

Each alignment subcommand takes two sequences.  They are given literally on the
command line or, with -fasta, as the names of records in a (optionally gzipped)
FASTA file:

	bio-align global -matrix blosum62 PLEASANTLY MEANLY
	bio-align local -matrix pam250 -fasta proteins.fa.gz seq1 seq2
	bio-align fitting GTAGGCTTAAGGTTA TAGATA
	bio-align affine -matrix blosum62 -gap-open -11 -gap-extend -1 PRTEINS PRTWPSEIN

-matrix names a builtin substitution matrix (blosum62, pam250) or the path of a
matrix file whose first line lists the alphabet and whose other lines each hold
a symbol followed by its scores.  -scores match,mismatch scores by equality
instead.

The alignment subcommands print the score, the two gapped sequences and the
CIGAR of the second sequence against the first.  "edit", "lcs" and
"middle-edge" print a distance, a subsequence and an edge respectively.

"dag" reads a longest-path problem (source id, sink id, then one
"from->to:weight" edge per line) and prints the path weight and nodes.

"batch" runs every pair listed in a YAML config and writes a TSV table; see
package github.com/grailbio/bioalign/batch for the config format.
*/
package main
