// Package fasta reads FASTA files into memory as ordered records.  FASTA
// files consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >seq1 human myoglobin fragment
// PLEASA
// NTLY
// >seq2
// MEANLY
//
// The sequence name is the stretch of characters after '>' up to the first
// space; the rest of the header line is kept as the description.
package fasta

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Record is one named sequence.
type Record struct {
	Name        string
	Description string
	Seq         []byte
}

// Fasta is the contents of a FASTA file.
type Fasta interface {
	// Seq returns the sequence with the given name.
	Seq(name string) ([]byte, error)

	// Records returns all records in the order of appearance in the file.
	Records() []Record

	// SeqNames returns the names of all sequences, in the order of appearance in
	// the FASTA file.
	SeqNames() []string
}

type fasta struct {
	records []Record
	byName  map[string]int
}

// New reads all FASTA data from the given reader into memory.  It is an error
// for the data to hold no sequence, for sequence data to precede the first
// header, or for two sequences to share a name.
func New(r io.Reader) (Fasta, error) {
	f := &fasta{byName: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var (
		cur    *Record
		seq    strings.Builder
		lineno int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		if _, ok := f.byName[cur.Name]; ok {
			return errors.Errorf("duplicate sequence name %q", cur.Name)
		}
		cur.Seq = []byte(seq.String())
		f.byName[cur.Name] = len(f.records)
		f.records = append(f.records, *cur)
		seq.Reset()
		return nil
	}
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if err := flush(); err != nil {
				return nil, err
			}
			header := line[1:]
			cur = &Record{Name: header}
			if i := strings.IndexAny(header, " \t"); i >= 0 {
				cur.Name, cur.Description = header[:i], strings.TrimSpace(header[i+1:])
			}
			if cur.Name == "" {
				return nil, errors.Errorf("malformed FASTA file: line %d: empty sequence name", lineno)
			}
			continue
		}
		if cur == nil {
			return nil, errors.Errorf("malformed FASTA file: line %d: sequence data before the first header", lineno)
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(f.records) == 0 {
		return nil, errors.New("malformed FASTA file: no sequences")
	}
	return f, nil
}

// NewFromPath is a wrapper for New that takes a path instead of an
// io.Reader.  Paths ending in .gz are decompressed.
func NewFromPath(ctx context.Context, path string) (fa Fasta, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	if fa, err = New(reader); err != nil {
		err = errors.Wrap(err, path)
	}
	return
}

// Seq implements Fasta.Seq().
func (f *fasta) Seq(name string) ([]byte, error) {
	i, ok := f.byName[name]
	if !ok {
		return nil, errors.Errorf("sequence not found: %s", name)
	}
	return f.records[i].Seq, nil
}

// Records implements Fasta.Records().
func (f *fasta) Records() []Record {
	return f.records
}

// SeqNames implements Fasta.SeqNames().
func (f *fasta) SeqNames() []string {
	names := make([]string, len(f.records))
	for i, r := range f.records {
		names[i] = r.Name
	}
	return names
}
