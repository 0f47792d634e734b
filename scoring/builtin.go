// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scoring

import (
	"bytes"
	_ "embed" // for go:embed
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

var (
	//go:embed data/blosum62.txt
	blosum62Text []byte
	//go:embed data/pam250.txt
	pam250Text []byte

	builtinText = map[string][]byte{
		"blosum62": blosum62Text,
		"pam250":   pam250Text,
	}

	builtinOnce sync.Once
	builtins    map[string]*Matrix
)

func loadBuiltins() {
	builtins = map[string]*Matrix{}
	for name, text := range builtinText {
		m, err := ParseMatrix(bytes.NewReader(text))
		if err != nil {
			log.Panicf("scoring: embedded matrix %s: %v", name, err)
		}
		builtins[name] = m
	}
}

// Builtin returns one of the bundled substitution matrices by
// case-insensitive name ("blosum62" or "pam250").
func Builtin(name string) (*Matrix, error) {
	builtinOnce.Do(loadBuiltins)
	m, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("scoring: no builtin matrix %q (have %s)", name, strings.Join(BuiltinNames(), ", ")))
	}
	return m, nil
}

// BuiltinNames lists the names accepted by Builtin.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinText))
	for name := range builtinText {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustBuiltin(name string) *Matrix {
	m, err := Builtin(name)
	if err != nil {
		log.Panicf("scoring: %v", err)
	}
	return m
}

// BLOSUM62 returns the BLOSUM62 matrix over the twenty standard amino acids.
func BLOSUM62() *Matrix { return mustBuiltin("blosum62") }

// PAM250 returns the PAM250 matrix over the twenty standard amino acids.
func PAM250() *Matrix { return mustBuiltin("pam250") }
