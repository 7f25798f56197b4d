// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lattice

import (
	"fmt"
	"unicode/utf8"

	"github.com/numtypes/numtypes/common/predicate"
)

// maxRuneBits is the width beyond which every valid code point fits.
const maxRuneBits = 21

var charTemplate = predicate.NewTemplate("Char",
	func(bits uint) (predicate.Predicate, error) {
		return charPredicate(bits), nil
	})

// CharBits returns the predicate for a one-character string whose code
// point fits in the given number of bits.
func CharBits(bits int) (predicate.Predicate, error) {
	if bits < 1 {
		return nil, predicate.ParameterErrorf("Char", 1, "bit width must be a positive integer, got %d", bits)
	}
	return charTemplate.Specialize(uint(bits))
}

// charPredicate with bits 0 places no width restriction (the base Char
// entry).
func charPredicate(bits uint) predicate.Predicate {
	name := "Char"
	if bits > 0 {
		name = fmt.Sprintf("Char[%d]", bits)
	}
	return predicate.Func(name, func(v any) bool {
		s, ok := v.(string)
		if !ok || utf8.RuneCountInString(s) != 1 {
			return false
		}
		r, _ := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && len(s) != len(string(utf8.RuneError)) {
			return false
		}
		if bits == 0 || bits >= maxRuneBits {
			return true
		}
		return uint64(r) < uint64(1)<<bits
	})
}
