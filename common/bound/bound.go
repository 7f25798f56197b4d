// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bound computes exact inclusive numeric bounds for
// parameterized numeric layouts (bit widths, digit counts, exponent
// widths, scales). All intermediate arithmetic is done in math/big so
// the bounds themselves never suffer the precision loss they exist to
// guard against.
package bound

import (
	"math/big"
)

// Bound is a pair of optional exact boundaries with independent
// exclusivity flags. A nil side is unbounded. A Bound with both sides
// nil contains everything. An inverted Bound (Min > Max) contains
// nothing, which is a valid (always-rejecting) configuration rather
// than an error.
type Bound struct {
	Min          *big.Rat
	Max          *big.Rat
	MinExclusive bool
	MaxExclusive bool
}

// Contains reports whether the exact value is inside the bound.
// Infinite values are described by infSign (-1 or +1) with a nil rat;
// finite values carry infSign 0. NaN handling is the caller's
// responsibility: a NaN must be rejected before consulting a Bound,
// since NaN is not ordered against anything.
func (b Bound) Contains(rat *big.Rat, infSign int) bool {
	if infSign > 0 {
		return b.Max == nil
	}
	if infSign < 0 {
		return b.Min == nil
	}
	if rat == nil {
		return false
	}
	if b.Min != nil {
		switch rat.Cmp(b.Min) {
		case -1:
			return false
		case 0:
			if b.MinExclusive {
				return false
			}
		}
	}
	if b.Max != nil {
		switch rat.Cmp(b.Max) {
		case 1:
			return false
		case 0:
			if b.MaxExclusive {
				return false
			}
		}
	}
	return true
}

// String renders the bound in interval notation for diagnostics.
func (b Bound) String() string {
	left, right := "[", "]"
	lo, hi := "-inf", "+inf"
	if b.Min != nil {
		lo = b.Min.RatString()
	}
	if b.Max != nil {
		hi = b.Max.RatString()
	}
	if b.MinExclusive || b.Min == nil {
		left = "("
	}
	if b.MaxExclusive || b.Max == nil {
		right = ")"
	}
	return left + lo + "," + hi + right
}
