// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package boxed defines the capability surface for arbitrary-precision
// ("boxed") numbers, plus adapters for the math/big types and the
// driver's Decimal128. Every capability beyond the base Number
// interface is optional and absent by default: a predicate that needs
// a capability the box does not declare fails closed rather than
// assuming unlimited precision.
package boxed

import "math/big"

// Number is a boxed numeric value. String must return the exact
// decimal (or rational) form of the value; Rat must return the exact
// rational value, reporting ok=false when the box holds a value with
// no rational form (NaN or an infinity).
type Number interface {
	String() string
	Rat() (r *big.Rat, ok bool)
}

// PrecisionReporter declares how many decimal digits the box
// guarantees to carry without rounding.
type PrecisionReporter interface {
	Precision() (digits int, ok bool)
}

// NaNReporter declares explicit NaN status.
type NaNReporter interface {
	IsNaN() bool
}

// InfReporter declares explicit infinity status: +1, -1, or 0 for a
// finite value.
type InfReporter interface {
	InfSign() int
}

// FractionalReporter declares whether the box can hold a non-integer
// value at all. Adapters answer this with a runtime probe (construct
// 1.2, see whether it survives) rather than a type tag.
type FractionalReporter interface {
	SupportsFractional() bool
}

// UnboundedPrecision is the digit capacity reported by boxes whose
// arithmetic never rounds (big.Int, big.Rat).
const UnboundedPrecision = int(^uint32(0) >> 1)

// Precision returns the declared digit capacity of n, failing closed
// when n does not report one.
func Precision(n Number) (int, bool) {
	if p, ok := n.(PrecisionReporter); ok {
		return p.Precision()
	}
	return 0, false
}

// IsNaN reports whether n explicitly declares NaN status and is NaN.
func IsNaN(n Number) bool {
	if r, ok := n.(NaNReporter); ok {
		return r.IsNaN()
	}
	return false
}

// InfSign reports the declared infinity sign of n, 0 when finite or
// undeclared.
func InfSign(n Number) int {
	if r, ok := n.(InfReporter); ok {
		return r.InfSign()
	}
	return 0
}

// SupportsFractional reports whether n declares fractional support.
func SupportsFractional(n Number) bool {
	if r, ok := n.(FractionalReporter); ok {
		return r.SupportsFractional()
	}
	return false
}
