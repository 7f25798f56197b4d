// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package predicate

import (
	"fmt"

	"github.com/numtypes/numtypes/common/boxed"
	"github.com/numtypes/numtypes/common/numeric"
)

// The atomic tests everything else composes from. All of them are
// process-lifetime singletons.
var (
	// NumberLike accepts anything recognized as a number in any form,
	// native or boxed, regardless of validity or precision.
	NumberLike = Func("NumLike", func(v any) bool {
		_, ok := numeric.Of(v)
		return ok
	})

	// IntegerShaped accepts values that equal their own truncation
	// exactly, with the boxed exact-form double check.
	IntegerShaped = Func("IntShaped", func(v any) bool {
		n, ok := numeric.Of(v)
		return ok && n.IsInteger()
	})

	// NaN accepts native NaN bit patterns and boxes that declare NaN
	// status.
	NaN = Func("NaN", func(v any) bool {
		n, ok := numeric.Of(v)
		return ok && n.IsNaN()
	})

	// Boxed accepts arbitrary-precision boxed numbers only.
	Boxed = Func("Boxed", func(v any) bool {
		n, ok := numeric.Of(v)
		return ok && n.IsBoxed()
	})

	// Native accepts machine-representation numbers only.
	Native = Func("Native", func(v any) bool {
		n, ok := numeric.Of(v)
		return ok && !n.IsBoxed()
	})

	// Fractional accepts boxed numbers whose type probes as capable of
	// holding non-integer values.
	Fractional = Func("Fractional", func(v any) bool {
		n, ok := numeric.Of(v)
		return ok && n.IsBoxed() && boxed.SupportsFractional(n.Boxed())
	})
)

// Infinite returns the infinity test for the given sign: +1 or -1 for
// a specific sign, 0 for either.
func Infinite(sign int) Predicate {
	name := "Inf"
	switch {
	case sign > 0:
		name = "Inf[+]"
	case sign < 0:
		name = "Inf[-]"
	}
	return Func(name, func(v any) bool {
		n, ok := numeric.Of(v)
		if !ok || !n.IsInf() {
			return false
		}
		return sign == 0 || n.InfSign() == sign
	})
}

// HasPrecision returns the test for a boxed number declaring at least
// the given decimal digit capacity. Values with no declared capacity
// fail closed.
func HasPrecision(digits int) Predicate {
	return Func(fmt.Sprintf("Precision[%d]", digits), func(v any) bool {
		n, ok := numeric.Of(v)
		if !ok || !n.IsBoxed() {
			return false
		}
		capacity, declared := boxed.Precision(n.Boxed())
		return declared && capacity >= digits
	})
}

// MaxDigits returns the test for a boxed value whose digit length, in
// expanded decimal notation, is at most the given number of digits.
// Exponent renderings count the digits of the value, not the notation.
func MaxDigits(digits int) Predicate {
	return Func(fmt.Sprintf("Digits[%d]", digits), func(v any) bool {
		n, ok := numeric.Of(v)
		if !ok || !n.IsBoxed() {
			return false
		}
		return numeric.DigitCount(n.ExactForm()) <= digits
	})
}
