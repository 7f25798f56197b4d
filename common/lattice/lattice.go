// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package lattice is the catalog of derived numeric predicates. Fixed
// entries are built once at package initialization; parameterized
// entries are built lazily per parameter tuple and cached by the
// composition engine.
//
// Throughout, "safe" means representable by the native machine types
// without loss of information, with the boundary taken from the probed
// platform limits rather than a constant.
package lattice

import (
	"fmt"
	"math/big"

	"github.com/numtypes/numtypes/common/bound"
	"github.com/numtypes/numtypes/common/platform"
	"github.com/numtypes/numtypes/common/predicate"
)

func safeIntBound() bound.Bound {
	l := platform.Get()
	return bound.Bound{
		Min: new(big.Rat).SetInt(l.MinSafeInteger),
		Max: new(big.Rat).SetInt(l.MaxSafeInteger),
	}
}

// Fixed lattice entries, one shared instance each for the process
// lifetime.
var (
	// NumLike accepts any numeric form at all.
	NumLike = predicate.NumberLike

	// NativeNum accepts native machine numbers only.
	NativeNum = predicate.And("NativeNum",
		predicate.NumberLike,
		predicate.Native,
	)

	// IntLike accepts integer-shaped numbers, native or boxed.
	IntLike = predicate.And("IntLike",
		predicate.NumberLike,
		predicate.IntegerShaped,
	)

	// NaN and Inf re-export the primitives under their catalog names.
	NaN    = predicate.NaN
	AnyInf = predicate.Infinite(0)

	// RealNum accepts numbers that are neither NaN nor infinite.
	RealNum = predicate.And("RealNum",
		predicate.NumberLike,
		predicate.Not("NotNaNOrInf", predicate.Or("NaNOrInf", predicate.NaN, AnyInf)),
	)

	// SafeInt accepts native integers inside the safe range. The range
	// bounds are inclusive but carry no slack: one past the boundary
	// truncates under native float rounding, so the boundary itself is
	// the last admissible value.
	SafeInt = predicate.And("SafeInt",
		NativeNum,
		IntLike,
		predicate.Range("SafeIntRange", safeIntBound()),
	)

	// nativeSafeRange is the carrier test for natives used by the
	// unsigned lattice branch: any native number within the safe
	// integer range.
	nativeSafeRange = predicate.And("NativeSafe",
		predicate.Native,
		predicate.Range("SafeIntRange", safeIntBound()),
	)

	// SafeFloat accepts native numbers that are in the safe range, or
	// the well-defined specials.
	SafeFloat = predicate.And("SafeFloat",
		NativeNum,
		predicate.Or("SafeOrSpecial",
			predicate.Range("SafeIntRange", safeIntBound()),
			predicate.NaN,
			AnyInf,
		),
	)

	// BoxedNum accepts boxed numbers that declare a precision
	// capability at all. Boxes that declare nothing fail closed.
	BoxedNum = predicate.And("BoxedNum",
		predicate.NumberLike,
		predicate.Boxed,
		predicate.HasPrecision(0),
	)

	// BoxedInt is a boxed number that is integer-shaped.
	BoxedInt = predicate.And("BoxedInt", BoxedNum, IntLike)

	// BoxedFloat is a boxed number whose type supports fractional
	// values (a probed capability, not a tag).
	BoxedFloat = predicate.And("BoxedFloat", BoxedNum, predicate.Fractional)

	// SignedInt without a width: any integer the process can hold
	// exactly, natively or boxed.
	SignedInt = predicate.Or("SignedInt", SafeInt, BoxedInt)

	// UnsignedInt without a width: as SignedInt but non-negative. The
	// base form enforces integer shape just like the parameterized
	// form.
	UnsignedInt = predicate.And("UnsignedInt",
		IntLike,
		predicate.Range("NonNegative", bound.Bound{Min: new(big.Rat)}),
		predicate.Or("UnsignedCarrier", nativeSafeRange, BoxedNum),
	)

	// FloatSafeNum accepts anything that can carry a float without
	// silent loss: a safe native or a fractional-capable box.
	FloatSafeNum = predicate.Or("FloatSafeNum", SafeFloat, BoxedFloat)

	// RealSafeNum additionally excludes NaN and infinities.
	RealSafeNum = predicate.And("RealSafeNum", RealNum, FloatSafeNum)

	// Char accepts one-character strings of any code point; the
	// parameterized form restricts the code point width.
	Char = charPredicate(0)
)

// Inf returns the infinity predicate for a sign given as "+" or "-".
// Any other sign string is a configuration error.
func Inf(sign string) (predicate.Predicate, error) {
	switch sign {
	case "+":
		return predicate.Infinite(1), nil
	case "-":
		return predicate.Infinite(-1), nil
	default:
		return nil, predicate.ParameterErrorf("Inf", 1, "sign must be \"+\" or \"-\", got %q", sign)
	}
}

var signedIntTemplate = predicate.NewTemplate("SignedInt",
	func(bits uint) (predicate.Predicate, error) {
		b, digits, err := bound.IntegerBounds(bits, true)
		if err != nil {
			return nil, err
		}
		boxedCarrier, err := BoxedIntDigits(digits)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("SignedInt[%d]", bits)
		return predicate.And(name,
			predicate.Or("SignedCarrier", SafeInt, boxedCarrier),
			predicate.Range(name+"Range", b),
		), nil
	})

// SignedIntBits returns the two's-complement integer predicate for the
// given width.
func SignedIntBits(bits int) (predicate.Predicate, error) {
	if bits < 1 {
		return nil, predicate.ParameterErrorf("SignedInt", 1, "bit width must be a positive integer, got %d", bits)
	}
	return signedIntTemplate.Specialize(uint(bits))
}

var unsignedIntTemplate = predicate.NewTemplate("UnsignedInt",
	func(bits uint) (predicate.Predicate, error) {
		b, digits, err := bound.IntegerBounds(bits, false)
		if err != nil {
			return nil, err
		}
		boxedCarrier, err := BoxedNumDigits(digits)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("UnsignedInt[%d]", bits)
		return predicate.And(name,
			IntLike,
			predicate.Range(name+"Range", b),
			predicate.Or("UnsignedCarrier", nativeSafeRange, boxedCarrier),
		), nil
	})

// UnsignedIntBits returns the unsigned integer predicate for the given
// width.
func UnsignedIntBits(bits int) (predicate.Predicate, error) {
	if bits < 1 {
		return nil, predicate.ParameterErrorf("UnsignedInt", 1, "bit width must be a positive integer, got %d", bits)
	}
	return unsignedIntTemplate.Specialize(uint(bits))
}

var boxedNumTemplate = predicate.NewTemplate("BoxedNum",
	func(digits uint) (predicate.Predicate, error) {
		return predicate.And(fmt.Sprintf("BoxedNum[%d]", digits),
			predicate.NumberLike,
			predicate.Boxed,
			predicate.HasPrecision(int(digits)),
		), nil
	})

// BoxedNumDigits returns the predicate for a boxed number declaring at
// least the given decimal precision.
func BoxedNumDigits(digits int) (predicate.Predicate, error) {
	if digits < 0 {
		return nil, predicate.ParameterErrorf("BoxedNum", 1, "digit count must be a non-negative integer, got %d", digits)
	}
	return boxedNumTemplate.Specialize(uint(digits))
}

var boxedIntTemplate = predicate.NewTemplate("BoxedInt",
	func(digits uint) (predicate.Predicate, error) {
		capacity, err := BoxedNumDigits(int(digits))
		if err != nil {
			return nil, err
		}
		return predicate.And(fmt.Sprintf("BoxedInt[%d]", digits),
			capacity,
			IntLike,
			predicate.MaxDigits(int(digits)),
		), nil
	})

// BoxedIntDigits returns the predicate for a boxed integer that both
// declares the precision and actually fits in it, by digit length of
// the exact decimal form.
func BoxedIntDigits(digits int) (predicate.Predicate, error) {
	if digits < 0 {
		return nil, predicate.ParameterErrorf("BoxedInt", 1, "digit count must be a non-negative integer, got %d", digits)
	}
	return boxedIntTemplate.Specialize(uint(digits))
}

var boxedFloatTemplate = predicate.NewTemplate("BoxedFloat",
	func(digits uint) (predicate.Predicate, error) {
		capacity, err := BoxedNumDigits(int(digits))
		if err != nil {
			return nil, err
		}
		return predicate.And(fmt.Sprintf("BoxedFloat[%d]", digits),
			capacity,
			predicate.Fractional,
		), nil
	})

// BoxedFloatDigits returns the fractional-capable boxed predicate with
// a minimum declared precision.
func BoxedFloatDigits(digits int) (predicate.Predicate, error) {
	if digits < 0 {
		return nil, predicate.ParameterErrorf("BoxedFloat", 1, "digit count must be a non-negative integer, got %d", digits)
	}
	return boxedFloatTemplate.Specialize(uint(digits))
}

type floatParams struct {
	a, b uint
}

var floatBinaryTemplate = predicate.NewTemplate("FloatBinary",
	func(p floatParams) (predicate.Predicate, error) {
		rb, err := bound.BinaryFloatBounds(p.a, p.b)
		if err != nil {
			return nil, err
		}
		carrier := predicate.Predicate(BoxedFloat)
		if bound.NativeFloatIsSafeBinary(p.a, p.b) {
			carrier = FloatSafeNum
		}
		name := fmt.Sprintf("FloatBinary[%d,%d]", p.a, p.b)
		return predicate.And(name,
			carrier,
			predicate.Or(name+"Domain",
				predicate.Range(name+"Range", rb),
				predicate.NaN,
				AnyInf,
			),
		), nil
	})

// FloatBinary returns the predicate for an IEEE754 binary float layout
// of totalBits with expBits of exponent. Native numbers are eligible
// only when the native float covers the layout losslessly; otherwise
// the layout is boxed-only regardless of magnitude.
func FloatBinary(totalBits, expBits int) (predicate.Predicate, error) {
	if totalBits < 1 {
		return nil, predicate.ParameterErrorf("FloatBinary", 1, "bit width must be a positive integer, got %d", totalBits)
	}
	if expBits < 1 {
		return nil, predicate.ParameterErrorf("FloatBinary", 2, "exponent width must be a positive integer, got %d", expBits)
	}
	return floatBinaryTemplate.Specialize(floatParams{uint(totalBits), uint(expBits)})
}

var floatDecimalTemplate = predicate.NewTemplate("FloatDecimal",
	func(p floatParams) (predicate.Predicate, error) {
		rb, err := bound.DecimalFloatBounds(p.a, p.b)
		if err != nil {
			return nil, err
		}
		carrier := predicate.Predicate(BoxedFloat)
		if bound.NativeFloatIsSafeDecimal(p.a, p.b) {
			carrier = FloatSafeNum
		}
		name := fmt.Sprintf("FloatDecimal[%d,%d]", p.a, p.b)
		return predicate.And(name,
			carrier,
			predicate.Or(name+"Domain",
				predicate.Range(name+"Range", rb),
				predicate.NaN,
				AnyInf,
			),
		), nil
	})

// FloatDecimal returns the predicate for a decimal float layout with
// the given significand digits and maximum decimal exponent.
func FloatDecimal(digits, maxExp int) (predicate.Predicate, error) {
	if digits < 1 {
		return nil, predicate.ParameterErrorf("FloatDecimal", 1, "digit count must be a positive integer, got %d", digits)
	}
	if maxExp < 0 {
		return nil, predicate.ParameterErrorf("FloatDecimal", 2, "exponent must be a non-negative integer, got %d", maxExp)
	}
	return floatDecimalTemplate.Specialize(floatParams{uint(digits), uint(maxExp)})
}

var fixedBinaryTemplate = predicate.NewTemplate("FixedBinary",
	func(p floatParams) (predicate.Predicate, error) {
		rb, err := bound.FixedBinaryBounds(p.a, p.b)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("FixedBinary[%d,%d]", p.a, p.b)
		return predicate.And(name,
			RealSafeNum,
			predicate.Range(name+"Range", rb),
		), nil
	})

// FixedBinary returns the fixed-point predicate for a signed integer
// of totalBits with an implicit decimal scale. NaN and infinities are
// never admissible in fixed layouts.
func FixedBinary(totalBits, scale int) (predicate.Predicate, error) {
	if totalBits < 1 {
		return nil, predicate.ParameterErrorf("FixedBinary", 1, "bit width must be a positive integer, got %d", totalBits)
	}
	if scale < 0 {
		return nil, predicate.ParameterErrorf("FixedBinary", 2, "scale must be a non-negative integer, got %d", scale)
	}
	return fixedBinaryTemplate.Specialize(floatParams{uint(totalBits), uint(scale)})
}

var fixedDecimalTemplate = predicate.NewTemplate("FixedDecimal",
	func(p floatParams) (predicate.Predicate, error) {
		rb, err := bound.FixedDecimalBounds(p.a, p.b)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("FixedDecimal[%d,%d]", p.a, p.b)
		return predicate.And(name,
			RealSafeNum,
			predicate.Range(name+"Range", rb),
		), nil
	})

// FixedDecimal returns the fixed-point predicate for a decimal digit
// string with an implicit scale.
func FixedDecimal(digits, scale int) (predicate.Predicate, error) {
	if digits < 1 {
		return nil, predicate.ParameterErrorf("FixedDecimal", 1, "digit count must be a positive integer, got %d", digits)
	}
	if scale < 0 {
		return nil, predicate.ParameterErrorf("FixedDecimal", 2, "scale must be a non-negative integer, got %d", scale)
	}
	return fixedDecimalTemplate.Specialize(floatParams{uint(digits), uint(scale)})
}
