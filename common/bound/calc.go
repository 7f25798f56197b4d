// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bound

import (
	"math"
	"math/big"

	"github.com/numtypes/numtypes/common/platform"
	"github.com/pkg/errors"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
	bigTen = big.NewInt(10)
)

// IntegerBounds returns the inclusive range of a two's-complement or
// unsigned integer of the given width, along with the decimal digit
// capacity an arbitrary-precision box needs to hold every value in
// that range.
//
// signed:   [-2^(bits-1), 2^(bits-1)-1]
// unsigned: [0, 2^bits-1]
func IntegerBounds(bits uint, signed bool) (Bound, int, error) {
	if bits < 1 {
		return Bound{}, 0, errors.Errorf("integer bit width must be at least 1, got %d", bits)
	}

	valueBits := bits
	if signed {
		valueBits = bits - 1
	}

	max := new(big.Int).Lsh(bigOne, valueBits)
	max.Sub(max, bigOne)

	min := new(big.Int)
	if signed {
		min.Lsh(bigOne, valueBits)
		min.Neg(min)
	}

	b := Bound{
		Min: new(big.Rat).SetInt(min),
		Max: new(big.Rat).SetInt(max),
	}
	return b, DecimalDigits(valueBits), nil
}

// DecimalDigits returns the number of decimal digits needed to hold
// any value of the given binary width: ceil(bits * log10(2)).
func DecimalDigits(bits uint) int {
	return int(math.Ceil(float64(bits) * math.Ln2 / math.Ln10))
}

// binaryDigits converts a decimal dimension to the number of binary
// digits required to cover it: ceil(n * log2(10)).
func binaryDigits(n uint) uint {
	return uint(math.Ceil(float64(n) * math.Ln10 / math.Ln2))
}

// BinaryFloatBounds returns the symmetric finite range of an IEEE754
// binary float layout of totalBits with expBits exponent bits (one
// sign bit, the rest significand):
//
//	max = 2^(2^(expBits-1)-1) * (2 - 2^(-sig-1))
//
// where sig = totalBits - 1 - expBits.
func BinaryFloatBounds(totalBits, expBits uint) (Bound, error) {
	if expBits < 1 {
		return Bound{}, errors.Errorf("float exponent width must be at least 1, got %d", expBits)
	}
	if totalBits < expBits+2 {
		return Bound{}, errors.Errorf(
			"float total width %d leaves no significand after 1 sign and %d exponent bits",
			totalBits, expBits)
	}

	sig := totalBits - 1 - expBits
	emax := new(big.Int).Lsh(bigOne, expBits-1)
	emax.Sub(emax, bigOne)

	// 2 - 2^(-sig-1), kept exact as a rational.
	frac := new(big.Rat).SetFrac(bigOne, new(big.Int).Lsh(bigOne, sig+1))
	frac.Sub(new(big.Rat).SetInt64(2), frac)

	max := frac.Mul(frac, ratPow(bigTwo, emax))
	return symmetric(max), nil
}

// DecimalFloatBounds returns the symmetric finite range of a decimal
// float layout with the given significand digit count and maximum
// decimal exponent: the digit string of `digits` nines scaled by
// 10^maxExp.
func DecimalFloatBounds(digits, maxExp uint) (Bound, error) {
	if digits < 1 {
		return Bound{}, errors.Errorf("decimal float digit count must be at least 1, got %d", digits)
	}

	// 10 - 10^(1-digits) is the digit string of `digits` nines with
	// one digit before the point.
	frac := new(big.Rat).SetFrac(bigOne, pow(bigTen, int64(digits)-1))
	frac.Sub(new(big.Rat).SetInt64(10), frac)

	max := frac.Mul(frac, new(big.Rat).SetInt(pow(bigTen, int64(maxExp))))
	return symmetric(max), nil
}

// FixedBinaryBounds returns the range of a signed integer of totalBits
// interpreted with an implicit decimal scale: the integer bounds each
// divided exactly by 10^scale.
func FixedBinaryBounds(totalBits, scale uint) (Bound, error) {
	b, _, err := IntegerBounds(totalBits, true)
	if err != nil {
		return Bound{}, err
	}
	div := new(big.Rat).SetInt(pow(bigTen, int64(scale)))
	b.Min.Quo(b.Min, div)
	b.Max.Quo(b.Max, div)
	return b, nil
}

// FixedDecimalBounds returns the symmetric range of a decimal digit
// string of the given length with an implicit scale:
// ±(10^digits - 1) / 10^scale.
func FixedDecimalBounds(digits, scale uint) (Bound, error) {
	if digits < 1 {
		return Bound{}, errors.Errorf("fixed decimal digit count must be at least 1, got %d", digits)
	}
	max := new(big.Rat).SetInt(new(big.Int).Sub(pow(bigTen, int64(digits)), bigOne))
	max.Quo(max, new(big.Rat).SetInt(pow(bigTen, int64(scale))))
	return symmetric(max), nil
}

// NativeFloatIsSafe reports whether the native float can represent
// every value of a binary float layout with the given significand
// width and maximum unbiased exponent without loss. When false, native
// (unboxed) numbers are categorically ineligible for the layout,
// independent of magnitude.
func NativeFloatIsSafe(sigBits, maxExp uint) bool {
	l := platform.Get()
	return sigBits <= l.SignificandBits && maxExp <= l.MaxFiniteExponent
}

// NativeFloatIsSafeDecimal is NativeFloatIsSafe for decimal
// dimensions, converted to binary digits first.
func NativeFloatIsSafeDecimal(digits, maxExp uint) bool {
	return NativeFloatIsSafe(binaryDigits(digits), binaryDigits(maxExp))
}

// NativeFloatIsSafeBinary is NativeFloatIsSafe for a whole binary
// layout, deriving the significand width and maximum exponent from
// totalBits and expBits. Layouts whose exponent range does not even
// fit in a uint64 are trivially unsafe.
func NativeFloatIsSafeBinary(totalBits, expBits uint) bool {
	if expBits < 1 || totalBits < expBits+2 {
		return false
	}
	emax := new(big.Int).Lsh(bigOne, expBits-1)
	emax.Sub(emax, bigOne)
	if !emax.IsUint64() || emax.Uint64() > uint64(platform.Get().MaxFiniteExponent) {
		return false
	}
	return NativeFloatIsSafe(totalBits-1-expBits, uint(emax.Uint64()))
}

func symmetric(max *big.Rat) Bound {
	return Bound{
		Min: new(big.Rat).Neg(max),
		Max: max,
	}
}

// pow raises base to a non-negative integer exponent.
func pow(base *big.Int, exp int64) *big.Int {
	return new(big.Int).Exp(base, big.NewInt(exp), nil)
}

// ratPow raises base to a possibly huge exponent, exactly.
func ratPow(base *big.Int, exp *big.Int) *big.Rat {
	return new(big.Rat).SetInt(new(big.Int).Exp(base, exp, nil))
}
