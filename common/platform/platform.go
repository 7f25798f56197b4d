// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package platform reports the numeric limits of the running float
// implementation. The limits are probed once, on first use, and are
// immutable afterwards. Nothing here is hardcoded to binary64: the
// significand width and exponent range are measured against the actual
// float64 behavior of the host.
package platform

import (
	"math"
	"math/big"
	"sync"
)

// Limits describes what the native numeric types can represent without
// loss. MaxSafeInteger and MinSafeInteger take the widest combination
// of the float-exact boundary and the native integer limits: a value
// carried in a native integer is exact over the full int64/uint64
// range, while a value carried in a float is only exact up to
// 2^(SignificandBits+1).
type Limits struct {
	// MaxSafeInteger is the largest integer a native numeric value can
	// hold exactly (uint64 max on this platform, which exceeds the
	// float-exact boundary).
	MaxSafeInteger *big.Int

	// MinSafeInteger is the most negative such integer (int64 min).
	MinSafeInteger *big.Int

	// FloatSafeMax and FloatSafeMin bound the integers that the native
	// float can hold exactly: ±2^(SignificandBits+1).
	FloatSafeMax *big.Int
	FloatSafeMin *big.Int

	// SignificandBits is the number of explicit fraction bits in the
	// native float (52 for IEEE754 binary64).
	SignificandBits uint

	// MaxFiniteExponent and MinFiniteExponent are the unbiased binary
	// exponents of the largest finite and smallest nonzero float
	// values (1023 and -1074 for binary64, the latter counting
	// subnormals).
	MaxFiniteExponent uint
	MinFiniteExponent int

	// HasInfinity and HasNaN report whether the float implementation
	// carries the special values at all.
	HasInfinity bool
	HasNaN      bool
}

var (
	limits     Limits
	limitsOnce sync.Once
)

// Get returns the probed limits, computing them on first call.
func Get() *Limits {
	limitsOnce.Do(probe)
	return &limits
}

func probe() {
	sig := probeSignificandBits()

	floatSafe := new(big.Int).Lsh(big.NewInt(1), sig+1)

	maxSafe := new(big.Int).SetUint64(math.MaxUint64)
	if maxSafe.Cmp(floatSafe) < 0 {
		maxSafe.Set(floatSafe)
	}
	minSafe := big.NewInt(math.MinInt64)
	if negFloatSafe := new(big.Int).Neg(floatSafe); minSafe.Cmp(negFloatSafe) > 0 {
		minSafe.Set(negFloatSafe)
	}

	// Frexp normalizes to [0.5, 1), so the unbiased exponent of the
	// leading bit is exp-1.
	_, maxExp := math.Frexp(math.MaxFloat64)
	_, minExp := math.Frexp(math.SmallestNonzeroFloat64)

	inf := math.Inf(1)
	nan := math.NaN()

	limits = Limits{
		MaxSafeInteger:    maxSafe,
		MinSafeInteger:    minSafe,
		FloatSafeMax:      floatSafe,
		FloatSafeMin:      new(big.Int).Neg(floatSafe),
		SignificandBits:   sig,
		MaxFiniteExponent: uint(maxExp - 1),
		MinFiniteExponent: minExp - 1,
		HasInfinity:       math.IsInf(inf, 1),
		HasNaN:            nan != nan,
	}
}

// probeSignificandBits finds the widest power of two whose successor is
// still exactly representable. For binary64 the loop stops at 2^53,
// giving 52 explicit fraction bits.
func probeSignificandBits() uint {
	bits := uint(1)
	for {
		pow := math.Ldexp(1, int(bits))
		if pow+1 == pow {
			return bits - 1
		}
		bits++
		if bits > 256 {
			// No real float implementation is this wide; bail rather
			// than loop forever on a broken platform.
			panic("platform: could not determine float significand width")
		}
	}
}
