// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package boxed

import (
	"math"
	"math/big"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decimal128Digits is the significand capacity of the IEEE754
// decimal128 layout the driver implements.
const decimal128Digits = 34

// Int adapts *big.Int. Integer arithmetic never rounds, so the
// declared precision is unbounded; fractional values are structurally
// impossible.
type Int struct {
	v *big.Int
}

// NewInt wraps v as a boxed number.
func NewInt(v *big.Int) Int { return Int{v: v} }

func (n Int) String() string { return n.v.String() }
func (n Int) Rat() (*big.Rat, bool) { return new(big.Rat).SetInt(n.v), true }
func (n Int) Precision() (int, bool) { return UnboundedPrecision, true }
func (n Int) SupportsFractional() bool { return intFractional() }
func (n Int) Unwrap() *big.Int { return n.v }

// Float adapts *big.Float. The declared precision is derived from the
// mantissa width the value was constructed with.
type Float struct {
	v *big.Float
}

// NewFloat wraps v as a boxed number.
func NewFloat(v *big.Float) Float { return Float{v: v} }

func (n Float) String() string { return n.v.Text('g', -1) }

func (n Float) Rat() (*big.Rat, bool) {
	if n.v.IsInf() {
		return nil, false
	}
	r, _ := n.v.Rat(nil)
	return r, true
}

// Precision converts the binary mantissa width to guaranteed decimal
// digits: floor(prec * log10(2)).
func (n Float) Precision() (int, bool) {
	return int(float64(n.v.Prec()) * math.Ln2 / math.Ln10), true
}

func (n Float) InfSign() int {
	if n.v.IsInf() {
		return n.v.Sign()
	}
	return 0
}

func (n Float) SupportsFractional() bool { return floatFractional() }
func (n Float) Unwrap() *big.Float { return n.v }

// Rat adapts *big.Rat. Exact rational arithmetic never rounds.
type Rat struct {
	v *big.Rat
}

// NewRat wraps v as a boxed number.
func NewRat(v *big.Rat) Rat { return Rat{v: v} }

func (n Rat) String() string { return n.v.RatString() }
func (n Rat) Rat() (*big.Rat, bool) { return n.v, true }
func (n Rat) Precision() (int, bool) { return UnboundedPrecision, true }
func (n Rat) SupportsFractional() bool { return ratFractional() }
func (n Rat) Unwrap() *big.Rat { return n.v }

// Decimal128 adapts the driver's IEEE754 decimal128 type, which
// reports NaN and infinity natively and carries a fixed 34-digit
// significand.
type Decimal128 struct {
	v primitive.Decimal128
}

// NewDecimal128 wraps v as a boxed number.
func NewDecimal128(v primitive.Decimal128) Decimal128 { return Decimal128{v: v} }

func (n Decimal128) String() string { return n.v.String() }

func (n Decimal128) Rat() (*big.Rat, bool) {
	bi, exp, err := n.v.BigInt()
	if err != nil {
		return nil, false
	}
	r := new(big.Rat).SetInt(bi)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(exp))), nil)
	if exp >= 0 {
		r.Mul(r, new(big.Rat).SetInt(scale))
	} else {
		r.Quo(r, new(big.Rat).SetInt(scale))
	}
	return r, true
}

func (n Decimal128) Precision() (int, bool) { return decimal128Digits, true }
func (n Decimal128) IsNaN() bool { return n.v.IsNaN() }
func (n Decimal128) InfSign() int { return n.v.IsInf() }

func (n Decimal128) SupportsFractional() bool { return decimal128Fractional() }
func (n Decimal128) Unwrap() primitive.Decimal128 { return n.v }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// The fractional probes construct 1.2 through each adapter's own
// construction path and check that it did not collapse to an integer.
// Each probe runs once per process.

var intFractional = sync.OnceValue(func() bool {
	// Integer construction of "1.2" either fails or truncates; both
	// mean no fractional support.
	v, ok := new(big.Int).SetString("1.2", 10)
	if !ok {
		return false
	}
	return isFractionalProbe(NewInt(v))
})

var floatFractional = sync.OnceValue(func() bool {
	v, _, err := big.ParseFloat("1.2", 10, 53, big.ToNearestEven)
	if err != nil {
		return false
	}
	return isFractionalProbe(NewFloat(v))
})

var ratFractional = sync.OnceValue(func() bool {
	v, ok := new(big.Rat).SetString("1.2")
	if !ok {
		return false
	}
	return isFractionalProbe(NewRat(v))
})

var decimal128Fractional = sync.OnceValue(func() bool {
	v, err := primitive.ParseDecimal128("1.2")
	if err != nil {
		return false
	}
	return isFractionalProbe(NewDecimal128(v))
})

// isFractionalProbe reports whether the constructed 1.2 is still
// distinguishable from 1.
func isFractionalProbe(n Number) bool {
	r, ok := n.Rat()
	if !ok {
		return false
	}
	return r.Cmp(new(big.Rat).SetInt64(1)) != 0
}
