// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package numeric normalizes candidate values into an exact internal
// form that every predicate evaluates against. Native values are
// converted to rationals without re-rounding (a float is converted to
// the exact value it already holds); boxed values keep their handle so
// capability checks can reach them.
package numeric

import (
	"math"
	"math/big"

	"github.com/numtypes/numtypes/common/boxed"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Value is the normalized form of a numeric candidate.
type Value struct {
	rat *big.Rat // nil iff NaN or infinite
	nan bool
	inf int // -1, 0, +1
	box boxed.Number
}

// Of normalizes v. ok is false when v is not numeric in any
// recognized form; that is an ordinary outcome, not an error.
func Of(v any) (Value, bool) {
	switch n := v.(type) {
	case int:
		return fromInt64(int64(n)), true
	case int8:
		return fromInt64(int64(n)), true
	case int16:
		return fromInt64(int64(n)), true
	case int32:
		return fromInt64(int64(n)), true
	case int64:
		return fromInt64(n), true
	case uint:
		return fromUint64(uint64(n)), true
	case uint8:
		return fromUint64(uint64(n)), true
	case uint16:
		return fromUint64(uint64(n)), true
	case uint32:
		return fromUint64(uint64(n)), true
	case uint64:
		return fromUint64(n), true
	case float32:
		return fromFloat64(float64(n)), true
	case float64:
		return fromFloat64(n), true
	case *big.Int:
		return fromBoxed(boxed.NewInt(n)), true
	case *big.Float:
		return fromBoxed(boxed.NewFloat(n)), true
	case *big.Rat:
		return fromBoxed(boxed.NewRat(n)), true
	case primitive.Decimal128:
		return fromBoxed(boxed.NewDecimal128(n)), true
	case boxed.Number:
		return fromBoxed(n), true
	default:
		return Value{}, false
	}
}

func fromInt64(n int64) Value {
	return Value{rat: new(big.Rat).SetInt64(n)}
}

func fromUint64(n uint64) Value {
	return Value{rat: new(big.Rat).SetInt(new(big.Int).SetUint64(n))}
}

func fromFloat64(f float64) Value {
	if math.IsNaN(f) {
		return Value{nan: true}
	}
	if math.IsInf(f, 0) {
		if f > 0 {
			return Value{inf: 1}
		}
		return Value{inf: -1}
	}
	// SetFloat64 is exact for any finite float.
	return Value{rat: new(big.Rat).SetFloat64(f)}
}

func fromBoxed(n boxed.Number) Value {
	v := Value{box: n}
	if boxed.IsNaN(n) {
		v.nan = true
		return v
	}
	if sign := boxed.InfSign(n); sign != 0 {
		v.inf = sign
		return v
	}
	if r, ok := n.Rat(); ok {
		v.rat = r
	} else {
		// A finite box that cannot produce its exact value fails
		// closed as NaN-like.
		v.nan = true
	}
	return v
}

// Rat returns the exact rational value, nil for NaN or infinities.
func (v Value) Rat() *big.Rat { return v.rat }

// IsNaN reports NaN status, native or declared by the box.
func (v Value) IsNaN() bool { return v.nan }

// InfSign reports -1/+1 for infinities, 0 for finite values.
func (v Value) InfSign() int { return v.inf }

// IsInf reports whether the value is an infinity of either sign.
func (v Value) IsInf() bool { return v.inf != 0 }

// Boxed returns the boxed handle, nil for native values.
func (v Value) Boxed() boxed.Number { return v.box }

// IsBoxed reports whether the value is boxed.
func (v Value) IsBoxed() bool { return v.box != nil }

// IsInteger reports whether the value is integer-shaped. For boxed
// values the exact decimal form must agree with the rational check:
// some arbitrary-precision types compare loosely (1.5 == 1 under a
// truncating comparison), so the form check is load-bearing, not
// polish.
func (v Value) IsInteger() bool {
	if v.nan || v.inf != 0 || v.rat == nil {
		return false
	}
	if !v.rat.IsInt() {
		return false
	}
	if v.box != nil && !IntegerForm(v.box.String()) {
		return false
	}
	return true
}

// ExactForm returns the exact decimal (or rational) form of a boxed
// value, and "" for native values.
func (v Value) ExactForm() string {
	if v.box == nil {
		return ""
	}
	return v.box.String()
}
