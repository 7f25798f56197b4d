// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package predicate

import (
	"math"
	"math/big"
	"testing"

	"github.com/numtypes/numtypes/common/bound"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

func ratOf(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bad rational literal " + s)
	}
	return r
}

func TestCompositionLaws(t *testing.T) {
	a := Func("A", func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	})
	b := Func("B", func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})

	and := And("AandB", a, b)
	or := Or("AorB", a, b)

	samples := []any{-4, -3, -1, 0, 1, 2, 3, 4, 100, "nope", nil}
	for _, v := range samples {
		assert.Equal(t, a.Check(v) && b.Check(v), and.Check(v), "And law for %v", v)
		assert.Equal(t, a.Check(v) || b.Check(v), or.Check(v), "Or law for %v", v)
	}
}

func TestAndShortCircuits(t *testing.T) {
	calls := 0
	counting := Func("counting", func(any) bool {
		calls++
		return true
	})
	never := Func("never", func(any) bool { return false })

	And("sc", never, counting).Check(1)
	assert.Zero(t, calls, "And must not evaluate past the first rejection")

	Or("sc", Func("always", func(any) bool { return true }), counting).Check(1)
	assert.Zero(t, calls, "Or must not evaluate past the first acceptance")
}

func TestNot(t *testing.T) {
	n := Not("NotBoxed", Boxed)
	assert.True(t, n.Check(5))
	assert.False(t, n.Check(big.NewInt(5)))
}

func TestPrimitives(t *testing.T) {
	Convey("Primitive predicates classify values", t, func() {
		Convey("NumberLike accepts any numeric form", func() {
			So(NumberLike.Check(5), ShouldBeTrue)
			So(NumberLike.Check(5.5), ShouldBeTrue)
			So(NumberLike.Check(math.NaN()), ShouldBeTrue)
			So(NumberLike.Check(big.NewInt(5)), ShouldBeTrue)
			So(NumberLike.Check("5"), ShouldBeFalse)
			So(NumberLike.Check(nil), ShouldBeFalse)
		})

		Convey("IntegerShaped requires exact integer value", func() {
			So(IntegerShaped.Check(5), ShouldBeTrue)
			So(IntegerShaped.Check(5.0), ShouldBeTrue)
			So(IntegerShaped.Check(big.NewInt(500)), ShouldBeTrue)
			So(IntegerShaped.Check(5.5), ShouldBeFalse)
			So(IntegerShaped.Check(math.NaN()), ShouldBeFalse)
			So(IntegerShaped.Check(math.Inf(1)), ShouldBeFalse)
		})

		Convey("NaN and Infinite are disjoint", func() {
			So(NaN.Check(math.NaN()), ShouldBeTrue)
			So(NaN.Check(math.Inf(1)), ShouldBeFalse)

			So(Infinite(0).Check(math.Inf(1)), ShouldBeTrue)
			So(Infinite(0).Check(math.Inf(-1)), ShouldBeTrue)
			So(Infinite(0).Check(math.NaN()), ShouldBeFalse)
			So(Infinite(1).Check(math.Inf(1)), ShouldBeTrue)
			So(Infinite(1).Check(math.Inf(-1)), ShouldBeFalse)
			So(Infinite(-1).Check(math.Inf(-1)), ShouldBeTrue)
		})

		Convey("Boxed and Native partition numbers", func() {
			So(Boxed.Check(big.NewInt(5)), ShouldBeTrue)
			So(Boxed.Check(5), ShouldBeFalse)
			So(Native.Check(5), ShouldBeTrue)
			So(Native.Check(big.NewInt(5)), ShouldBeFalse)
			So(Native.Check("5"), ShouldBeFalse)
		})

		Convey("HasPrecision fails closed", func() {
			So(HasPrecision(5).Check(big.NewInt(5)), ShouldBeTrue)
			So(HasPrecision(5).Check(5), ShouldBeFalse)

			narrow := big.NewFloat(1) // 53-bit mantissa, 15 digits
			So(HasPrecision(15).Check(narrow), ShouldBeTrue)
			So(HasPrecision(16).Check(narrow), ShouldBeFalse)
		})
	})
}

func TestRangePredicate(t *testing.T) {
	r := Range("r", bound.Bound{Min: ratOf("0.1"), Max: ratOf("10")})

	assert.True(t, r.Check(ratOf("0.1")))
	assert.True(t, r.Check(5))
	assert.True(t, r.Check(ratOf("10")))
	assert.False(t, r.Check(ratOf("10.001")))
	assert.False(t, r.Check(0))
	assert.False(t, r.Check("5"))

	exclusive := Range("x", bound.Bound{
		Min: ratOf("0.1"), Max: ratOf("10"),
		MinExclusive: true, MaxExclusive: true,
	})
	assert.False(t, exclusive.Check(ratOf("0.1")))
	assert.False(t, exclusive.Check(ratOf("10")))
	assert.True(t, exclusive.Check(5.0))
}

func TestRangeRejectsNaNEvenUnbounded(t *testing.T) {
	open := Range("open", bound.Bound{})
	assert.True(t, open.Check(12345))
	assert.True(t, open.Check(math.Inf(1)))
	assert.False(t, open.Check(math.NaN()))

	bounded := Range("bounded", bound.Bound{Min: ratOf("-1e300")})
	assert.False(t, bounded.Check(math.NaN()))
}

func TestExplain(t *testing.T) {
	evens := Func("Even", func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})
	pos := Func("Positive", func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	})
	p := And("PosEven", pos, evens)

	ok, reason := Explain(p, 4)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = Explain(p, -4)
	assert.False(t, ok)
	assert.Equal(t, "PosEven: Positive", reason)

	ok, reason = Explain(p, 3)
	assert.False(t, ok)
	assert.Equal(t, "PosEven: Even", reason)
}
