// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lattice

import (
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/numtypes/numtypes/common/bound"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func dec(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

func bigRat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bad rational literal " + s)
	}
	return r
}

func TestSignedIntBits(t *testing.T) {
	for _, bits := range []int{1, 4, 8, 16, 32, 64} {
		p, err := SignedIntBits(bits)
		require.NoError(t, err)

		max := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		max.Sub(max, big.NewInt(1))
		min := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		min.Neg(min)

		// Every width up to 64 has native carriers for its bounds.
		assert.True(t, p.Check(max.Int64()), "SignedInt[%d] accepts its max", bits)
		assert.True(t, p.Check(min.Int64()), "SignedInt[%d] accepts its min", bits)
		assert.True(t, p.Check(0), "SignedInt[%d] accepts zero", bits)

		over := new(big.Int).Add(max, big.NewInt(1))
		under := new(big.Int).Sub(min, big.NewInt(1))
		assert.False(t, p.Check(over), "SignedInt[%d] rejects max+1", bits)
		assert.False(t, p.Check(under), "SignedInt[%d] rejects min-1", bits)
	}

	// Boxed carriers ride the digit-capacity branch.
	p32, err := SignedIntBits(32)
	require.NoError(t, err)
	assert.True(t, p32.Check(big.NewInt(2147483647)))
	assert.False(t, p32.Check(big.NewInt(2147483648)))
}

func TestSignedIntRejectsNonIntegers(t *testing.T) {
	p, err := SignedIntBits(32)
	require.NoError(t, err)

	assert.False(t, p.Check(5.5))
	assert.False(t, p.Check(math.NaN()))
	assert.False(t, p.Check(math.Inf(1)))
	assert.False(t, p.Check("5"))
	assert.True(t, p.Check(5.0), "integer-valued float is integer-shaped")
}

func TestSignedIntParameterError(t *testing.T) {
	_, err := SignedIntBits(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SignedInt: parameter 1")

	_, err = SignedIntBits(-3)
	require.Error(t, err)
}

func TestUnsignedIntBits(t *testing.T) {
	for _, bits := range []int{1, 8, 16, 32, 64} {
		p, err := UnsignedIntBits(bits)
		require.NoError(t, err)

		max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		max.Sub(max, big.NewInt(1))

		assert.True(t, p.Check(0), "UnsignedInt[%d] accepts zero", bits)
		assert.True(t, p.Check(max), "UnsignedInt[%d] accepts its max", bits)
		assert.False(t, p.Check(-1), "UnsignedInt[%d] rejects -1", bits)
		assert.False(t, p.Check(new(big.Int).Add(max, big.NewInt(1))),
			"UnsignedInt[%d] rejects max+1", bits)
	}
}

func TestSpecializationIdempotence(t *testing.T) {
	first, err := SignedIntBits(32)
	require.NoError(t, err)
	second, err := SignedIntBits(32)
	require.NoError(t, err)

	// The cache makes repeated specializations the same instance.
	assert.Same(t, first, second)

	vector := []any{0, 5, -5, math.MaxInt32, math.MinInt32, int64(math.MaxInt32) + 1,
		5.5, math.NaN(), "x", big.NewInt(1 << 40)}
	for _, v := range vector {
		assert.Equal(t, first.Check(v), second.Check(v), "behavior must agree on %v", v)
	}
}

func TestSpecializationConcurrentFirstUse(t *testing.T) {
	const workers = 16
	var wg sync.WaitGroup
	results := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := SignedIntBits(27 + i%2)
			if err != nil {
				return
			}
			results[i] = p.Check(1000)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		assert.True(t, r, "worker %d", i)
	}
}

func TestSafeInt(t *testing.T) {
	Convey("SafeInt follows the platform safe boundary", t, func() {
		maxSafe := new(big.Int).SetUint64(math.MaxUint64)

		Convey("the boundary itself is admissible", func() {
			So(SafeInt.Check(uint64(math.MaxUint64)), ShouldBeTrue)
			So(SafeInt.Check(int64(math.MinInt64)), ShouldBeTrue)
		})

		Convey("one past the boundary is not", func() {
			over := new(big.Int).Add(maxSafe, big.NewInt(1))
			// A boxed carrier is the only way to even denote max+1,
			// and SafeInt is native-only.
			So(SafeInt.Check(over), ShouldBeFalse)
		})

		Convey("boxed integers are excluded regardless of value", func() {
			So(SafeInt.Check(big.NewInt(5)), ShouldBeFalse)
		})

		Convey("fractional and special values are excluded", func() {
			So(SafeInt.Check(5.5), ShouldBeFalse)
			So(SafeInt.Check(math.NaN()), ShouldBeFalse)
			So(SafeInt.Check(math.Inf(-1)), ShouldBeFalse)
		})
	})
}

func TestIntLike(t *testing.T) {
	Convey("IntLike accepts integer-shaped values of any carrier", t, func() {
		So(IntLike.Check(5), ShouldBeTrue)
		So(IntLike.Check(5.0), ShouldBeTrue)
		So(IntLike.Check(big.NewInt(500)), ShouldBeTrue)

		Convey("and rejects anything with a fractional part", func() {
			So(IntLike.Check(5.5), ShouldBeFalse)
			// The exact-form check catches boxes whose numeric
			// comparison would be loose.
			d, err := primitive.ParseDecimal128("5.5")
			So(err, ShouldBeNil)
			So(IntLike.Check(d), ShouldBeFalse)
		})
	})
}

func TestRealNum(t *testing.T) {
	assert.True(t, RealNum.Check(5))
	assert.True(t, RealNum.Check(-2.75))
	assert.False(t, RealNum.Check(math.NaN()))
	assert.False(t, RealNum.Check(math.Inf(1)))
	assert.False(t, RealNum.Check(math.Inf(-1)))

	nan, _ := primitive.ParseDecimal128("NaN")
	assert.False(t, RealNum.Check(nan), "boxed NaN is still NaN")
}

func TestInf(t *testing.T) {
	pos, err := Inf("+")
	require.NoError(t, err)
	neg, err := Inf("-")
	require.NoError(t, err)

	assert.True(t, pos.Check(math.Inf(1)))
	assert.False(t, pos.Check(math.Inf(-1)))
	assert.True(t, neg.Check(math.Inf(-1)))

	_, err = Inf("?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign")
}

func TestBoxedNumDigits(t *testing.T) {
	// Decimal128 declares 34 digits.
	d := dec(t, "99999")
	p34, err := BoxedNumDigits(34)
	require.NoError(t, err)
	assert.True(t, p34.Check(d))

	p35, err := BoxedNumDigits(35)
	require.NoError(t, err)
	assert.False(t, p35.Check(d), "34 declared digits cannot satisfy 35")

	assert.False(t, p34.Check(99999), "native values are not boxed")
}

func TestBoxedIntDigits(t *testing.T) {
	p, err := BoxedIntDigits(5)
	require.NoError(t, err)

	assert.True(t, p.Check(dec(t, "99999")))
	assert.False(t, p.Check(dec(t, "100000")), "six digits exceed the capacity")
	assert.False(t, p.Check(dec(t, "5.5")), "not integer-shaped")

	// Exponent renderings must count the digits of the value, not of
	// the notation: 1E+10 is an 11-digit integer however it prints.
	assert.False(t, p.Check(dec(t, "1E+10")), "11 digits exceed the capacity")
	assert.True(t, p.Check(dec(t, "5.0")), "redundant zeros do not count")
	assert.True(t, p.Check(dec(t, "9.9999E+4")), "99999 fits whatever the rendering")

	wide, _, err := big.ParseFloat("1e20", 10, 200, big.ToNearestEven)
	require.NoError(t, err)
	assert.False(t, p.Check(wide), "a 21-digit float-held integer cannot fit 5 digits")

	// A box with a declared capacity below the requirement fails even
	// when the value itself is small: 1.5 decimal digits per mantissa
	// bit means a 10-bit float declares 3 digits.
	narrow, _, err := big.ParseFloat("42", 10, 10, big.ToNearestEven)
	require.NoError(t, err)
	p5, err := BoxedIntDigits(5)
	require.NoError(t, err)
	assert.False(t, p5.Check(narrow), "declared capacity 3 cannot satisfy 5")
}

func TestBoxedFloat(t *testing.T) {
	assert.True(t, BoxedFloat.Check(dec(t, "1.5")))
	assert.True(t, BoxedFloat.Check(big.NewFloat(1.5)))
	assert.False(t, BoxedFloat.Check(big.NewInt(5)),
		"integer boxes fail the fractional probe")
	assert.False(t, BoxedFloat.Check(1.5), "native floats are not boxed")
}

func TestFloatBinary(t *testing.T) {
	single, err := FloatBinary(32, 8)
	require.NoError(t, err)

	assert.True(t, single.Check(0))
	assert.True(t, single.Check(1.5))
	assert.True(t, single.Check(math.NaN()), "NaN is a well-defined float value")
	assert.True(t, single.Check(math.Inf(1)))

	// An order of magnitude beyond the single max, boxed so the value
	// survives the trip.
	big340, err := primitive.ParseDecimal128("3.4E+39")
	require.NoError(t, err)
	assert.False(t, single.Check(big340))

	double, err := FloatBinary(64, 11)
	require.NoError(t, err)
	assert.True(t, double.Check(1.5),
		"binary64 layout is native-safe on this platform")

	quad, err := FloatBinary(128, 15)
	require.NoError(t, err)
	assert.False(t, quad.Check(1.5),
		"native values are categorically excluded when the layout exceeds the native float")
	assert.True(t, quad.Check(dec(t, "1.5")), "boxed values remain eligible")
}

func TestFloatBinaryParameterErrors(t *testing.T) {
	_, err := FloatBinary(0, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter 1")

	_, err = FloatBinary(32, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter 2")

	// Exponent consuming the whole width is caught by the bound
	// calculator.
	_, err = FloatBinary(9, 8)
	require.Error(t, err)
}

func TestFloatDecimal(t *testing.T) {
	p, err := FloatDecimal(7, 96)
	require.NoError(t, err)

	assert.True(t, p.Check(0))
	assert.True(t, p.Check(dec(t, "9.999999E+96")))
	assert.False(t, p.Check(dec(t, "1E+97")))

	wide, err := FloatDecimal(34, 6144)
	require.NoError(t, err)
	assert.False(t, wide.Check(1.5), "decimal128 dimensions exceed the native float")
	assert.True(t, wide.Check(dec(t, "1.5")))
}

func TestFixedBinary(t *testing.T) {
	p, err := FixedBinary(16, 2)
	require.NoError(t, err)

	assert.True(t, p.Check(100))
	assert.True(t, p.Check(dec(t, "327.67")))
	assert.False(t, p.Check(dec(t, "327.68")))
	assert.False(t, p.Check(math.NaN()), "fixed layouts never admit NaN")
	assert.False(t, p.Check(math.Inf(1)))
}

func TestFixedDecimal(t *testing.T) {
	p, err := FixedDecimal(5, 2)
	require.NoError(t, err)

	assert.True(t, p.Check(dec(t, "999.99")))
	assert.False(t, p.Check(dec(t, "1000.00")))
	assert.True(t, p.Check(0))
}

func TestChar(t *testing.T) {
	c8, err := CharBits(8)
	require.NoError(t, err)

	assert.True(t, c8.Check("A"))
	assert.True(t, c8.Check(string(rune(255))), "code point 255 fits 8 bits")
	assert.False(t, c8.Check(string(rune(256))), "code point 256 does not")
	assert.False(t, c8.Check("AB"))
	assert.False(t, c8.Check(""))
	assert.False(t, c8.Check(65), "numbers are not characters")

	wide, err := CharBits(32)
	require.NoError(t, err)
	assert.True(t, wide.Check("\U0010FFFF"))

	assert.True(t, Char.Check("\U0010FFFF"), "base Char places no width limit")
	assert.False(t, Char.Check("ab"))
}

func TestNumRangeBounds(t *testing.T) {
	// Bounds built from native floats compare exactly against the
	// same native floats: 0.1 equals 0.1 even though neither is 1/10.
	b := bound.Bound{
		Min: new(big.Rat).SetFloat64(0.1),
		Max: new(big.Rat).SetFloat64(10.0),
	}
	inclusive := NumRange(b)
	assert.True(t, inclusive.Check(0.1))
	assert.True(t, inclusive.Check(10.0))
	assert.True(t, inclusive.Check(5.0))
	assert.False(t, inclusive.Check(0.05))
	assert.False(t, inclusive.Check(10.5))

	exclusive := NumRange(bound.Bound{
		Min: new(big.Rat).SetFloat64(0.1), Max: new(big.Rat).SetFloat64(10.0),
		MinExclusive: true, MaxExclusive: true,
	})
	assert.False(t, exclusive.Check(0.1))
	assert.False(t, exclusive.Check(10.0))
	assert.True(t, exclusive.Check(5.0))

	assert.False(t, inclusive.Check(math.NaN()), "NaN fails every range")
	unbounded := NumRange(bound.Bound{})
	assert.False(t, unbounded.Check(math.NaN()), "NaN fails even the unbounded range")
	assert.True(t, unbounded.Check(-1e18))
}

func TestNumRangeCacheSharing(t *testing.T) {
	a := NumRange(bound.Bound{Min: bigRat("1"), Max: bigRat("2")})
	b := NumRange(bound.Bound{Min: bigRat("1"), Max: bigRat("2")})
	assert.Same(t, a, b, "equal bounds share one cached predicate")
}

func TestConvenienceEntries(t *testing.T) {
	Convey("Sign convenience predicates", t, func() {
		So(PositiveNum.Check(0.5), ShouldBeTrue)
		So(PositiveNum.Check(0), ShouldBeFalse)
		So(PositiveOrZeroNum.Check(0), ShouldBeTrue)
		So(NegativeNum.Check(-0.5), ShouldBeTrue)
		So(NegativeNum.Check(0), ShouldBeFalse)
		So(NegativeOrZeroNum.Check(0), ShouldBeTrue)

		So(PositiveInt.Check(1), ShouldBeTrue)
		So(PositiveInt.Check(0), ShouldBeFalse)
		So(PositiveInt.Check(0.5), ShouldBeFalse)
		So(PositiveOrZeroInt.Check(0), ShouldBeTrue)
		So(NegativeInt.Check(-1), ShouldBeTrue)
		So(NegativeInt.Check(0), ShouldBeFalse)
		So(NegativeOrZeroInt.Check(0), ShouldBeTrue)
	})

	Convey("SingleDigit covers [-9, 9]", t, func() {
		for i := -9; i <= 9; i++ {
			So(SingleDigit.Check(i), ShouldBeTrue)
		}
		So(SingleDigit.Check(10), ShouldBeFalse)
		So(SingleDigit.Check(-10), ShouldBeFalse)
		So(SingleDigit.Check(5.5), ShouldBeFalse)
	})
}

func TestBaseSignedAndUnsigned(t *testing.T) {
	assert.True(t, SignedInt.Check(-42))
	assert.True(t, SignedInt.Check(big.NewInt(-42)))
	assert.False(t, SignedInt.Check(5.5))

	assert.True(t, UnsignedInt.Check(42))
	assert.True(t, UnsignedInt.Check(big.NewInt(42)))
	assert.False(t, UnsignedInt.Check(-1))
	assert.False(t, UnsignedInt.Check(big.NewInt(-1)))
	assert.False(t, UnsignedInt.Check(5.5), "the base form still requires integer shape")
}

func TestFloatSafeNumAndRealSafeNum(t *testing.T) {
	assert.True(t, FloatSafeNum.Check(1.5))
	assert.True(t, FloatSafeNum.Check(math.NaN()), "specials ride the safe-float branch")
	assert.True(t, FloatSafeNum.Check(dec(t, "1.5")))
	assert.False(t, FloatSafeNum.Check(big.NewInt(5)),
		"integer boxes cannot carry floats")

	assert.True(t, RealSafeNum.Check(1.5))
	assert.False(t, RealSafeNum.Check(math.NaN()))
	assert.False(t, RealSafeNum.Check(math.Inf(1)))
}
