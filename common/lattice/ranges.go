// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lattice

import (
	"math/big"
	"sync"

	"github.com/numtypes/numtypes/common/bound"
	"github.com/numtypes/numtypes/common/predicate"
)

// rangeKey is the value-equality cache key for a bound: the canonical
// rational form of each side plus the exclusivity flags. Two bounds
// with equal sides share one cached predicate even when built from
// distinct big.Rat instances.
type rangeKey struct {
	min, max         string
	minExcl, maxExcl bool
}

func keyOf(b bound.Bound) rangeKey {
	k := rangeKey{minExcl: b.MinExclusive, maxExcl: b.MaxExclusive}
	if b.Min != nil {
		k.min = b.Min.RatString()
	}
	if b.Max != nil {
		k.max = b.Max.RatString()
	}
	return k
}

var (
	numRanges sync.Map // rangeKey -> predicate.Predicate
	intRanges sync.Map // rangeKey -> predicate.Predicate
)

// NumRange returns the numeric range predicate for the given bound,
// over anything number-like. Bounds may themselves come from boxed
// values; the comparison is exact either way. Equal bounds share one
// cached predicate.
func NumRange(b bound.Bound) predicate.Predicate {
	return cachedRange(&numRanges, b, func(name string) predicate.Predicate {
		return predicate.And(name,
			predicate.NumberLike,
			predicate.Range(name+"Range", b),
		)
	}, "NumRange")
}

// IntRange returns the integer range predicate for the given bound.
func IntRange(b bound.Bound) predicate.Predicate {
	return cachedRange(&intRanges, b, func(name string) predicate.Predicate {
		return predicate.And(name,
			IntLike,
			predicate.Range(name+"Range", b),
		)
	}, "IntRange")
}

func cachedRange(
	cache *sync.Map,
	b bound.Bound,
	build func(name string) predicate.Predicate,
	family string,
) predicate.Predicate {
	key := keyOf(b)
	if p, ok := cache.Load(key); ok {
		return p.(predicate.Predicate)
	}
	built := build(family + b.String())
	actual, _ := cache.LoadOrStore(key, built)
	return actual.(predicate.Predicate)
}

// Convenience specializations with fixed literal bounds.
var (
	zero = new(big.Rat)
	one  = big.NewRat(1, 1)
	nine = big.NewRat(9, 1)

	PositiveNum       = NumRange(bound.Bound{Min: zero, MinExclusive: true})
	PositiveOrZeroNum = NumRange(bound.Bound{Min: zero})
	NegativeNum       = NumRange(bound.Bound{Max: zero, MaxExclusive: true})
	NegativeOrZeroNum = NumRange(bound.Bound{Max: zero})

	PositiveInt       = IntRange(bound.Bound{Min: one})
	PositiveOrZeroInt = IntRange(bound.Bound{Min: zero})
	NegativeInt       = IntRange(bound.Bound{Max: new(big.Rat).Neg(one)})
	NegativeOrZeroInt = IntRange(bound.Bound{Max: zero})

	// SingleDigit is the classic one-digit integer, sign included.
	SingleDigit = IntRange(bound.Bound{Min: new(big.Rat).Neg(nine), Max: nine})
)
