// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package predicate

import (
	"github.com/numtypes/numtypes/common/bound"
	"github.com/numtypes/numtypes/common/numeric"
)

type rangePredicate struct {
	name string
	b    bound.Bound
}

// Range returns the universal bound-membership test. Every bit-width,
// digit-count, and scale predicate ultimately closes over one of
// these. NaN fails every range, including a fully open one: the side
// checks cannot catch it because NaN is unordered, so the explicit
// guard here is mandatory, not defensive.
func Range(name string, b bound.Bound) Predicate {
	return &rangePredicate{name: name, b: b}
}

func (p *rangePredicate) Name() string { return p.name }

func (p *rangePredicate) Check(v any) bool {
	n, ok := numeric.Of(v)
	if !ok || n.IsNaN() {
		return false
	}
	return p.b.Contains(n.Rat(), n.InfSign())
}

func (p *rangePredicate) Explain(v any) (bool, string) {
	if p.Check(v) {
		return true, ""
	}
	return false, p.name + ": outside " + p.b.String()
}

// Bound exposes the closed-over bound for diagnostics.
func (p *rangePredicate) Bound() bound.Bound { return p.b }
