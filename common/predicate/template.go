// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package predicate

import (
	"sync"
)

// Template is a parameterized predicate: Specialize instantiates it
// for a concrete parameter tuple and caches the result by tuple
// value-equality for the lifetime of the template. Some bound
// computations involve bignum exponentiation, so the cache is a
// correctness-and-cost invariant, not an optimization.
//
// Concurrent first use of the same tuple may run the builder more than
// once; the losing result is discarded and every caller observes one
// fully-built predicate. Builder errors are not cached: parameter
// validation happens before the builder runs, so a failing tuple fails
// identically every time.
type Template[P comparable] struct {
	name  string
	build func(P) (Predicate, error)
	cache sync.Map // P -> Predicate
}

// NewTemplate declares a template. The builder must be pure: the same
// tuple must always yield a behaviorally identical predicate.
func NewTemplate[P comparable](name string, build func(P) (Predicate, error)) *Template[P] {
	return &Template[P]{name: name, build: build}
}

// Name returns the template's exported name.
func (t *Template[P]) Name() string { return t.name }

// Specialize returns the predicate for the given parameter tuple,
// building and caching it on first use.
func (t *Template[P]) Specialize(params P) (Predicate, error) {
	if cached, ok := t.cache.Load(params); ok {
		return cached.(Predicate), nil
	}
	built, err := t.build(params)
	if err != nil {
		return nil, err
	}
	actual, _ := t.cache.LoadOrStore(params, built)
	return actual.(Predicate), nil
}
