// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package predicate implements named boolean tests over numeric
// values and the operators that combine them: intersection, union,
// negation, and parameterized specialization with a per-tuple cache.
//
// A Check call never fails for any input; non-numeric input is simply
// false. Errors exist only at construction time, for malformed
// parameters.
package predicate

import (
	"github.com/pkg/errors"
)

// Predicate is a named boolean test. Implementations are immutable
// after construction and safe for concurrent use.
type Predicate interface {
	Name() string
	Check(v any) bool
}

// Explainer is implemented by predicates that can say which
// sub-condition rejected a value first.
type Explainer interface {
	Explain(v any) (ok bool, reason string)
}

// Explain evaluates p against v and reports the first rejecting
// sub-condition, falling back to the predicate's own name when it
// offers no finer detail.
func Explain(p Predicate, v any) (bool, string) {
	if e, ok := p.(Explainer); ok {
		return e.Explain(v)
	}
	if p.Check(v) {
		return true, ""
	}
	return false, p.Name()
}

// ParameterErrorf builds a configuration error that identifies the
// predicate and the one-based parameter position at fault. These are
// the only errors the engine produces, and they are raised at
// construction time, never from Check.
func ParameterErrorf(predicate string, position int, format string, args ...any) error {
	return errors.Errorf("%s: parameter %d: "+format,
		append([]any{predicate, position}, args...)...)
}

type funcPredicate struct {
	name string
	fn   func(v any) bool
}

// Func wraps a plain boolean function as a Predicate.
func Func(name string, fn func(v any) bool) Predicate {
	return &funcPredicate{name: name, fn: fn}
}

func (p *funcPredicate) Name() string { return p.name }
func (p *funcPredicate) Check(v any) bool { return p.fn(v) }

type andPredicate struct {
	name    string
	members []Predicate
}

// And intersects members: a value passes only if every member passes.
// Evaluation short-circuits on the first rejection, in member order.
func And(name string, members ...Predicate) Predicate {
	return &andPredicate{name: name, members: members}
}

func (p *andPredicate) Name() string { return p.name }

func (p *andPredicate) Check(v any) bool {
	for _, m := range p.members {
		if !m.Check(v) {
			return false
		}
	}
	return true
}

func (p *andPredicate) Explain(v any) (bool, string) {
	for _, m := range p.members {
		if ok, reason := Explain(m, v); !ok {
			return false, p.name + ": " + reason
		}
	}
	return true, ""
}

type orPredicate struct {
	name    string
	members []Predicate
}

// Or unions members: a value passes if at least one member passes.
// Evaluation short-circuits on the first acceptance, in member order.
func Or(name string, members ...Predicate) Predicate {
	return &orPredicate{name: name, members: members}
}

func (p *orPredicate) Name() string { return p.name }

func (p *orPredicate) Check(v any) bool {
	for _, m := range p.members {
		if m.Check(v) {
			return true
		}
	}
	return false
}

func (p *orPredicate) Explain(v any) (bool, string) {
	for _, m := range p.members {
		if m.Check(v) {
			return true, ""
		}
	}
	return false, p.name + ": no alternative matched"
}

type notPredicate struct {
	name   string
	member Predicate
}

// Not complements a predicate under the given name.
func Not(name string, member Predicate) Predicate {
	return &notPredicate{name: name, member: member}
}

func (p *notPredicate) Name() string { return p.name }
func (p *notPredicate) Check(v any) bool { return !p.member.Check(v) }

func (p *notPredicate) Explain(v any) (bool, string) {
	if p.member.Check(v) {
		return false, p.name + ": excluded by " + p.member.Name()
	}
	return true, ""
}
