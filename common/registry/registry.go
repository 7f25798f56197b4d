// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package registry maps catalog names to predicates. It is the only
// layer that interprets strings: parameter lists arrive as strings and
// are parsed here before the typed constructors ever see them.
package registry

import (
	"math/big"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/numtypes/numtypes/common/bound"
	"github.com/numtypes/numtypes/common/lattice"
	"github.com/numtypes/numtypes/common/predicate"
	"github.com/numtypes/numtypes/common/util"
)

// Entry describes one resolvable catalog name. Resolve receives the
// raw parameter strings, already checked against the arity limits.
type Entry struct {
	Name     string
	MinArity int
	MaxArity int
	Resolve  func(params []string) (predicate.Predicate, error)
}

// Registry is a concurrency-safe name-to-entry table. The builtin
// names are fixed at construction and can never be replaced.
type Registry struct {
	entries  *util.DataGuard[map[string]Entry]
	builtins mapset.Set[string]
}

// New returns a registry preloaded with the builtin catalog.
func New() *Registry {
	entries := make(map[string]Entry, len(builtinEntries))
	builtins := mapset.NewSet[string]()
	for _, e := range builtinEntries {
		entries[e.Name] = e
		builtins.Add(e.Name)
	}
	return &Registry{
		entries:  util.NewDataGuard(entries),
		builtins: builtins,
	}
}

// Register adds a caller-supplied entry. Builtin names are reserved
// and already-registered names are first-writer-wins.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return errors.New("registry entry must have a name")
	}
	if e.Resolve == nil {
		return errors.Errorf("registry entry %q must have a resolver", e.Name)
	}
	if r.builtins.Contains(e.Name) {
		return errors.Errorf("cannot replace builtin entry %q", e.Name)
	}

	var dup bool
	r.entries.Store(func(m map[string]Entry) map[string]Entry {
		if _, ok := m[e.Name]; ok {
			dup = true
			return m
		}
		m[e.Name] = e
		return m
	})
	if dup {
		return errors.Errorf("entry %q is already registered", e.Name)
	}
	return nil
}

// Lookup returns the entry for a name, if any.
func (r *Registry) Lookup(name string) (Entry, bool) {
	var (
		e  Entry
		ok bool
	)
	r.entries.Load(func(m map[string]Entry) {
		e, ok = m[name]
	})
	return e, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	var names []string
	r.entries.Load(func(m map[string]Entry) {
		names = lo.Keys(m)
	})
	slices.Sort(names)
	return names
}

// Resolve builds the predicate for a name and its parameter strings,
// enforcing the entry's arity limits first.
func (r *Registry) Resolve(name string, params []string) (predicate.Predicate, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Errorf("unknown entry %q", name)
	}
	if len(params) < e.MinArity || len(params) > e.MaxArity {
		if e.MinArity == e.MaxArity {
			return nil, errors.Errorf(
				"%s takes %d parameter(s), got %d", name, e.MinArity, len(params))
		}
		return nil, errors.Errorf(
			"%s takes %d to %d parameters, got %d", name, e.MinArity, e.MaxArity, len(params))
	}
	return e.Resolve(params)
}

// ParseSpec resolves a textual predicate spec of the form "Name" or
// "Name[p1,p2,...]". Whitespace around parameters is ignored.
func (r *Registry) ParseSpec(spec string) (predicate.Predicate, error) {
	name := spec
	var params []string
	if i := strings.IndexByte(spec, '['); i >= 0 {
		if !strings.HasSuffix(spec, "]") {
			return nil, errors.Errorf("malformed spec %q: missing closing bracket", spec)
		}
		name = spec[:i]
		inner := spec[i+1 : len(spec)-1]
		if strings.TrimSpace(inner) != "" {
			for _, p := range strings.Split(inner, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}
	}
	if name == "" {
		return nil, errors.Errorf("malformed spec %q: empty name", spec)
	}
	return r.Resolve(name, params)
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

func intParam(name string, pos int, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, predicate.ParameterErrorf(name, pos, "expected an integer, got %q", s)
	}
	return n, nil
}

// boundParam parses one side of a range bound. "*" leaves the side
// unbounded. A literal with a decimal point or exponent is read as a
// native float and converted exactly, so the bound carries the float's
// actual value; plain integer literals stay exact.
func boundParam(name string, pos int, s string) (*big.Rat, error) {
	if s == "*" {
		return nil, nil
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, predicate.ParameterErrorf(name, pos, "expected a number or \"*\", got %q", s)
		}
		r := new(big.Rat).SetFloat64(f)
		if r == nil {
			return nil, predicate.ParameterErrorf(name, pos, "bound must be finite, got %q", s)
		}
		return r, nil
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, predicate.ParameterErrorf(name, pos, "expected a number or \"*\", got %q", s)
	}
	return new(big.Rat).SetInt(i), nil
}

func flagParam(name string, pos int, s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, predicate.ParameterErrorf(name, pos, "expected \"0\" or \"1\", got %q", s)
	}
}

func fixed(p predicate.Predicate) func([]string) (predicate.Predicate, error) {
	return func([]string) (predicate.Predicate, error) { return p, nil }
}

// optionalWidth resolves a zero-or-one integer parameter entry: the
// fixed base form with no parameters, the sized constructor with one.
func optionalWidth(
	name string,
	base predicate.Predicate,
	sized func(int) (predicate.Predicate, error),
) func([]string) (predicate.Predicate, error) {
	return func(params []string) (predicate.Predicate, error) {
		if len(params) == 0 {
			return base, nil
		}
		n, err := intParam(name, 1, params[0])
		if err != nil {
			return nil, err
		}
		return sized(n)
	}
}

func pairEntry(
	name string,
	build func(a, b int) (predicate.Predicate, error),
) Entry {
	return Entry{
		Name:     name,
		MinArity: 2,
		MaxArity: 2,
		Resolve: func(params []string) (predicate.Predicate, error) {
			a, err := intParam(name, 1, params[0])
			if err != nil {
				return nil, err
			}
			b, err := intParam(name, 2, params[1])
			if err != nil {
				return nil, err
			}
			return build(a, b)
		},
	}
}

func resolveNumRange(params []string) (predicate.Predicate, error) {
	var (
		b   bound.Bound
		err error
	)
	if len(params) > 0 {
		if b.Min, err = boundParam("NumRange", 1, params[0]); err != nil {
			return nil, err
		}
	}
	if len(params) > 1 {
		if b.Max, err = boundParam("NumRange", 2, params[1]); err != nil {
			return nil, err
		}
	}
	if len(params) > 2 {
		if b.MinExclusive, err = flagParam("NumRange", 3, params[2]); err != nil {
			return nil, err
		}
	}
	if len(params) > 3 {
		if b.MaxExclusive, err = flagParam("NumRange", 4, params[3]); err != nil {
			return nil, err
		}
	}
	return lattice.NumRange(b), nil
}

func resolveIntRange(params []string) (predicate.Predicate, error) {
	var (
		b   bound.Bound
		err error
	)
	if len(params) > 0 {
		if b.Min, err = boundParam("IntRange", 1, params[0]); err != nil {
			return nil, err
		}
	}
	if len(params) > 1 {
		if b.Max, err = boundParam("IntRange", 2, params[1]); err != nil {
			return nil, err
		}
	}
	return lattice.IntRange(b), nil
}

func resolveInf(params []string) (predicate.Predicate, error) {
	if len(params) == 0 {
		return lattice.AnyInf, nil
	}
	return lattice.Inf(params[0])
}

var builtinEntries = []Entry{
	{Name: "NumLike", MaxArity: 0, Resolve: fixed(lattice.NumLike)},
	{Name: "NativeNum", MaxArity: 0, Resolve: fixed(lattice.NativeNum)},
	{Name: "IntLike", MaxArity: 0, Resolve: fixed(lattice.IntLike)},
	{Name: "NaN", MaxArity: 0, Resolve: fixed(lattice.NaN)},
	{Name: "RealNum", MaxArity: 0, Resolve: fixed(lattice.RealNum)},
	{Name: "SafeInt", MaxArity: 0, Resolve: fixed(lattice.SafeInt)},
	{Name: "SafeFloat", MaxArity: 0, Resolve: fixed(lattice.SafeFloat)},
	{Name: "FloatSafeNum", MaxArity: 0, Resolve: fixed(lattice.FloatSafeNum)},
	{Name: "RealSafeNum", MaxArity: 0, Resolve: fixed(lattice.RealSafeNum)},

	{Name: "Inf", MaxArity: 1, Resolve: resolveInf},

	{
		Name: "SignedInt", MaxArity: 1,
		Resolve: optionalWidth("SignedInt", lattice.SignedInt, lattice.SignedIntBits),
	},
	{
		Name: "UnsignedInt", MaxArity: 1,
		Resolve: optionalWidth("UnsignedInt", lattice.UnsignedInt, lattice.UnsignedIntBits),
	},
	{
		Name: "BoxedNum", MaxArity: 1,
		Resolve: optionalWidth("BoxedNum", lattice.BoxedNum, lattice.BoxedNumDigits),
	},
	{
		Name: "BoxedInt", MaxArity: 1,
		Resolve: optionalWidth("BoxedInt", lattice.BoxedInt, lattice.BoxedIntDigits),
	},
	{
		Name: "BoxedFloat", MaxArity: 1,
		Resolve: optionalWidth("BoxedFloat", lattice.BoxedFloat, lattice.BoxedFloatDigits),
	},
	{
		Name: "Char", MaxArity: 1,
		Resolve: optionalWidth("Char", lattice.Char, lattice.CharBits),
	},

	pairEntry("FloatBinary", lattice.FloatBinary),
	pairEntry("FloatDecimal", lattice.FloatDecimal),
	pairEntry("FixedBinary", lattice.FixedBinary),
	pairEntry("FixedDecimal", lattice.FixedDecimal),

	{Name: "NumRange", MaxArity: 4, Resolve: resolveNumRange},
	{Name: "IntRange", MaxArity: 2, Resolve: resolveIntRange},

	{Name: "PositiveNum", MaxArity: 0, Resolve: fixed(lattice.PositiveNum)},
	{Name: "PositiveOrZeroNum", MaxArity: 0, Resolve: fixed(lattice.PositiveOrZeroNum)},
	{Name: "NegativeNum", MaxArity: 0, Resolve: fixed(lattice.NegativeNum)},
	{Name: "NegativeOrZeroNum", MaxArity: 0, Resolve: fixed(lattice.NegativeOrZeroNum)},
	{Name: "PositiveInt", MaxArity: 0, Resolve: fixed(lattice.PositiveInt)},
	{Name: "PositiveOrZeroInt", MaxArity: 0, Resolve: fixed(lattice.PositiveOrZeroInt)},
	{Name: "NegativeInt", MaxArity: 0, Resolve: fixed(lattice.NegativeInt)},
	{Name: "NegativeOrZeroInt", MaxArity: 0, Resolve: fixed(lattice.NegativeOrZeroInt)},
	{Name: "SingleDigit", MaxArity: 0, Resolve: fixed(lattice.SingleDigit)},
}
