// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package numcheck implements the numcheck tool, which classifies
// numeric values against the predicate catalog.
package numcheck

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/numtypes/numtypes/common/log"
	"github.com/numtypes/numtypes/common/predicate"
	"github.com/numtypes/numtypes/common/registry"
	"github.com/numtypes/numtypes/common/util"
)

// NumCheck is a container for the user-specified options and state
// needed to run a check.
type NumCheck struct {
	Options  Options
	Registry *registry.Registry

	// Out is where check results are written, normally stdout.
	Out io.Writer
}

// New returns a NumCheck over the default registry.
func New(opts Options, out io.Writer) *NumCheck {
	return &NumCheck{
		Options:  opts,
		Registry: registry.Default(),
		Out:      out,
	}
}

// ParseValue reads one command-line value. Integer literals keep their
// exact value no matter the magnitude; fractional literals become
// native floats unless forceDecimal routes everything through the
// 128-bit decimal parser.
func ParseValue(s string, forceDecimal bool) (any, error) {
	special := ""
	switch strings.ToLower(s) {
	case "nan":
		special = "NaN"
	case "inf", "+inf", "infinity", "+infinity":
		special = "Infinity"
	case "-inf", "-infinity":
		special = "-Infinity"
	}

	if forceDecimal {
		if special != "" {
			s = special
		}
		d, err := primitive.ParseDecimal128(s)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse %q as a decimal", s)
		}
		return d, nil
	}

	switch special {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, nil
	}
	if !strings.ContainsAny(s, ".eE") {
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b, nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	if d, err := primitive.ParseDecimal128(s); err == nil {
		return d, nil
	}
	return nil, errors.Errorf("cannot parse %q as a number", s)
}

// CheckResult is the outcome of checking one value.
type CheckResult struct {
	Input  string
	OK     bool
	Reason string
}

// CheckValues resolves the predicate spec and checks every raw value
// against it.
func (nc *NumCheck) CheckValues(spec string, raw []string) ([]CheckResult, error) {
	p, err := nc.Registry.ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, len(raw))
	for i, s := range raw {
		v, err := ParseValue(s, nc.Options.Decimal)
		if err != nil {
			results[i] = CheckResult{Input: s, Reason: err.Error()}
			continue
		}

		if nc.Options.Explain {
			ok, reason := predicate.Explain(p, v)
			results[i] = CheckResult{Input: s, OK: ok, Reason: reason}
		} else {
			results[i] = CheckResult{Input: s, OK: p.Check(v)}
		}
	}
	return results, nil
}

// Run executes the selected mode and returns the process exit code.
func (nc *NumCheck) Run(ctx context.Context) int {
	if nc.Options.List {
		for _, name := range nc.Registry.Names() {
			fmt.Fprintln(nc.Out, name)
		}
		return util.ExitSuccess
	}

	if nc.Options.Suite != "" {
		return nc.runSuiteFile(ctx, nc.Options.Suite)
	}

	if nc.Options.PredicateSpec == "" {
		log.Logvf(log.Always, "no predicate specified")
		return util.ExitBadOptions
	}
	if len(nc.Options.Values) == 0 {
		log.Logvf(log.Always, "no values to check")
		return util.ExitBadOptions
	}

	results, err := nc.CheckValues(nc.Options.PredicateSpec, nc.Options.Values)
	if err != nil {
		log.Logvf(log.Always, "invalid predicate: %v", err)
		return util.ExitBadOptions
	}

	failed := 0
	for _, r := range results {
		if r.OK {
			fmt.Fprintf(nc.Out, "%s: ok\n", r.Input)
			continue
		}
		failed++
		if r.Reason != "" {
			fmt.Fprintf(nc.Out, "%s: FAIL (%s)\n", r.Input, r.Reason)
		} else {
			fmt.Fprintf(nc.Out, "%s: FAIL\n", r.Input)
		}
	}

	log.Logvf(log.Info, "checked %d value(s), %d failed", len(results), failed)
	if failed > 0 {
		return util.ExitFailure
	}
	return util.ExitSuccess
}

func (nc *NumCheck) runSuiteFile(ctx context.Context, path string) int {
	suite, err := LoadSuite(path)
	if err != nil {
		log.Logvf(log.Always, "cannot load suite: %v", err)
		return util.ExitBadOptions
	}

	summary, err := nc.RunSuite(ctx, suite)
	if err != nil {
		log.Logvf(log.Always, "suite failed to run: %v", err)
		return util.ExitBadOptions
	}

	for _, f := range summary.Failures {
		fmt.Fprintf(nc.Out, "%s: %s: expected %s\n", f.Predicate, f.Value, f.Want)
	}
	fmt.Fprintf(nc.Out, "%d passed, %d failed\n", summary.Passed, summary.Failed)

	if summary.Failed > 0 {
		return util.ExitFailure
	}
	return util.ExitSuccess
}
