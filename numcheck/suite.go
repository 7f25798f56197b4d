// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package numcheck

import (
	"context"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/numtypes/numtypes/common/log"
)

// Suite is a YAML-described batch of checks: for each predicate, the
// values it must accept and the values it must reject.
type Suite struct {
	Checks []SuiteCheck `yaml:"checks"`
}

type SuiteCheck struct {
	Predicate string   `yaml:"predicate"`
	Decimal   bool     `yaml:"decimal"`
	Accept    []string `yaml:"accept"`
	Reject    []string `yaml:"reject"`
}

// SuiteFailure records one value that did not behave as the suite
// expects.
type SuiteFailure struct {
	Predicate string
	Value     string
	Want      string
}

// SuiteSummary is the aggregate outcome of a suite run.
type SuiteSummary struct {
	Passed   int
	Failed   int
	Failures []SuiteFailure
}

// LoadSuite reads and parses a suite file.
func LoadSuite(path string) (*Suite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading suite file %v", path)
	}

	var suite Suite
	if err := yaml.Unmarshal(raw, &suite); err != nil {
		return nil, errors.Wrapf(err, "parsing suite file %v", path)
	}
	if len(suite.Checks) == 0 {
		return nil, errors.Errorf("suite file %v has no checks", path)
	}
	for i, c := range suite.Checks {
		if c.Predicate == "" {
			return nil, errors.Errorf("suite check %d has no predicate", i)
		}
	}
	return &suite, nil
}

// RunSuite evaluates every check concurrently. A check that names an
// unresolvable predicate aborts the whole run; expectation mismatches
// are collected into the summary instead.
func (nc *NumCheck) RunSuite(ctx context.Context, suite *Suite) (SuiteSummary, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	perCheck := make([][]SuiteFailure, len(suite.Checks))
	for i, check := range suite.Checks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := nc.Registry.ParseSpec(check.Predicate)
			if err != nil {
				return errors.Wrapf(err, "check %d", i)
			}

			var failures []SuiteFailure
			record := func(value, want string) {
				failures = append(failures, SuiteFailure{
					Predicate: check.Predicate,
					Value:     value,
					Want:      want,
				})
			}

			for _, s := range check.Accept {
				v, err := ParseValue(s, check.Decimal)
				if err != nil || !p.Check(v) {
					record(s, "accept")
				}
			}
			for _, s := range check.Reject {
				v, err := ParseValue(s, check.Decimal)
				if err != nil {
					record(s, "a parseable value")
					continue
				}
				if p.Check(v) {
					record(s, "reject")
				}
			}

			perCheck[i] = failures
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return SuiteSummary{}, err
	}

	summary := SuiteSummary{Failures: lo.Flatten(perCheck)}
	for i, c := range suite.Checks {
		total := len(c.Accept) + len(c.Reject)
		summary.Failed += len(perCheck[i])
		summary.Passed += total - len(perCheck[i])
	}

	failedChecks := lo.CountBy(perCheck, func(f []SuiteFailure) bool {
		return len(f) > 0
	})
	log.Logvf(log.DebugLow, "%d of %d suite checks had failures",
		failedChecks, len(suite.Checks))

	return summary, nil
}
