// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package numcheck

import (
	"github.com/numtypes/numtypes/common/options"
)

var Usage = `<options> <predicate> [value [value ...]]

Classify numeric values against catalog predicates.

Predicates are named catalog entries, optionally parameterized in
square brackets, e.g. SignedInt[32] or NumRange[0,1,0,1].

See the --list output for the available catalog entries.`

// CheckOptions defines the set of options to use in checking values.
type CheckOptions struct {
	Decimal bool   `long:"decimal" description:"parse values as 128-bit decimal floats instead of native numbers"`
	Explain bool   `long:"explain" description:"report which branch of the predicate rejected each failing value"`
	Suite   string `long:"suite" value-name:"<file>" description:"run the checks described in a YAML suite file"`
	List    bool   `long:"list" description:"list the catalog entries and exit"`
}

// Name returns a human-readable group name for check options.
func (*CheckOptions) Name() string {
	return "check"
}

type Options struct {
	*options.ToolOptions
	*CheckOptions

	// PredicateSpec is the first positional argument, the predicate to
	// check values against.
	PredicateSpec string

	// Values are the remaining positional arguments.
	Values []string
}

// ParseOptions reads the command line arguments and returns the
// assembled options. Positional arguments are kept raw; whether they
// are required depends on the selected mode.
func ParseOptions(rawArgs []string, versionStr, gitCommit string) (Options, error) {
	opts := options.New("numcheck", versionStr, gitCommit, Usage)

	checkOpts := &CheckOptions{}
	opts.AddOptions(checkOpts)

	args, err := opts.ParseArgs(rawArgs)
	if err != nil {
		return Options{}, err
	}

	result := Options{
		ToolOptions:  opts,
		CheckOptions: checkOpts,
	}
	if len(args) > 0 {
		result.PredicateSpec = args[0]
		result.Values = args[1:]
	}
	return result, nil
}
