// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package util

import "fmt"

const (
	// ExitSuccess means the tool exited successfully.
	ExitSuccess = 0
	// ExitFailure means the tool exited with some kind of error.
	ExitFailure = 1
	// ExitBadOptions means the tool was given invalid command line
	// options.
	ExitBadOptions = 3
)

// ShortUsage returns a one-line hint pointing at the full help output.
func ShortUsage(tool string) string {
	return fmt.Sprintf("try '%s --help' for more information", tool)
}
