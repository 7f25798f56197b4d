// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package numeric

import "strings"

// IntegerForm reports whether the exact decimal form s denotes an
// integer. Accepted shapes are an optional sign, digits, an optional
// fraction whose digits must all be zero after applying any exponent,
// and an optional exponent ("5", "5.00", "5E+3", "1.25E2"). Rational
// forms with a slash and anything non-numeric are not integer forms.
func IntegerForm(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}

	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		var ok bool
		exp, ok = parseExponent(s[i+1:])
		if !ok {
			return false
		}
	}

	intPart, fracPart, hasDot := strings.Cut(mantissa, ".")
	if !isDigits(intPart) || (intPart == "" && fracPart == "") {
		return false
	}
	if hasDot && (fracPart == "" || !isDigits(fracPart)) {
		return false
	}

	// A positive exponent shifts the point right: fraction digits that
	// remain behind the point must all be zero. A negative exponent
	// shifts integer digits behind the point instead.
	if exp < 0 {
		if strings.Trim(fracPart, "0") != "" {
			return false
		}
		shift := -exp
		if shift > len(intPart) {
			intPart = strings.Repeat("0", shift-len(intPart)) + intPart
		}
		return strings.Trim(intPart[len(intPart)-shift:], "0") == ""
	}
	if exp >= len(fracPart) {
		return true
	}
	return strings.Trim(fracPart[exp:], "0") == ""
}

// DigitCount returns the decimal digit length of the value the exact
// form denotes, as if it were written out in plain positional notation:
// any exponent is applied first, so "1E+10" counts 11 digits even
// though only one appears in the rendering. Leading integer zeros and
// trailing fraction zeros do not count; the lone zero counts as one
// digit. This is the digit-length measure used by the boxed-integer
// capacity check. Forms that do not parse fall back to counting their
// raw digit characters.
func DigitCount(s string) int {
	trimmed := s
	if trimmed != "" && (trimmed[0] == '+' || trimmed[0] == '-') {
		trimmed = trimmed[1:]
	}

	mantissa := trimmed
	exp := 0
	if i := strings.IndexAny(trimmed, "eE"); i >= 0 {
		mantissa = trimmed[:i]
		var ok bool
		exp, ok = parseExponent(trimmed[i+1:])
		if !ok {
			return rawDigitCount(s)
		}
	}

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if !isDigits(intPart) || !isDigits(fracPart) || intPart+fracPart == "" {
		return rawDigitCount(s)
	}

	digits := intPart + fracPart
	point := len(intPart) + exp

	var whole, frac string
	switch {
	case point >= len(digits):
		whole = digits + strings.Repeat("0", point-len(digits))
	case point <= 0:
		frac = strings.Repeat("0", -point) + digits
	default:
		whole = digits[:point]
		frac = digits[point:]
	}

	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	frac = strings.TrimRight(frac, "0")
	return len(whole) + len(frac)
}

func rawDigitCount(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

func parseExponent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if !isDigits(s) || s == "" {
		return 0, false
	}
	exp := 0
	for i := 0; i < len(s); i++ {
		exp = exp*10 + int(s[i]-'0')
		if exp > 1<<20 {
			// Far beyond any real exponent; clamp to keep the shift
			// arithmetic trivial.
			exp = 1 << 20
			break
		}
	}
	if neg {
		exp = -exp
	}
	return exp, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
