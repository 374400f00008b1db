// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"math"
	"regexp"
	"strings"
)

// User-facing messages shown next to the offending field. Keep them
// stable; the UI renders them verbatim.
const (
	MsgBadPIN           = "PIN must be exactly 4 digits"
	MsgBadAmount        = "Amount must be a positive number"
	MsgBadAccountNumber = "Account number must be at least 4 digits"
	MsgEmptyUsername    = "Username is required"
	MsgPINMismatch      = "PINs do not match"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// PIN reports whether s is exactly four ASCII digits. Leading zeros
// are legal ("0000" is a valid PIN).
func PIN(s string) bool {
	return pinPattern.MatchString(s)
}

// Amount reports whether f is a finite, strictly positive value.
// NaN and infinities are rejected before any arithmetic touches them.
func Amount(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f > 0
}

// AccountNumber reports whether s is all digits and at least four
// characters long.
func AccountNumber(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Username reports whether s is non-empty after trimming whitespace.
func Username(s string) bool {
	return strings.TrimSpace(s) != ""
}
