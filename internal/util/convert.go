// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strconv"

// Int64ToString converts an int64 to its decimal string form.
func Int64ToString(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FloatToString converts a float64 to a string with 2 decimal places.
func FloatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatMoney renders an amount the way the dashboards display
// balances: a dollar sign followed by two decimal places.
func FormatMoney(f float64) string {
	return "$" + FloatToString(f)
}
