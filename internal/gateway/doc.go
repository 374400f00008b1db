// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the ledger REST service.
//
// The ledger owns all account and profile state; this client never
// caches or computes balances locally. Every call is a single attempt
// with a bounded timeout: a failed request is reported to the caller,
// never silently retried.
//
// Server rejections (HTTP errors carrying a JSON error message) are
// surfaced as *APIError values wrapping a sentinel, so callers can
// branch with errors.Is while still showing the server's message
// verbatim. Transport failures wrap ErrUnavailable instead.
package gateway
