// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package txn orchestrates the lifecycle of a single money movement.
//
// A transaction walks Idle -> Validating -> Submitting -> Settled. At
// most one submission is in flight at a time: a submit while another
// is pending is ignored rather than queued, so a double keypress can
// never move money twice. Validation failures settle locally without
// touching the network.
package txn
