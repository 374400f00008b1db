// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines all Bubble Tea message types used by the teller
// interface. Messages are organized into the following categories:
//   - Auth: login results and logout completion
//   - Accounts: refreshed account lists and transaction settlement
//   - Employee: searches, account/profile maintenance, audit logs
//
// All message types follow Bubble Tea conventions and are immutable.

package ui

import (
	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
)

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// LoginResultMsg reports the outcome of any of the three login flows.
type LoginResultMsg struct {
	Session model.Session
	Err     error
}

// SignUpResultMsg reports the outcome of a customer self-registration.
type SignUpResultMsg struct {
	Err error
}

// LogoutMsg reports that the logout round trip finished. The local
// session is gone regardless of Err.
type LogoutMsg struct {
	Err error
}

// =============================================================================
// ACCOUNT MESSAGES
// =============================================================================

// AccountsMsg delivers a fresh account list from the ledger.
type AccountsMsg struct {
	Accounts []model.Account
	Err      error
}

// TxnSettledMsg reports a settled deposit or withdrawal. On success,
// Accounts carries the post-transaction refresh so the view never
// shows a balance the ledger has not confirmed.
type TxnSettledMsg struct {
	OK       bool
	Message  string
	Accounts []model.Account
	Err      error
}

// PINUpdatedMsg reports the outcome of a PIN change.
type PINUpdatedMsg struct {
	Err error
}

// =============================================================================
// EMPLOYEE MESSAGES
// =============================================================================

// AccountSearchMsg delivers the result of an account lookup.
type AccountSearchMsg struct {
	Result *gateway.SearchResult
	Err    error
}

// ProfileSearchMsg delivers the result of a profile lookup.
type ProfileSearchMsg struct {
	Profile *model.Profile
	Err     error
}

// AccountCreatedMsg reports the outcome of opening a new account.
type AccountCreatedMsg struct {
	Message string
	Err     error
}

// ProfileSavedMsg reports the outcome of a profile create or update.
type ProfileSavedMsg struct {
	Err error
}

// AccountLinkedMsg reports the outcome of linking an account to a
// profile.
type AccountLinkedMsg struct {
	Err error
}

// LogsMsg delivers the ledger's audit log lines.
type LogsMsg struct {
	Logs []string
	Err  error
}
