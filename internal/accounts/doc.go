// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package accounts tracks the account list shown to the operator and
// which account is currently selected.
//
// The list is replaced wholesale on every refresh from the ledger;
// selection survives the refresh when the same account number is still
// present, falls back to the first account otherwise, and clears when
// the list comes back empty.
package accounts
