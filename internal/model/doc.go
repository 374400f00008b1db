// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types shared across the teller client:
// sessions, accounts, profiles, and transaction intents.
//
// Every type here is an ephemeral client-side copy of server-owned state.
// The ledger service is the source of truth; a copy is stale until the
// next explicit refresh.
package model
