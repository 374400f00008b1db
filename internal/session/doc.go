// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the authenticated session across client
// restarts.
//
// The whole session record is stored under a single file and replaced
// wholesale on every change: login writes it, logout removes it. A
// file that cannot be parsed is treated the same as no session at all
// and is removed so the next start begins clean.
package session
