// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the terminal interface for the teller client.
//
// The root App model routes between the login screen and the
// role-specific dashboards (employee, customer, ATM). Each dashboard
// is its own Bubble Tea model; the App owns the session and forwards
// messages down to whichever view is active.
//
// All network work happens in tea.Cmd functions; Update never blocks.
package ui
