// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file holds the tea.Cmd creators. Each command performs one
// round trip against the ledger and returns a typed message; the HTTP
// client enforces the timeout and never retries.

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
)

// commandTimeout bounds a single command, including the follow-up
// refresh a transaction performs.
const commandTimeout = 30 * time.Second

// =============================================================================
// AUTH COMMANDS
// =============================================================================

// EmployeeLoginCmd creates a command that authenticates an employee.
func EmployeeLoginCmd(client *gateway.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		sess, err := client.EmployeeLogin(ctx, username, password)
		return LoginResultMsg{Session: sess, Err: err}
	}
}

// CustomerLoginCmd creates a command that authenticates a customer.
func CustomerLoginCmd(client *gateway.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		sess, err := client.CustomerLogin(ctx, username, password)
		return LoginResultMsg{Session: sess, Err: err}
	}
}

// ATMLoginCmd creates a command that authenticates an account/PIN pair.
func ATMLoginCmd(client *gateway.Client, accountNumber, pin string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		sess, err := client.ATMLogin(ctx, accountNumber, pin)
		return LoginResultMsg{Session: sess, Err: err}
	}
}

// SignUpCmd creates a command that registers a new customer profile.
func SignUpCmd(client *gateway.Client, req gateway.CreateProfileRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return SignUpResultMsg{Err: client.CreateProfile(ctx, req)}
	}
}

// LogoutCmd creates a command that ends the session server-side.
func LogoutCmd(client *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return LogoutMsg{Err: client.Logout(ctx)}
	}
}

// =============================================================================
// ACCOUNT COMMANDS
// =============================================================================

// RefreshAccountsCmd creates a command that fetches the account list.
func RefreshAccountsCmd(client *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		accounts, err := client.GetAccounts(ctx)
		return AccountsMsg{Accounts: accounts, Err: err}
	}
}

// SubmitTxnCmd creates a command that submits a deposit or withdrawal
// and, when the ledger accepts it, refreshes the account list in the
// same command. Success is only reported once the refreshed balances
// are in hand; the view never advances a balance on its own.
func SubmitTxnCmd(client *gateway.Client, intent model.TransactionIntent) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		var (
			msg string
			err error
		)
		switch intent.Kind {
		case model.KindWithdraw:
			msg, err = client.Withdraw(ctx, intent.AccountNumber, intent.Amount)
		default:
			msg, err = client.Deposit(ctx, intent.AccountNumber, intent.Amount)
		}
		if err != nil {
			return TxnSettledMsg{OK: false, Message: gateway.ServerMessage(err), Err: err}
		}

		accounts, refreshErr := client.GetAccounts(ctx)
		if refreshErr != nil {
			// The money moved but the refresh failed. Surface the
			// refresh error; the next successful refresh will show
			// the settled balance.
			return TxnSettledMsg{OK: false, Message: "", Err: refreshErr}
		}

		return TxnSettledMsg{OK: true, Message: msg, Accounts: accounts}
	}
}

// UpdatePINCmd creates a command that changes an account PIN.
func UpdatePINCmd(client *gateway.Client, accountNumber, pin string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return PINUpdatedMsg{Err: client.UpdatePIN(ctx, accountNumber, pin)}
	}
}

// =============================================================================
// EMPLOYEE COMMANDS
// =============================================================================

// SearchAccountCmd creates a command that looks up an account by number.
func SearchAccountCmd(client *gateway.Client, accountNumber string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		result, err := client.SearchAccount(ctx, accountNumber)
		return AccountSearchMsg{Result: result, Err: err}
	}
}

// SearchProfileCmd creates a command that looks up a profile by username.
func SearchProfileCmd(client *gateway.Client, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		profile, err := client.SearchProfile(ctx, username)
		return ProfileSearchMsg{Profile: profile, Err: err}
	}
}

// CreateAccountCmd creates a command that opens a new account.
func CreateAccountCmd(client *gateway.Client, req gateway.CreateAccountRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		msg, err := client.CreateAccount(ctx, req)
		return AccountCreatedMsg{Message: msg, Err: err}
	}
}

// CreateProfileCmd creates a command that registers a profile on a
// customer's behalf.
func CreateProfileCmd(client *gateway.Client, req gateway.CreateProfileRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return ProfileSavedMsg{Err: client.CreateProfile(ctx, req)}
	}
}

// UpdateProfileCmd creates a command that edits an existing profile.
func UpdateProfileCmd(client *gateway.Client, req gateway.UpdateProfileRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return ProfileSavedMsg{Err: client.UpdateProfile(ctx, req)}
	}
}

// LinkAccountCmd creates a command that links an account to a profile.
func LinkAccountCmd(client *gateway.Client, accountNumber, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return AccountLinkedMsg{Err: client.LinkAccount(ctx, accountNumber, username)}
	}
}

// FetchLogsCmd creates a command that fetches the ledger audit log.
func FetchLogsCmd(client *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		logs, err := client.GetLogs(ctx)
		return LogsMsg{Logs: logs, Err: err}
	}
}
