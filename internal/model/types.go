// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/tellerdesk/teller-tui/internal/util"

// =============================================================================
// ROLES
// =============================================================================

// Role identifies the capability set an authenticated session is entitled to.
// The wire value for the self-service terminal role is "atm" (server contract).
type Role string

const (
	// RoleEmployee can search, create, and link accounts and profiles.
	RoleEmployee Role = "employee"

	// RoleCustomer can operate on the accounts linked to their profile.
	RoleCustomer Role = "customer"

	// RoleATM is a self-service terminal session bound to a single account.
	RoleATM Role = "atm"
)

// Valid reports whether r is one of the three enumerated roles.
// Any other value is a contract violation between client and server.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleCustomer, RoleATM:
		return true
	}
	return false
}

// =============================================================================
// ACCOUNTS
// =============================================================================

// AccountType is the product type of a ledger account.
type AccountType string

const (
	TypeChecking     AccountType = "checking"
	TypeSaving       AccountType = "saving"
	TypeLineOfCredit AccountType = "lineOfCredit"
)

// AccountTypes lists the valid account types in menu order.
var AccountTypes = []AccountType{TypeChecking, TypeSaving, TypeLineOfCredit}

// ValidAccountType reports whether s is one of the wire-level account
// type values.
func ValidAccountType(s string) bool {
	switch AccountType(s) {
	case TypeChecking, TypeSaving, TypeLineOfCredit:
		return true
	}
	return false
}

// Label returns the display name for an account type.
func (t AccountType) Label() string {
	switch t {
	case TypeChecking:
		return "Checking"
	case TypeSaving:
		return "Saving"
	case TypeLineOfCredit:
		return "Line of Credit"
	default:
		return string(t)
	}
}

// Account is a client-side snapshot of a ledger account. The PIN field is
// only populated on employee search responses; it is never written locally.
type Account struct {
	AccountNumber int64       `json:"accountNumber"`
	PIN           string      `json:"pin,omitempty"`
	Type          AccountType `json:"type"`
	Balance       float64     `json:"balance"`
}

// NumberString returns the account number in the decimal form the API expects.
func (a Account) NumberString() string {
	return util.Int64ToString(a.AccountNumber)
}

// =============================================================================
// PROFILES
// =============================================================================

// Profile is a customer profile as returned by the ledger service.
// Password is write-only from the client's perspective and never appears here.
type Profile struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	CreditScore string `json:"creditScore"`
}

// DisplayName returns the best human-readable name for the profile.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// =============================================================================
// SESSIONS
// =============================================================================

// Session is an authenticated identity plus role, valid until logout or
// invalidation. Role is immutable for the lifetime of the session; any
// refreshed snapshot produces a new Session value, never an in-place edit.
//
// An ATM session always carries exactly one account snapshot and no profile;
// a customer session carries a profile and no account snapshot.
type Session struct {
	SessionID string   `json:"sessionId"`
	Role      Role     `json:"role"`
	Profile   *Profile `json:"profile,omitempty"`
	Account   *Account `json:"account,omitempty"`
}

// WithProfile returns a copy of the session carrying a refreshed profile.
func (s Session) WithProfile(p *Profile) Session {
	s.Profile = p
	return s
}

// WithAccount returns a copy of the session carrying a refreshed account.
func (s Session) WithAccount(a *Account) Session {
	s.Account = a
	return s
}

// =============================================================================
// TRANSACTION INTENTS
// =============================================================================

// IntentKind distinguishes the two money-moving operations.
type IntentKind string

const (
	KindDeposit  IntentKind = "deposit"
	KindWithdraw IntentKind = "withdraw"
)

// TransactionIntent is a proposed deposit or withdrawal awaiting validation
// and submission. It lives for the duration of one orchestration attempt and
// is never persisted.
type TransactionIntent struct {
	Kind          IntentKind
	AccountNumber string
	Amount        float64
}
