// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package accounts

import (
	"github.com/tellerdesk/teller-tui/internal/model"
)

// Selection holds the refreshed account list and the operator's
// current choice within it.
type Selection struct {
	accounts []model.Account
	selected int // index into accounts, -1 when nothing is selected
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{selected: -1}
}

// List returns the current account list in server order.
func (s *Selection) List() []model.Account {
	return s.accounts
}

// Len returns the number of accounts in the list.
func (s *Selection) Len() int {
	return len(s.accounts)
}

// SetAccounts replaces the list with a fresh copy from the ledger and
// carries the selection across: the same account number when it is
// still present, otherwise the first account, otherwise nothing.
func (s *Selection) SetAccounts(accounts []model.Account) {
	var keep int64 = -1
	if cur, ok := s.Selected(); ok {
		keep = cur.AccountNumber
	}

	s.accounts = accounts
	s.selected = -1

	if len(accounts) == 0 {
		return
	}

	s.selected = 0
	if keep < 0 {
		return
	}
	for i, acct := range accounts {
		if acct.AccountNumber == keep {
			s.selected = i
			return
		}
	}
}

// Select picks the account with the given number. Returns false and
// leaves the selection unchanged when the number is not in the list.
func (s *Selection) Select(accountNumber int64) bool {
	for i, acct := range s.accounts {
		if acct.AccountNumber == accountNumber {
			s.selected = i
			return true
		}
	}
	return false
}

// SelectIndex picks the account at position i in the list.
func (s *Selection) SelectIndex(i int) bool {
	if i < 0 || i >= len(s.accounts) {
		return false
	}
	s.selected = i
	return true
}

// SelectedIndex returns the position of the selected account, or -1.
func (s *Selection) SelectedIndex() int {
	return s.selected
}

// Selected returns the selected account, if any. The returned value is
// the refreshed copy, so its balance reflects the last refresh.
func (s *Selection) Selected() (model.Account, bool) {
	if s.selected < 0 || s.selected >= len(s.accounts) {
		return model.Account{}, false
	}
	return s.accounts[s.selected], true
}

// Next moves the selection down the list, stopping at the end.
func (s *Selection) Next() {
	if s.selected < len(s.accounts)-1 {
		s.selected++
	}
}

// Prev moves the selection up the list, stopping at the start.
func (s *Selection) Prev() {
	if s.selected > 0 {
		s.selected--
	}
}
