// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

func newTestCustomer() CustomerModel {
	client := gateway.NewClient("http://127.0.0.1:0")
	sess := model.Session{
		SessionID: "s1",
		Role:      model.RoleCustomer,
		Profile:   &model.Profile{Username: "alice", Name: "Alice"},
	}
	return NewCustomerModel(client, sess)
}

func TestCustomer_AccountsRefreshKeepsSelection(t *testing.T) {
	m := newTestCustomer()

	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 101, Type: model.TypeChecking, Balance: 10},
		{AccountNumber: 102, Type: model.TypeSaving, Balance: 20},
	}})
	m.selection.Select(102)

	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 101, Type: model.TypeChecking, Balance: 10},
		{AccountNumber: 102, Type: model.TypeSaving, Balance: 25},
		{AccountNumber: 103, Type: model.TypeChecking, Balance: 0},
	}})

	sel, ok := m.selection.Selected()
	if !ok || sel.AccountNumber != 102 {
		t.Errorf("Selected = %+v ok=%v, want account 102", sel, ok)
	}
	if sel.Balance != 25 {
		t.Errorf("Balance = %v, want the refreshed 25", sel.Balance)
	}
}

func TestCustomer_SettledSuccessShowsRefreshedBalance(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startAmountEntry(model.KindWithdraw)
	m.amountInput.SetValue("25.00")
	m, cmd := m.submitAmount()
	if cmd == nil {
		t.Fatal("Valid amount should fire the transaction command")
	}
	if !m.machine.InFlight() {
		t.Fatal("Machine should be submitting")
	}

	// The command settles with the post-transaction refresh attached.
	m, _ = m.Update(TxnSettledMsg{
		OK:      true,
		Message: "Withdrawal successful",
		Accounts: []model.Account{
			{AccountNumber: 5000, Type: model.TypeChecking, Balance: 75},
		},
	})

	sel, _ := m.selection.Selected()
	if sel.Balance != 75 {
		t.Errorf("Balance = %v, want the settled 75", sel.Balance)
	}
	if m.status != "Withdrawal successful" || !m.statusOK {
		t.Errorf("status = %q ok=%v", m.status, m.statusOK)
	}
	if m.entering {
		t.Error("Amount form should close after a settled success")
	}
}

func TestCustomer_InvalidAmountNeverSubmits(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startAmountEntry(model.KindDeposit)
	m.amountInput.SetValue("-5")
	m, cmd := m.submitAmount()
	if cmd != nil {
		t.Error("Negative amount must not reach the network")
	}
	if m.status == "" {
		t.Error("A validation message should be shown")
	}
}

func TestCustomer_DoubleSubmitDropped(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startAmountEntry(model.KindWithdraw)
	m.amountInput.SetValue("10")
	m, cmd := m.submitAmount()
	if cmd == nil {
		t.Fatal("First submit should fire")
	}
	if _, cmd := m.submitAmount(); cmd != nil {
		t.Error("Second submit while one is in flight must be dropped")
	}
}

func TestCustomer_RejectionShowsServerMessage(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startAmountEntry(model.KindWithdraw)
	m.amountInput.SetValue("500")
	m, _ = m.submitAmount()

	m, _ = m.Update(TxnSettledMsg{
		OK:      false,
		Message: "Withdrawal failed",
		Err:     gateway.ErrRejected,
	})

	if m.statusOK {
		t.Error("Rejection must not read as success")
	}
	if m.status != "Withdrawal failed" {
		t.Errorf("status = %q, want the server message", m.status)
	}

	// Balance is untouched; only a refresh may change it.
	sel, _ := m.selection.Selected()
	if sel.Balance != 100 {
		t.Errorf("Balance = %v, want the unrefreshed 100", sel.Balance)
	}
}

func TestCustomer_ShortPINNeverLeavesTheClient(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startPINEntry()
	m.pinInputs[0].SetValue("12")
	m.pinInputs[1].SetValue("12")
	m, cmd := m.submitPIN()

	if cmd != nil {
		t.Error("A rejected PIN must not produce a network command")
	}
	if m.status != validate.MsgBadPIN {
		t.Errorf("status = %q, want %q", m.status, validate.MsgBadPIN)
	}
	if m.pinPending {
		t.Error("Nothing should be pending after a local rejection")
	}
}

func TestCustomer_PINConfirmationMismatch(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startPINEntry()
	m.pinInputs[0].SetValue("1234")
	m.pinInputs[1].SetValue("9999")
	m, cmd := m.submitPIN()

	if cmd != nil {
		t.Error("Mismatched PINs must not reach the network")
	}
	if m.status != validate.MsgPINMismatch {
		t.Errorf("status = %q, want %q", m.status, validate.MsgPINMismatch)
	}
}

func TestCustomer_PINChangeSubmitsAndSettles(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startPINEntry()
	m.pinInputs[0].SetValue("4321")
	m.pinInputs[1].SetValue("4321")
	m, cmd := m.submitPIN()
	if cmd == nil {
		t.Fatal("A valid PIN change should fire")
	}
	if !m.pinPending {
		t.Error("The change should be pending")
	}
	if _, cmd := m.submitPIN(); cmd != nil {
		t.Error("A second submit while one is pending must be dropped")
	}

	m, _ = m.Update(PINUpdatedMsg{})
	if m.status != "PIN updated" || !m.statusOK {
		t.Errorf("status = %q ok=%v", m.status, m.statusOK)
	}
	if m.changingPIN {
		t.Error("The form should close after a successful update")
	}
}

func TestCustomer_PINChangeNeedsSelection(t *testing.T) {
	m := newTestCustomer()

	m = m.startPINEntry()
	if m.changingPIN {
		t.Error("The form must not open without a selected account")
	}
	if m.status != "No account selected" {
		t.Errorf("status = %q", m.status)
	}
}

func TestCustomer_CancelMidFlightKeepsSingleFlight(t *testing.T) {
	m := newTestCustomer()
	m, _ = m.Update(AccountsMsg{Accounts: []model.Account{
		{AccountNumber: 5000, Type: model.TypeChecking, Balance: 100},
	}})

	m = m.startAmountEntry(model.KindWithdraw)
	m.amountInput.SetValue("10")
	m, cmd := m.submitAmount()
	if cmd == nil {
		t.Fatal("First submit should fire")
	}

	// Abandoning the form does not cancel the issued request; a new
	// attempt stays locked out until the first one settles.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = m.startAmountEntry(model.KindWithdraw)
	m.amountInput.SetValue("10")
	m, cmd = m.submitAmount()
	if cmd != nil {
		t.Fatal("Second submit must be dropped while the first is in flight")
	}

	// The outstanding withdrawal still settles.
	m, _ = m.Update(TxnSettledMsg{
		OK:      true,
		Message: "Withdrawal successful",
		Accounts: []model.Account{
			{AccountNumber: 5000, Type: model.TypeChecking, Balance: 90},
		},
	})
	sel, _ := m.selection.Selected()
	if sel.Balance != 90 {
		t.Errorf("Balance = %v, want the settled 90", sel.Balance)
	}
}
