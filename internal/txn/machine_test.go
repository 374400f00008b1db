// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package txn

import (
	"testing"

	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

func validIntent() model.TransactionIntent {
	return model.TransactionIntent{
		Kind:          model.KindWithdraw,
		AccountNumber: "5000",
		Amount:        25.00,
	}
}

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine()
	if m.State() != StateIdle {
		t.Fatalf("New machine should be idle, got %v", m.State())
	}

	accepted, msg := m.Submit(validIntent())
	if !accepted {
		t.Fatalf("Submit should be accepted, got message %q", msg)
	}
	if m.State() != StateSubmitting {
		t.Fatalf("Expected submitting, got %v", m.State())
	}

	m.Settle(true, "Withdrawal successful")
	if m.State() != StateSettled {
		t.Fatalf("Expected settled, got %v", m.State())
	}
	outcome := m.Outcome()
	if !outcome.OK || outcome.Message != "Withdrawal successful" {
		t.Errorf("Outcome = %+v", outcome)
	}
}

func TestMachine_SingleFlight(t *testing.T) {
	m := NewMachine()

	if accepted, _ := m.Submit(validIntent()); !accepted {
		t.Fatal("First submit should be accepted")
	}
	// Second submit while the first is pending must be dropped.
	if accepted, _ := m.Submit(validIntent()); accepted {
		t.Error("Second submit should be dropped while one is in flight")
	}
	if m.State() != StateSubmitting {
		t.Errorf("State = %v, want submitting", m.State())
	}
}

func TestMachine_ValidationFailureSettlesLocally(t *testing.T) {
	m := NewMachine()

	intent := validIntent()
	intent.Amount = -5
	accepted, msg := m.Submit(intent)
	if accepted {
		t.Error("Invalid intent must not be accepted")
	}
	if msg != validate.MsgBadAmount {
		t.Errorf("Message = %q, want %q", msg, validate.MsgBadAmount)
	}
	if m.State() != StateSettled {
		t.Errorf("State = %v, want settled", m.State())
	}
	if m.Outcome().OK {
		t.Error("Validation failure must settle as a failure")
	}

	// A corrected resubmit goes through.
	if accepted, _ := m.Submit(validIntent()); !accepted {
		t.Error("Resubmit after a validation failure should be accepted")
	}
}

func TestMachine_BadAccountNumber(t *testing.T) {
	m := NewMachine()
	intent := validIntent()
	intent.AccountNumber = "12a"

	accepted, msg := m.Submit(intent)
	if accepted {
		t.Error("Invalid account number must not be accepted")
	}
	if msg != validate.MsgBadAccountNumber {
		t.Errorf("Message = %q, want %q", msg, validate.MsgBadAccountNumber)
	}
}

func TestMachine_FallbackMessages(t *testing.T) {
	tests := []struct {
		kind model.IntentKind
		ok   bool
		want string
	}{
		{model.KindDeposit, true, "Deposit successful"},
		{model.KindDeposit, false, "Deposit failed"},
		{model.KindWithdraw, true, "Withdrawal successful"},
		{model.KindWithdraw, false, "Withdrawal failed"},
	}
	for _, tt := range tests {
		m := NewMachine()
		intent := validIntent()
		intent.Kind = tt.kind
		if accepted, _ := m.Submit(intent); !accepted {
			t.Fatal("Submit should be accepted")
		}
		m.Settle(tt.ok, "")
		if got := m.Outcome().Message; got != tt.want {
			t.Errorf("Fallback for %v ok=%v = %q, want %q", tt.kind, tt.ok, got, tt.want)
		}
	}
}

func TestMachine_ServerMessageVerbatim(t *testing.T) {
	m := NewMachine()
	if accepted, _ := m.Submit(validIntent()); !accepted {
		t.Fatal("Submit should be accepted")
	}

	m.Settle(false, "Withdrawal failed")
	if got := m.Outcome().Message; got != "Withdrawal failed" {
		t.Errorf("Message = %q, want the server text verbatim", got)
	}
}

func TestMachine_ResetWhileInFlightRefused(t *testing.T) {
	m := NewMachine()
	if accepted, _ := m.Submit(validIntent()); !accepted {
		t.Fatal("Submit should be accepted")
	}

	// Cancelling the form must not open the door to a second request
	// while the first withdrawal is still outstanding.
	m.Reset()
	if m.State() != StateSubmitting {
		t.Fatalf("State = %v, want still submitting after reset", m.State())
	}
	if accepted, _ := m.Submit(validIntent()); accepted {
		t.Fatal("Second submit must be dropped while the first is in flight")
	}

	// The pending transaction still settles normally.
	m.Settle(true, "Withdrawal successful")
	if out := m.Outcome(); !out.OK || out.Message != "Withdrawal successful" {
		t.Errorf("Outcome = %+v, want the settled success", out)
	}

	// Once settled, reset works again.
	m.Reset()
	if m.State() != StateIdle {
		t.Errorf("State = %v, want idle", m.State())
	}
}

func TestMachine_ResetClearsSettledOutcome(t *testing.T) {
	m := NewMachine()
	if accepted, _ := m.Submit(validIntent()); !accepted {
		t.Fatal("Submit should be accepted")
	}
	m.Settle(true, "")
	m.Reset()

	if m.State() != StateIdle {
		t.Errorf("State = %v, want idle", m.State())
	}
	if out := m.Outcome(); out.OK || out.Message != "" {
		t.Errorf("Outcome should be cleared, got %+v", out)
	}
}
