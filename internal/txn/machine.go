// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package txn

import (
	"sync"

	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

// State is a phase in the transaction lifecycle.
type State int

const (
	// StateIdle means no transaction is being prepared.
	StateIdle State = iota
	// StateValidating means input is being checked locally.
	StateValidating
	// StateSubmitting means a request is in flight. No second submit
	// is accepted until the pending one settles.
	StateSubmitting
	// StateSettled means the last transaction finished, successfully
	// or not, and its outcome is available.
	StateSettled
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Fallback messages used when the server's response carries no text.
const (
	fallbackDepositFailed  = "Deposit failed"
	fallbackWithdrawFailed = "Withdrawal failed"
	fallbackDepositOK      = "Deposit successful"
	fallbackWithdrawOK     = "Withdrawal successful"
)

// Outcome is the settled result of a transaction.
type Outcome struct {
	OK      bool
	Message string
}

// Machine drives a single transaction through its lifecycle. It is
// safe for concurrent use: the UI goroutine submits while the command
// goroutine settles.
type Machine struct {
	mu      sync.Mutex
	state   State
	intent  model.TransactionIntent
	outcome Outcome
}

// NewMachine returns a machine in the idle state.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current lifecycle phase.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Intent returns the transaction currently being processed. Only
// meaningful while submitting or settled.
func (m *Machine) Intent() model.TransactionIntent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intent
}

// Outcome returns the settled result. Only meaningful in StateSettled.
func (m *Machine) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

// InFlight reports whether a submission is pending.
func (m *Machine) InFlight() bool {
	return m.State() == StateSubmitting
}

// Submit validates the intent and, if it passes, moves the machine to
// StateSubmitting. The caller fires the network request only when
// accepted is true.
//
// A submit while another is in flight is dropped (accepted false, no
// message). A validation failure settles immediately with the
// validation message and never reaches the caller's network path.
func (m *Machine) Submit(intent model.TransactionIntent) (accepted bool, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return false, ""
	}

	m.state = StateValidating
	if vmsg := validateIntent(intent); vmsg != "" {
		m.state = StateSettled
		m.outcome = Outcome{OK: false, Message: vmsg}
		return false, vmsg
	}

	m.state = StateSubmitting
	m.intent = intent
	m.outcome = Outcome{}
	return true, ""
}

// Settle records the server's verdict for the in-flight transaction.
// The server's message is shown verbatim when present; otherwise a
// generic message for the transaction kind is used. Settling a machine
// that is not submitting is a no-op (a duplicate or stray response).
func (m *Machine) Settle(ok bool, serverMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSubmitting {
		return
	}

	msg := serverMsg
	if msg == "" {
		msg = fallbackMessage(m.intent.Kind, ok)
	}
	m.state = StateSettled
	m.outcome = Outcome{OK: ok, Message: msg}
}

// Reset returns the machine to idle, discarding any settled outcome.
// Called when the operator edits the form or starts a new transaction.
// While a request is in flight the reset is refused: an issued request
// cannot be cancelled, so the machine stays submitting until the
// pending transaction settles and no new attempt can start before then.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return
	}
	m.state = StateIdle
	m.intent = model.TransactionIntent{}
	m.outcome = Outcome{}
}

// validateIntent returns the first validation message for the intent,
// or "" when it is acceptable.
func validateIntent(intent model.TransactionIntent) string {
	if !validate.AccountNumber(intent.AccountNumber) {
		return validate.MsgBadAccountNumber
	}
	if !validate.Amount(intent.Amount) {
		return validate.MsgBadAmount
	}
	return ""
}

// fallbackMessage picks the generic outcome text for a kind.
func fallbackMessage(kind model.IntentKind, ok bool) string {
	switch {
	case kind == model.KindWithdraw && ok:
		return fallbackWithdrawOK
	case kind == model.KindWithdraw:
		return fallbackWithdrawFailed
	case ok:
		return fallbackDepositOK
	default:
		return fallbackDepositFailed
	}
}
