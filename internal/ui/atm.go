// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/txn"
	"github.com/tellerdesk/teller-tui/internal/ui/styles"
	"github.com/tellerdesk/teller-tui/internal/util"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

// atmForm is which entry form the ATM screen currently shows.
type atmForm int

const (
	atmFormNone atmForm = iota
	atmFormDeposit
	atmFormWithdraw
	atmFormPIN
)

// ATMModel is the single-account ATM screen: balance, deposit,
// withdrawal, and PIN change for the account the session is bound to.
type ATMModel struct {
	client  *gateway.Client
	session model.Session

	account model.Account
	machine *txn.Machine

	form       atmForm
	input      textinput.Model
	pinPending bool

	loading  bool
	status   string
	statusOK bool
}

// NewATMModel builds the ATM screen for a session. The session's
// account is only a starting point; the first refresh replaces it.
func NewATMModel(client *gateway.Client, sess model.Session) ATMModel {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 16

	m := ATMModel{
		client:  client,
		session: sess,
		machine: txn.NewMachine(),
		input:   ti,
		loading: true,
	}
	if sess.Account != nil {
		m.account = *sess.Account
	}
	return m
}

// Init implements tea.Model.
func (m ATMModel) Init() tea.Cmd {
	return RefreshAccountsCmd(m.client)
}

// Update implements tea.Model.
func (m ATMModel) Update(msg tea.Msg) (ATMModel, tea.Cmd) {
	switch msg := msg.(type) {
	case AccountsMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Could not load account")
			m.statusOK = false
			return m, nil
		}
		m.applyAccounts(msg.Accounts)
		return m, nil

	case TxnSettledMsg:
		m.machine.Settle(msg.OK, msg.Message)
		outcome := m.machine.Outcome()
		if msg.OK {
			m.applyAccounts(msg.Accounts)
			m.closeForm()
			m.status = outcome.Message
			m.statusOK = true
		} else {
			m.status = failureText(msg.Err, outcome.Message)
			m.statusOK = false
		}
		return m, nil

	case PINUpdatedMsg:
		m.pinPending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "PIN update failed")
			m.statusOK = false
			return m, nil
		}
		m.closeForm()
		m.status = "PIN updated"
		m.statusOK = true
		return m, nil

	case tea.KeyMsg:
		if m.form != atmFormNone {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "d":
			return m.openForm(atmFormDeposit), nil
		case "w":
			return m.openForm(atmFormWithdraw), nil
		case "p":
			return m.openForm(atmFormPIN), nil
		case "r":
			m.loading = true
			m.status = ""
			return m, RefreshAccountsCmd(m.client)
		}
	}
	return m, nil
}

// applyAccounts picks this session's account out of a refreshed list
// and carries the snapshot into the session value.
func (m *ATMModel) applyAccounts(list []model.Account) {
	for _, acct := range list {
		if acct.AccountNumber == m.account.AccountNumber || m.account.AccountNumber == 0 {
			m.setAccount(acct)
			return
		}
	}
	if len(list) > 0 {
		m.setAccount(list[0])
	}
}

func (m *ATMModel) setAccount(acct model.Account) {
	m.account = acct
	snap := acct
	m.session = m.session.WithAccount(&snap)
}

// openForm shows an entry form.
func (m ATMModel) openForm(form atmForm) ATMModel {
	m.form = form
	m.input.Reset()
	m.machine.Reset()
	m.status = ""
	if form == atmFormPIN {
		m.input.Placeholder = "new PIN"
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '*'
		m.input.CharLimit = 4
	} else {
		m.input.Placeholder = "amount"
		m.input.EchoMode = textinput.EchoNormal
		m.input.CharLimit = 16
	}
	m.input.Focus()
	return m
}

// closeForm hides the entry form.
func (m *ATMModel) closeForm() {
	m.form = atmFormNone
	m.input.Reset()
}

// updateForm handles keys while an entry form is open.
func (m ATMModel) updateForm(msg tea.KeyMsg) (ATMModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.machine.Reset()
		m.status = ""
		return m, nil
	case "enter":
		if m.form == atmFormPIN {
			return m.submitPIN()
		}
		return m.submitAmount()
	}

	if m.machine.State() == txn.StateSettled {
		m.machine.Reset()
		m.status = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitAmount runs the amount through the transaction machine.
func (m ATMModel) submitAmount() (ATMModel, tea.Cmd) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
	if err != nil {
		m.status = validate.MsgBadAmount
		m.statusOK = false
		return m, nil
	}

	kind := model.KindDeposit
	if m.form == atmFormWithdraw {
		kind = model.KindWithdraw
	}
	intent := model.TransactionIntent{
		Kind:          kind,
		AccountNumber: m.account.NumberString(),
		Amount:        amount,
	}
	accepted, vmsg := m.machine.Submit(intent)
	if !accepted {
		if vmsg != "" {
			m.status = vmsg
			m.statusOK = false
		}
		return m, nil
	}

	m.status = ""
	return m, SubmitTxnCmd(m.client, intent)
}

// submitPIN validates and fires the PIN change.
func (m ATMModel) submitPIN() (ATMModel, tea.Cmd) {
	pin := m.input.Value()
	if !validate.PIN(pin) {
		m.status = validate.MsgBadPIN
		m.statusOK = false
		return m, nil
	}
	if m.pinPending {
		return m, nil
	}
	m.pinPending = true
	m.status = ""
	return m, UpdatePINCmd(m.client, m.account.NumberString(), pin)
}

// View implements tea.Model.
func (m ATMModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("ATM - Account " + m.account.NumberString()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.RenderInfo("Loading account..."))
	} else {
		b.WriteString(styles.Label.Render("Type    "))
		b.WriteString(m.account.Type.Label())
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Balance "))
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true).
			Render(util.FormatMoney(m.account.Balance)))
	}
	b.WriteString("\n")

	if m.form != atmFormNone {
		label := "Deposit amount"
		switch m.form {
		case atmFormWithdraw:
			label = "Withdraw amount"
		case atmFormPIN:
			label = "New PIN"
		}
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.machine.InFlight() || m.pinPending {
		b.WriteString(styles.RenderWarning("Submitting..."))
	} else if m.status != "" {
		b.WriteString(styles.RenderStatus(m.statusOK, m.status))
	}
	b.WriteString("\n\n")

	hint := "d: deposit * w: withdraw * p: change PIN * r: refresh * ctrl+l: logout * ctrl+c: quit"
	if m.form != atmFormNone {
		hint = "enter: submit * esc: cancel"
	}
	b.WriteString(styles.Hint.Render(hint))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
