// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tellerdesk/teller-tui/internal/accounts"
	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/txn"
	"github.com/tellerdesk/teller-tui/internal/ui/styles"
	"github.com/tellerdesk/teller-tui/internal/util"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

// CustomerModel is the customer dashboard: every linked account in a
// table, with deposit and withdrawal against the selected account.
type CustomerModel struct {
	client  *gateway.Client
	session model.Session

	selection *accounts.Selection
	machine   *txn.Machine

	accountTable table.Model
	amountInput  textinput.Model
	amountKind   model.IntentKind
	entering     bool

	// PIN change for the selected account: new PIN plus confirmation.
	pinInputs   [2]textinput.Model
	pinFocus    int
	changingPIN bool
	pinPending  bool

	loading  bool
	status   string
	statusOK bool
}

// NewCustomerModel builds the customer dashboard for a session.
func NewCustomerModel(client *gateway.Client, sess model.Session) CustomerModel {
	ti := textinput.New()
	ti.Placeholder = "amount"
	ti.CharLimit = 16
	ti.Width = 16

	return CustomerModel{
		client:       client,
		session:      sess,
		selection:    accounts.NewSelection(),
		machine:      txn.NewMachine(),
		accountTable: newAccountTable(nil),
		amountInput:  ti,
		pinInputs:    [2]textinput.Model{newPINInput("new PIN"), newPINInput("confirm PIN")},
		loading:      true,
	}
}

// newPINInput builds a masked four-digit entry field.
func newPINInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4
	ti.Width = 16
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}

// newAccountTable builds the account table with the given rows.
func newAccountTable(rows []table.Row) table.Model {
	columns := []table.Column{
		{Title: "Account", Width: 12},
		{Title: "Type", Width: 14},
		{Title: "Balance", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Overlay).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Cyan)
	ts.Selected = ts.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.SelectionBg).
		Bold(true)
	t.SetStyles(ts)
	return t
}

// accountRows converts the account list into table rows.
func accountRows(list []model.Account) []table.Row {
	rows := make([]table.Row, len(list))
	for i, acct := range list {
		rows[i] = table.Row{
			acct.NumberString(),
			acct.Type.Label(),
			util.FormatMoney(acct.Balance),
		}
	}
	return rows
}

// Init implements tea.Model. The dashboard starts with a refresh so
// balances are the ledger's current truth, never what the login
// response happened to carry.
func (m CustomerModel) Init() tea.Cmd {
	return RefreshAccountsCmd(m.client)
}

// Update implements tea.Model.
func (m CustomerModel) Update(msg tea.Msg) (CustomerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case AccountsMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Could not load accounts")
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
			m.entering = false
			m.amountInput.Reset()
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
		m.closePINEntry()
		m.status = "PIN updated"
		m.statusOK = true
		return m, nil

	case tea.KeyMsg:
		if m.changingPIN {
			return m.updatePINEntry(msg)
		}
		if m.entering {
			return m.updateAmountEntry(msg)
		}
		switch msg.String() {
		case "d":
			return m.startAmountEntry(model.KindDeposit), nil
		case "w":
			return m.startAmountEntry(model.KindWithdraw), nil
		case "p":
			return m.startPINEntry(), nil
		case "r":
			m.loading = true
			m.status = ""
			return m, RefreshAccountsCmd(m.client)
		case "up", "k":
			m.selection.Prev()
			m.syncCursor()
			return m, nil
		case "down", "j":
			m.selection.Next()
			m.syncCursor()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.accountTable, cmd = m.accountTable.Update(msg)
	return m, cmd
}

// applyAccounts installs a refreshed list, carrying the selection
// across per the continuity rules, and rebuilds the table.
func (m *CustomerModel) applyAccounts(list []model.Account) {
	m.selection.SetAccounts(list)
	m.accountTable.SetRows(accountRows(list))
	m.syncCursor()
}

// syncCursor keeps the table cursor on the selected account.
func (m *CustomerModel) syncCursor() {
	if i := m.selection.SelectedIndex(); i >= 0 {
		m.accountTable.SetCursor(i)
	}
}

// startAmountEntry opens the amount form for a transaction kind.
func (m CustomerModel) startAmountEntry(kind model.IntentKind) CustomerModel {
	if _, ok := m.selection.Selected(); !ok {
		m.status = "No account selected"
		m.statusOK = false
		return m
	}
	m.entering = true
	m.amountKind = kind
	m.amountInput.Reset()
	m.amountInput.Focus()
	m.machine.Reset()
	m.status = ""
	return m
}

// updateAmountEntry handles keys while the amount form is open.
func (m CustomerModel) updateAmountEntry(msg tea.KeyMsg) (CustomerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.entering = false
		m.amountInput.Reset()
		m.machine.Reset()
		m.status = ""
		return m, nil
	case "enter":
		return m.submitAmount()
	}

	// Editing the amount invalidates any settled outcome.
	if m.machine.State() == txn.StateSettled {
		m.machine.Reset()
		m.status = ""
	}
	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

// submitAmount runs the intent through the transaction machine and,
// when accepted, fires the network command.
func (m CustomerModel) submitAmount() (CustomerModel, tea.Cmd) {
	selected, ok := m.selection.Selected()
	if !ok {
		m.status = "No account selected"
		m.statusOK = false
		return m, nil
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(m.amountInput.Value()), 64)
	if err != nil {
		m.status = "Amount must be a positive number"
		m.statusOK = false
		return m, nil
	}

	intent := model.TransactionIntent{
		Kind:          m.amountKind,
		AccountNumber: selected.NumberString(),
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

// startPINEntry opens the PIN change form for the selected account.
func (m CustomerModel) startPINEntry() CustomerModel {
	if _, ok := m.selection.Selected(); !ok {
		m.status = "No account selected"
		m.statusOK = false
		return m
	}
	m.changingPIN = true
	m.pinFocus = 0
	for i := range m.pinInputs {
		m.pinInputs[i].Reset()
		m.pinInputs[i].Blur()
	}
	m.pinInputs[0].Focus()
	m.status = ""
	return m
}

// closePINEntry hides the PIN change form.
func (m *CustomerModel) closePINEntry() {
	m.changingPIN = false
	for i := range m.pinInputs {
		m.pinInputs[i].Reset()
		m.pinInputs[i].Blur()
	}
}

// updatePINEntry handles keys while the PIN change form is open.
func (m CustomerModel) updatePINEntry(msg tea.KeyMsg) (CustomerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePINEntry()
		m.status = ""
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.pinFocus = 1 - m.pinFocus
		for i := range m.pinInputs {
			if i == m.pinFocus {
				m.pinInputs[i].Focus()
			} else {
				m.pinInputs[i].Blur()
			}
		}
		return m, nil
	case "enter":
		if m.pinFocus == 0 {
			m.pinFocus = 1
			m.pinInputs[0].Blur()
			m.pinInputs[1].Focus()
			return m, nil
		}
		return m.submitPIN()
	}

	var cmd tea.Cmd
	m.pinInputs[m.pinFocus], cmd = m.pinInputs[m.pinFocus].Update(msg)
	return m, cmd
}

// submitPIN validates the new PIN locally and fires the update.
func (m CustomerModel) submitPIN() (CustomerModel, tea.Cmd) {
	selected, ok := m.selection.Selected()
	if !ok {
		m.status = "No account selected"
		m.statusOK = false
		return m, nil
	}

	pin := m.pinInputs[0].Value()
	if !validate.PIN(pin) {
		m.status = validate.MsgBadPIN
		m.statusOK = false
		return m, nil
	}
	if pin != m.pinInputs[1].Value() {
		m.status = validate.MsgPINMismatch
		m.statusOK = false
		return m, nil
	}
	if m.pinPending {
		return m, nil
	}

	m.pinPending = true
	m.status = ""
	return m, UpdatePINCmd(m.client, selected.NumberString(), pin)
}

// View implements tea.Model.
func (m CustomerModel) View() string {
	var b strings.Builder

	name := string(m.session.Role)
	if m.session.Profile != nil {
		name = m.session.Profile.DisplayName()
	}
	b.WriteString(styles.Title.Render("Accounts - " + name))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.RenderInfo("Loading accounts..."))
		b.WriteString("\n")
	} else if m.selection.Len() == 0 {
		b.WriteString(styles.Hint.Render("No accounts linked to this profile"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.accountTable.View())
		b.WriteString("\n")
	}

	if p := m.session.Profile; p != nil {
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Profile"))
		b.WriteString("\n")
		for _, row := range [][2]string{
			{"Name", p.Name},
			{"Email", p.Email},
			{"Phone", p.Phone},
			{"Address", p.Address},
		} {
			val := row[1]
			if val == "" {
				val = "N/A"
			}
			b.WriteString("  " + row[0] + ": " + val + "\n")
		}
	}

	if m.entering {
		verb := "Deposit"
		if m.amountKind == model.KindWithdraw {
			verb = "Withdraw"
		}
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(verb + " amount"))
		b.WriteString("\n")
		b.WriteString(m.amountInput.View())
		b.WriteString("\n")
	}

	if m.changingPIN {
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Change PIN"))
		b.WriteString("\n")
		for i := range m.pinInputs {
			b.WriteString(m.pinInputs[i].View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.machine.InFlight() {
		b.WriteString(styles.RenderWarning("Submitting..."))
	} else if m.status != "" {
		b.WriteString(styles.RenderStatus(m.statusOK, m.status))
	}
	b.WriteString("\n\n")

	hint := "d: deposit * w: withdraw * p: change PIN * r: refresh * ctrl+l: logout * ctrl+c: quit"
	if m.entering {
		hint = "enter: submit * esc: cancel"
	} else if m.changingPIN {
		hint = "enter: submit * tab: next field * esc: cancel"
	}
	b.WriteString(styles.Hint.Render(hint))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
