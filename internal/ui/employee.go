// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/txn"
	"github.com/tellerdesk/teller-tui/internal/ui/styles"
	"github.com/tellerdesk/teller-tui/internal/util"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

// empAction identifies an employee dashboard operation.
type empAction int

const (
	empMenu empAction = iota
	empSearchAccount
	empSearchProfile
	empCreateAccount
	empCreateProfile
	empUpdateProfile
	empLinkAccount
	empDeposit
	empWithdraw
	empUpdatePIN
	empLogs
)

// menuEntry is one line of the employee menu.
type menuEntry struct {
	key    string
	label  string
	action empAction
}

var employeeMenu = []menuEntry{
	{"1", "Search account", empSearchAccount},
	{"2", "Search profile", empSearchProfile},
	{"3", "Create account", empCreateAccount},
	{"4", "Create profile", empCreateProfile},
	{"5", "Update profile", empUpdateProfile},
	{"6", "Link account to profile", empLinkAccount},
	{"7", "Deposit", empDeposit},
	{"8", "Withdraw", empWithdraw},
	{"9", "Update PIN", empUpdatePIN},
	{"0", "View audit log", empLogs},
}

// formField is a labelled input in an employee form.
type formField struct {
	label string
	input textinput.Model
}

// EmployeeModel is the teller-side dashboard: account and profile
// maintenance, transactions against any account, and the audit log.
type EmployeeModel struct {
	client  *gateway.Client
	session model.Session

	action  empAction
	fields  []formField
	focus   int
	machine *txn.Machine
	pending bool

	result   []string
	status   string
	statusOK bool

	logView  viewport.Model
	hasLogs  bool
	logWidth int
}

// NewEmployeeModel builds the employee dashboard for a session.
func NewEmployeeModel(client *gateway.Client, sess model.Session) EmployeeModel {
	vp := viewport.New(78, 14)
	return EmployeeModel{
		client:   client,
		session:  sess,
		action:   empMenu,
		machine:  txn.NewMachine(),
		logView:  vp,
		logWidth: 78,
	}
}

// Init implements tea.Model.
func (m EmployeeModel) Init() tea.Cmd {
	return nil
}

// mkField builds one labelled text input.
func mkField(label, placeholder string, secret bool, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 32
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return formField{label: label, input: ti}
}

// formFor returns the input fields for an action.
func formFor(action empAction) []formField {
	switch action {
	case empSearchAccount:
		return []formField{mkField("Account number", "account number", false, 16)}
	case empSearchProfile:
		return []formField{mkField("Username", "username", false, 32)}
	case empCreateAccount:
		return []formField{
			mkField("Account number", "account number", false, 16),
			mkField("PIN", "4 digits", true, 4),
			mkField("Type", "checking, saving or lineOfCredit", false, 20),
			mkField("Initial balance", "0.00", false, 16),
		}
	case empCreateProfile:
		return []formField{
			mkField("Name", "full name", false, 64),
			mkField("Username", "username", false, 32),
			mkField("Password", "password", true, 64),
			mkField("Phone", "phone", false, 20),
			mkField("Address", "address", false, 128),
			mkField("Email", "email", false, 64),
		}
	case empUpdateProfile:
		return []formField{
			mkField("Username", "username (required)", false, 32),
			mkField("Name", "leave blank to keep", false, 64),
			mkField("Password", "leave blank to keep", true, 64),
			mkField("Phone", "leave blank to keep", false, 20),
			mkField("Address", "leave blank to keep", false, 128),
			mkField("Email", "leave blank to keep", false, 64),
			mkField("Credit score", "leave blank to keep", false, 8),
		}
	case empLinkAccount:
		return []formField{
			mkField("Account number", "account number", false, 16),
			mkField("Username", "profile username", false, 32),
		}
	case empDeposit, empWithdraw:
		return []formField{
			mkField("Account number", "account number", false, 16),
			mkField("Amount", "amount", false, 16),
		}
	case empUpdatePIN:
		return []formField{
			mkField("Account number", "account number", false, 16),
			mkField("New PIN", "4 digits", true, 4),
		}
	default:
		return nil
	}
}

// openAction switches from the menu into a form or the log view.
func (m EmployeeModel) openAction(action empAction) (EmployeeModel, tea.Cmd) {
	m.action = action
	m.result = nil
	m.status = ""
	m.machine.Reset()

	if action == empLogs {
		m.hasLogs = false
		return m, FetchLogsCmd(m.client)
	}

	m.fields = formFor(action)
	m.focus = 0
	if len(m.fields) > 0 {
		m.fields[0].input.Focus()
	}
	return m, textinput.Blink
}

// backToMenu returns to the action menu.
func (m *EmployeeModel) backToMenu() {
	m.action = empMenu
	m.fields = nil
	m.result = nil
	m.status = ""
	m.pending = false
	m.machine.Reset()
}

// setFocus moves focus to field i.
func (m *EmployeeModel) setFocus(i int) {
	m.focus = i
	for j := range m.fields {
		if j == i {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
}

// fieldValue returns the trimmed value of field i.
func (m *EmployeeModel) fieldValue(i int) string {
	return strings.TrimSpace(m.fields[i].input.Value())
}

// Update implements tea.Model.
func (m EmployeeModel) Update(msg tea.Msg) (EmployeeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case AccountSearchMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Account not found")
			m.statusOK = false
			return m, nil
		}
		m.result = renderSearchResult(msg.Result)
		m.status = ""
		return m, nil

	case ProfileSearchMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Profile not found")
			m.statusOK = false
			return m, nil
		}
		m.result = renderProfile(msg.Profile)
		m.status = ""
		return m, nil

	case AccountCreatedMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Account creation failed")
			m.statusOK = false
			return m, nil
		}
		m.status = msg.Message
		if m.status == "" {
			m.status = "Account created successfully"
		}
		m.statusOK = true
		return m, nil

	case ProfileSavedMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Profile save failed")
			m.statusOK = false
			return m, nil
		}
		m.status = "Profile saved"
		m.statusOK = true
		return m, nil

	case AccountLinkedMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Link failed")
			m.statusOK = false
			return m, nil
		}
		m.status = "Account linked"
		m.statusOK = true
		return m, nil

	case PINUpdatedMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "PIN update failed")
			m.statusOK = false
			return m, nil
		}
		m.status = "PIN updated"
		m.statusOK = true
		return m, nil

	case TxnSettledMsg:
		m.machine.Settle(msg.OK, msg.Message)
		outcome := m.machine.Outcome()
		m.status = outcome.Message
		m.statusOK = msg.OK
		if !msg.OK {
			m.status = failureText(msg.Err, outcome.Message)
		}
		return m, nil

	case LogsMsg:
		m.pending = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Could not load audit log")
			m.statusOK = false
			return m, nil
		}
		m.hasLogs = true
		m.logView.SetContent(renderLogLines(msg.Logs, m.logWidth))
		m.logView.GotoTop()
		return m, nil

	case tea.WindowSizeMsg:
		m.logWidth = msg.Width - 6
		if m.logWidth < 20 {
			m.logWidth = 20
		}
		m.logView.Width = m.logWidth
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

// updateKeys routes key presses by the current action.
func (m EmployeeModel) updateKeys(msg tea.KeyMsg) (EmployeeModel, tea.Cmd) {
	if m.action == empMenu {
		for _, entry := range employeeMenu {
			if msg.String() == entry.key {
				return m.openAction(entry.action)
			}
		}
		return m, nil
	}

	if m.action == empLogs {
		switch msg.String() {
		case "esc", "q":
			m.backToMenu()
			return m, nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.backToMenu()
		return m, nil
	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.fields))
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + len(m.fields)) % len(m.fields))
		return m, nil
	case "enter":
		if m.focus < len(m.fields)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submit()
	}

	if m.machine.State() == txn.StateSettled {
		m.machine.Reset()
		m.status = ""
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

// submit validates the open form and fires its command.
func (m EmployeeModel) submit() (EmployeeModel, tea.Cmd) {
	if m.pending || m.machine.InFlight() {
		return m, nil
	}

	fail := func(msg string) (EmployeeModel, tea.Cmd) {
		m.status = msg
		m.statusOK = false
		return m, nil
	}

	switch m.action {
	case empSearchAccount:
		number := m.fieldValue(0)
		if !validate.AccountNumber(number) {
			return fail(validate.MsgBadAccountNumber)
		}
		m.pending = true
		m.status = ""
		return m, SearchAccountCmd(m.client, number)

	case empSearchProfile:
		username := m.fieldValue(0)
		if !validate.Username(username) {
			return fail(validate.MsgEmptyUsername)
		}
		m.pending = true
		m.status = ""
		return m, SearchProfileCmd(m.client, username)

	case empCreateAccount:
		number := m.fieldValue(0)
		pin := m.fields[1].input.Value()
		accType := m.fieldValue(2)
		if !validate.AccountNumber(number) {
			return fail(validate.MsgBadAccountNumber)
		}
		if !validate.PIN(pin) {
			return fail(validate.MsgBadPIN)
		}
		if !model.ValidAccountType(accType) {
			return fail("Type must be checking, saving or lineOfCredit")
		}
		balance, err := strconv.ParseFloat(m.fieldValue(3), 64)
		if err != nil || balance < 0 {
			return fail("Initial balance must be zero or more")
		}
		m.pending = true
		m.status = ""
		return m, CreateAccountCmd(m.client, gateway.CreateAccountRequest{
			AccountNumber:  number,
			PIN:            pin,
			Type:           accType,
			InitialBalance: balance,
		})

	case empCreateProfile:
		username := m.fieldValue(1)
		password := m.fields[2].input.Value()
		if !validate.Username(username) {
			return fail(validate.MsgEmptyUsername)
		}
		if password == "" {
			return fail("Password is required")
		}
		m.pending = true
		m.status = ""
		return m, CreateProfileCmd(m.client, gateway.CreateProfileRequest{
			Name:     m.fieldValue(0),
			Username: username,
			Password: password,
			Phone:    m.fieldValue(3),
			Address:  m.fieldValue(4),
			Email:    m.fieldValue(5),
		})

	case empUpdateProfile:
		username := m.fieldValue(0)
		if !validate.Username(username) {
			return fail(validate.MsgEmptyUsername)
		}
		m.pending = true
		m.status = ""
		return m, UpdateProfileCmd(m.client, gateway.UpdateProfileRequest{
			Username:    username,
			Name:        m.fieldValue(1),
			Password:    m.fields[2].input.Value(),
			Phone:       m.fieldValue(3),
			Address:     m.fieldValue(4),
			Email:       m.fieldValue(5),
			CreditScore: m.fieldValue(6),
		})

	case empLinkAccount:
		number := m.fieldValue(0)
		username := m.fieldValue(1)
		if !validate.AccountNumber(number) {
			return fail(validate.MsgBadAccountNumber)
		}
		if !validate.Username(username) {
			return fail(validate.MsgEmptyUsername)
		}
		m.pending = true
		m.status = ""
		return m, LinkAccountCmd(m.client, number, username)

	case empDeposit, empWithdraw:
		number := m.fieldValue(0)
		amount, err := strconv.ParseFloat(m.fieldValue(1), 64)
		if err != nil {
			return fail(validate.MsgBadAmount)
		}
		kind := model.KindDeposit
		if m.action == empWithdraw {
			kind = model.KindWithdraw
		}
		intent := model.TransactionIntent{Kind: kind, AccountNumber: number, Amount: amount}
		accepted, vmsg := m.machine.Submit(intent)
		if !accepted {
			if vmsg != "" {
				return fail(vmsg)
			}
			return m, nil
		}
		m.status = ""
		return m, SubmitTxnCmd(m.client, intent)

	case empUpdatePIN:
		number := m.fieldValue(0)
		pin := m.fields[1].input.Value()
		if !validate.AccountNumber(number) {
			return fail(validate.MsgBadAccountNumber)
		}
		if !validate.PIN(pin) {
			return fail(validate.MsgBadPIN)
		}
		m.pending = true
		m.status = ""
		return m, UpdatePINCmd(m.client, number, pin)
	}
	return m, nil
}

// =============================================================================
// RESULT RENDERING
// =============================================================================

// renderSearchResult formats an account search hit.
func renderSearchResult(r *gateway.SearchResult) []string {
	lines := []string{
		"Account  " + r.Account.NumberString(),
		"Type     " + r.Account.Type.Label(),
		"Balance  " + util.FormatMoney(r.Account.Balance),
	}
	if r.Profile != nil {
		lines = append(lines, "", "Linked profile:")
		lines = append(lines, renderProfile(r.Profile)...)
	} else {
		lines = append(lines, "", "No linked profile")
	}
	return lines
}

// renderProfile formats a profile record.
func renderProfile(p *model.Profile) []string {
	return []string{
		"Username     " + p.Username,
		"Name         " + p.Name,
		"Phone        " + p.Phone,
		"Address      " + p.Address,
		"Email        " + p.Email,
		"Credit score " + p.CreditScore,
	}
}

// renderLogLines shows the most recent audit entries, newest first,
// each truncated to the view width so wide entries cannot wrap and
// break the layout. The server appends, so the tail is the newest.
func renderLogLines(logs []string, width int) string {
	const maxEntries = 20
	if len(logs) > maxEntries {
		logs = logs[len(logs)-maxEntries:]
	}
	out := make([]string, len(logs))
	for i, line := range logs {
		out[len(logs)-1-i] = runewidth.Truncate(line, width, "...")
	}
	return strings.Join(out, "\n")
}

// View implements tea.Model.
func (m EmployeeModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Teller desk"))
	b.WriteString("\n\n")

	switch m.action {
	case empMenu:
		for _, entry := range employeeMenu {
			b.WriteString(styles.Label.Render(entry.key))
			b.WriteString("  " + entry.label + "\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.Hint.Render("press a number * ctrl+l: logout * ctrl+c: quit"))

	case empLogs:
		b.WriteString(styles.Title.Render("Audit log"))
		b.WriteString("\n")
		if !m.hasLogs {
			b.WriteString(styles.RenderInfo("Loading audit log..."))
		} else {
			b.WriteString(m.logView.View())
		}
		b.WriteString("\n\n")
		b.WriteString(styles.Hint.Render("up/down: scroll * esc: back"))

	default:
		for i, f := range m.fields {
			b.WriteString(styles.Label.Render(f.label))
			b.WriteString("\n")
			b.WriteString(f.input.View())
			if i < len(m.fields)-1 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n\n")

		for _, line := range m.result {
			b.WriteString(line)
			b.WriteString("\n")
		}

		if m.pending || m.machine.InFlight() {
			b.WriteString(styles.RenderWarning("Submitting..."))
		} else if m.status != "" {
			b.WriteString(styles.RenderStatus(m.statusOK, m.status))
		}
		b.WriteString("\n\n")
		b.WriteString(styles.Hint.Render("enter: submit * tab: next field * esc: back"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
