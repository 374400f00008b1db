// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/ui/styles"
	"github.com/tellerdesk/teller-tui/internal/validate"
)

// loginMode selects which credential form the login screen shows.
type loginMode int

const (
	modeEmployee loginMode = iota
	modeCustomer
	modeATM
	modeSignUp
)

func (m loginMode) String() string {
	switch m {
	case modeEmployee:
		return "Employee"
	case modeCustomer:
		return "Customer"
	case modeATM:
		return "ATM"
	case modeSignUp:
		return "Sign Up"
	default:
		return "unknown"
	}
}

// Sign-up form field order.
const (
	suName = iota
	suUsername
	suPassword
	suConfirm
	suPhone
	suAddress
	suEmail
	suFieldCount
)

// LoginModel is the credential entry screen. Tab cycles between the
// employee, customer, and ATM forms; customers can switch to a
// sign-up form to register a profile.
type LoginModel struct {
	client *gateway.Client

	mode       loginMode
	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
	statusOK   bool

	width int
}

// NewLoginModel builds the login screen starting on the employee form.
func NewLoginModel(client *gateway.Client) LoginModel {
	m := LoginModel{client: client, mode: modeEmployee}
	m.inputs = m.buildInputs()
	return m
}

// buildInputs creates the text inputs for the current mode.
func (m *LoginModel) buildInputs() []textinput.Model {
	mk := func(placeholder string, secret bool, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 32
		if secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		return ti
	}

	var inputs []textinput.Model
	switch m.mode {
	case modeATM:
		inputs = []textinput.Model{
			mk("account number", false, 16),
			mk("PIN", true, 4),
		}
	case modeSignUp:
		inputs = []textinput.Model{
			mk("full name", false, 64),
			mk("username", false, 32),
			mk("password", true, 64),
			mk("confirm password", true, 64),
			mk("phone", false, 20),
			mk("address", false, 128),
			mk("email", false, 64),
		}
	default:
		inputs = []textinput.Model{
			mk("username", false, 32),
			mk("password", true, 64),
		}
	}
	inputs[0].Focus()
	m.focus = 0
	return inputs
}

// Init implements tea.Model.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// setMode switches forms and resets state.
func (m *LoginModel) setMode(mode loginMode) {
	m.mode = mode
	m.inputs = m.buildInputs()
	m.status = ""
	m.submitting = false
}

// cycleMode advances through the three login forms.
func (m *LoginModel) cycleMode() {
	switch m.mode {
	case modeEmployee:
		m.setMode(modeCustomer)
	case modeCustomer:
		m.setMode(modeATM)
	default:
		m.setMode(modeEmployee)
	}
}

// setFocus moves input focus to index i.
func (m *LoginModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Update implements tea.Model.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case LoginResultMsg:
		// Only failures reach this model; the App routes successes.
		m.submitting = false
		m.status = failureText(msg.Err, "Login failed")
		m.statusOK = false
		return m, nil

	case SignUpResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.status = failureText(msg.Err, "Registration failed")
			m.statusOK = false
			return m, nil
		}
		// Back to the customer form so the new customer can log in.
		m.setMode(modeCustomer)
		m.status = "Profile created, please log in"
		m.statusOK = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if m.mode != modeSignUp {
				m.cycleMode()
				return m, nil
			}
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab":
			if m.mode == modeSignUp {
				m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
				return m, nil
			}
			return m, nil
		case "up":
			if m.focus > 0 {
				m.setFocus(m.focus - 1)
			}
			return m, nil
		case "down":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
			}
			return m, nil
		case "ctrl+s":
			if m.mode == modeCustomer {
				m.setMode(modeSignUp)
			} else if m.mode == modeSignUp {
				m.setMode(modeCustomer)
			}
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the form and fires the matching login command. A
// submit while one is pending is dropped.
func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch m.mode {
	case modeATM:
		number := strings.TrimSpace(m.inputs[0].Value())
		pin := m.inputs[1].Value()
		if !validate.AccountNumber(number) {
			m.status = validate.MsgBadAccountNumber
			m.statusOK = false
			return m, nil
		}
		if !validate.PIN(pin) {
			m.status = validate.MsgBadPIN
			m.statusOK = false
			return m, nil
		}
		m.submitting = true
		m.status = ""
		return m, ATMLoginCmd(m.client, number, pin)

	case modeSignUp:
		return m.submitSignUp()

	default:
		username := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if !validate.Username(username) {
			m.status = validate.MsgEmptyUsername
			m.statusOK = false
			return m, nil
		}
		if password == "" {
			m.status = "Password is required"
			m.statusOK = false
			return m, nil
		}
		m.submitting = true
		m.status = ""
		if m.mode == modeEmployee {
			return m, EmployeeLoginCmd(m.client, username, password)
		}
		return m, CustomerLoginCmd(m.client, username, password)
	}
}

// submitSignUp validates the registration form and fires SignUpCmd.
func (m LoginModel) submitSignUp() (LoginModel, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[suUsername].Value())
	password := m.inputs[suPassword].Value()
	confirm := m.inputs[suConfirm].Value()

	if !validate.Username(username) {
		m.status = validate.MsgEmptyUsername
		m.statusOK = false
		return m, nil
	}
	if password != confirm {
		m.status = "Passwords do not match"
		m.statusOK = false
		return m, nil
	}
	if len(password) < 4 {
		m.status = "Password must be at least 4 characters"
		m.statusOK = false
		return m, nil
	}

	m.submitting = true
	m.status = ""
	return m, SignUpCmd(m.client, gateway.CreateProfileRequest{
		Name:     strings.TrimSpace(m.inputs[suName].Value()),
		Username: username,
		Password: password,
		Phone:    strings.TrimSpace(m.inputs[suPhone].Value()),
		Address:  strings.TrimSpace(m.inputs[suAddress].Value()),
		Email:    strings.TrimSpace(m.inputs[suEmail].Value()),
	})
}

// View implements tea.Model.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("teller - " + m.mode.String() + " login"))
	b.WriteString("\n\n")

	labels := m.fieldLabels()
	for i, in := range m.inputs {
		b.WriteString(styles.Label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(styles.RenderInfo("Signing in..."))
	case m.status != "":
		b.WriteString(styles.RenderStatus(m.statusOK, m.status))
	}
	b.WriteString("\n\n")

	hint := "tab: switch role * enter: submit * ctrl+c: quit"
	if m.mode == modeCustomer {
		hint = "tab: switch role * ctrl+s: sign up * enter: submit * ctrl+c: quit"
	} else if m.mode == modeSignUp {
		hint = "tab: next field * ctrl+s: back to login * enter: submit"
	}
	b.WriteString(styles.Hint.Render(hint))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// fieldLabels returns the display labels for the current form.
func (m LoginModel) fieldLabels() []string {
	switch m.mode {
	case modeATM:
		return []string{"Account number", "PIN"}
	case modeSignUp:
		return []string{"Name", "Username", "Password", "Confirm password", "Phone", "Address", "Email"}
	default:
		return []string{"Username", "Password"}
	}
}

// failureText prefers the server's message and falls back to generic
// wording when the error carries none.
func failureText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
