// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/session"
	"github.com/tellerdesk/teller-tui/internal/ui/styles"
)

// view identifies the active screen.
type view int

const (
	viewLogin view = iota
	viewEmployee
	viewCustomer
	viewATM
)

// App is the root model. It owns the session and routes every message
// to the active screen.
type App struct {
	client *gateway.Client
	store  *session.Store

	view    view
	session model.Session

	login    LoginModel
	employee EmployeeModel
	customer CustomerModel
	atm      ATMModel

	// fatalErr aborts the program; set when the server hands us a
	// role this client does not know. There is no default view to
	// fall back to for an unknown capability set.
	fatalErr error
}

// NewApp builds the root model. When a persisted session is supplied
// it is resumed directly; otherwise the login screen is shown.
func NewApp(client *gateway.Client, store *session.Store, resumed *model.Session) App {
	app := App{
		client: client,
		store:  store,
		view:   viewLogin,
		login:  NewLoginModel(client),
	}
	if resumed != nil {
		client.SetToken(resumed.SessionID)
		if err := app.route(*resumed); err != nil {
			// The store validates roles on load, so this means the
			// file changed underneath us. Start at login.
			store.Clear()
			client.ClearToken()
			app.view = viewLogin
		}
	}
	return app
}

// route installs a session and switches to its role's screen.
func (a *App) route(sess model.Session) error {
	switch sess.Role {
	case model.RoleEmployee:
		a.employee = NewEmployeeModel(a.client, sess)
		a.view = viewEmployee
	case model.RoleCustomer:
		a.customer = NewCustomerModel(a.client, sess)
		a.view = viewCustomer
	case model.RoleATM:
		a.atm = NewATMModel(a.client, sess)
		a.view = viewATM
	default:
		return fmt.Errorf("unknown session role %q", sess.Role)
	}
	a.session = sess
	return nil
}

// FatalErr returns the error that aborted the program, if any.
func (a App) FatalErr() error {
	return a.fatalErr
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	switch a.view {
	case viewEmployee:
		return a.employee.Init()
	case viewCustomer:
		return a.customer.Init()
	case viewATM:
		return a.atm.Init()
	default:
		return a.login.Init()
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if a.view != viewLogin {
				return a.logout()
			}
		}

	case LoginResultMsg:
		if msg.Err != nil {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		if err := a.route(msg.Session); err != nil {
			a.fatalErr = err
			return a, tea.Quit
		}
		// Persist wholesale; the previous record, if any, is replaced.
		// A failed save only costs session resume on restart, so the
		// live session continues regardless.
		_ = a.store.Save(msg.Session)
		return a, a.Init()

	case LogoutMsg:
		// Local state is already gone; nothing to do either way.
		return a, nil
	}

	return a.forward(msg)
}

// logout tears down local session state immediately and tells the
// server in the background. The local teardown never waits on the
// network.
func (a App) logout() (tea.Model, tea.Cmd) {
	cmd := LogoutCmd(a.client)
	a.store.Clear()
	a.session = model.Session{}
	a.view = viewLogin
	a.login = NewLoginModel(a.client)
	return a, tea.Batch(cmd, a.login.Init())
}

// forward sends a message to the active screen.
func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewEmployee:
		a.employee, cmd = a.employee.Update(msg)
	case viewCustomer:
		a.customer, cmd = a.customer.Update(msg)
	case viewATM:
		a.atm, cmd = a.atm.Update(msg)
	default:
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	if a.fatalErr != nil {
		return styles.RenderError(a.fatalErr.Error()) + "\n"
	}
	switch a.view {
	case viewEmployee:
		return a.employee.View()
	case viewCustomer:
		return a.customer.View()
	case viewATM:
		return a.atm.View()
	default:
		return a.login.View()
	}
}
