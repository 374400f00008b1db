// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/session"
)

func newTestApp(t *testing.T) (App, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := gateway.NewClient("http://127.0.0.1:0")
	return NewApp(client, store, nil), store
}

func TestApp_StartsAtLogin(t *testing.T) {
	app, _ := newTestApp(t)
	if app.view != viewLogin {
		t.Errorf("view = %v, want login", app.view)
	}
}

func TestApp_RoutesEmployeeLogin(t *testing.T) {
	app, store := newTestApp(t)

	sess := model.Session{SessionID: "s1", Role: model.RoleEmployee}
	updated, _ := app.Update(LoginResultMsg{Session: sess})
	app = updated.(App)

	if app.view != viewEmployee {
		t.Errorf("view = %v, want employee", app.view)
	}
	if saved, ok, _ := store.Load(); !ok || saved.SessionID != "s1" {
		t.Error("Session should be persisted after login")
	}
}

func TestApp_RoutesCustomerAndATM(t *testing.T) {
	tests := []struct {
		role model.Role
		want view
	}{
		{model.RoleCustomer, viewCustomer},
		{model.RoleATM, viewATM},
	}
	for _, tt := range tests {
		app, _ := newTestApp(t)
		updated, _ := app.Update(LoginResultMsg{
			Session: model.Session{SessionID: "s1", Role: tt.role},
		})
		app = updated.(App)
		if app.view != tt.want {
			t.Errorf("role %q: view = %v, want %v", tt.role, app.view, tt.want)
		}
	}
}

func TestApp_UnknownRoleIsFatal(t *testing.T) {
	app, store := newTestApp(t)

	updated, cmd := app.Update(LoginResultMsg{
		Session: model.Session{SessionID: "s1", Role: "superuser"},
	})
	app = updated.(App)

	if app.FatalErr() == nil {
		t.Fatal("Unknown role must be fatal")
	}
	if cmd == nil {
		t.Error("Fatal role should quit the program")
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("No session should be persisted for an unknown role")
	}
}

func TestApp_FailedLoginStaysOnLogin(t *testing.T) {
	app, store := newTestApp(t)

	updated, _ := app.Update(LoginResultMsg{Err: gateway.ErrInvalidCredentials})
	app = updated.(App)

	if app.view != viewLogin {
		t.Errorf("view = %v, want login after a failed login", app.view)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("No session should be persisted after a failed login")
	}
}

func TestApp_ResumesPersistedSession(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := gateway.NewClient("http://127.0.0.1:0")

	sess := model.Session{SessionID: "resume-1", Role: model.RoleEmployee}
	if err := store.Save(sess); err != nil {
		t.Fatal(err)
	}

	app := NewApp(client, store, &sess)
	if app.view != viewEmployee {
		t.Errorf("view = %v, want employee for a resumed session", app.view)
	}
	if client.Token() != "resume-1" {
		t.Errorf("Token = %q, want the resumed session id", client.Token())
	}
}

func TestApp_LogoutClearsSessionWholesale(t *testing.T) {
	app, store := newTestApp(t)

	updated, _ := app.Update(LoginResultMsg{
		Session: model.Session{SessionID: "s1", Role: model.RoleCustomer},
	})
	app = updated.(App)

	updated, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	app = updated.(App)

	if app.view != viewLogin {
		t.Errorf("view = %v, want login after logout", app.view)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("Persisted session must be cleared on logout")
	}
	if cmd == nil {
		t.Error("Logout should fire the server-side command")
	}
}
