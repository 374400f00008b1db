// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

func TestRole_Valid(t *testing.T) {
	valid := []Role{RoleEmployee, RoleCustomer, RoleATM}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", r)
		}
	}

	invalid := []Role{"", "admin", "ATM", "Employee", "terminal"}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", r)
		}
	}
}

func TestSession_WithAccount_DoesNotMutateOriginal(t *testing.T) {
	orig := Session{SessionID: "s1", Role: RoleATM, Account: &Account{AccountNumber: 5000, Balance: 100}}
	refreshed := orig.WithAccount(&Account{AccountNumber: 5000, Balance: 75})

	if orig.Account.Balance != 100 {
		t.Errorf("original session mutated: balance = %v, want 100", orig.Account.Balance)
	}
	if refreshed.Account.Balance != 75 {
		t.Errorf("refreshed session balance = %v, want 75", refreshed.Account.Balance)
	}
	if refreshed.SessionID != orig.SessionID || refreshed.Role != orig.Role {
		t.Error("identity and role must carry over to the refreshed session")
	}
}

func TestSession_WireFormat(t *testing.T) {
	s := Session{
		SessionID: "abc123",
		Role:      RoleATM,
		Account:   &Account{AccountNumber: 5000, Type: TypeChecking, Balance: 100},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["sessionId"] != "abc123" {
		t.Errorf("sessionId = %v, want abc123", decoded["sessionId"])
	}
	if decoded["role"] != "atm" {
		t.Errorf("role on the wire = %v, want atm", decoded["role"])
	}
	if _, ok := decoded["profile"]; ok {
		t.Error("ATM session must not serialize a profile field")
	}
}

func TestProfile_DisplayName(t *testing.T) {
	p := Profile{Username: "user1", Name: "First Last"}
	if got := p.DisplayName(); got != "First Last" {
		t.Errorf("DisplayName = %q, want name", got)
	}
	p.Name = ""
	if got := p.DisplayName(); got != "user1" {
		t.Errorf("DisplayName = %q, want username fallback", got)
	}
}
