// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tellerdesk/teller-tui/internal/model"
)

// amountRequest is the body for deposit and withdraw calls. The ledger
// takes account numbers as strings on the wire.
type amountRequest struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
}

// opResponse is the generic envelope for state-changing operations.
type opResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// accountsResponse wraps the account list endpoint.
type accountsResponse struct {
	Accounts []model.Account `json:"accounts"`
}

// GetAccounts returns the accounts visible to the current session: all
// linked accounts for a customer, the single bound account for an ATM
// session. The returned balances are the server's truth; callers must
// refresh through this call after every money movement rather than
// adjusting balances locally.
func (c *Client) GetAccounts(ctx context.Context) ([]model.Account, error) {
	var resp accountsResponse
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// GetBalance returns the current balance of a single account.
func (c *Client) GetBalance(ctx context.Context, accountNumber string) (float64, error) {
	var resp struct {
		Balance float64 `json:"balance"`
	}
	path := "/api/accounts/balance?accountNumber=" + url.QueryEscape(accountNumber)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// Deposit adds funds to an account and returns the server's success
// message ("Deposit successful").
func (c *Client) Deposit(ctx context.Context, accountNumber string, amount float64) (string, error) {
	var resp opResponse
	err := c.do(ctx, http.MethodPost, "/api/accounts/deposit",
		amountRequest{AccountNumber: accountNumber, Amount: amount}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Withdraw removes funds from an account and returns the server's
// success message ("Withdrawal successful"). Overdraft rules are
// enforced server-side; a rejection comes back as an error carrying
// the server's reason.
func (c *Client) Withdraw(ctx context.Context, accountNumber string, amount float64) (string, error) {
	var resp opResponse
	err := c.do(ctx, http.MethodPost, "/api/accounts/withdraw",
		amountRequest{AccountNumber: accountNumber, Amount: amount}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdatePIN changes the PIN on an account.
func (c *Client) UpdatePIN(ctx context.Context, accountNumber, pin string) error {
	body := struct {
		AccountNumber string `json:"accountNumber"`
		PIN           string `json:"pin"`
	}{accountNumber, pin}
	return c.do(ctx, http.MethodPost, "/api/accounts/update-pin", body, &opResponse{})
}

// CreateAccountRequest holds the fields for opening a new account.
type CreateAccountRequest struct {
	AccountNumber  string  `json:"accountNumber"`
	PIN            string  `json:"pin"`
	Type           string  `json:"type"`
	InitialBalance float64 `json:"initialBalance"`
}

// CreateAccount opens a new account (employee only) and returns the
// server's success message ("Account created successfully").
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (string, error) {
	var resp opResponse
	if err := c.do(ctx, http.MethodPost, "/api/accounts/create", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SearchResult is what an account search returns: the account itself
// and its owning profile when one is linked.
type SearchResult struct {
	Account model.Account  `json:"account"`
	Profile *model.Profile `json:"profile"`
}

// SearchAccount looks up an account by number (employee only). A
// missing account is reported as ErrNotFound.
func (c *Client) SearchAccount(ctx context.Context, accountNumber string) (*SearchResult, error) {
	var resp struct {
		Found   bool           `json:"found"`
		Account model.Account  `json:"account"`
		Profile *model.Profile `json:"profile"`
		Error   string         `json:"error"`
	}
	path := "/api/accounts/search?accountNumber=" + url.QueryEscape(accountNumber)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, accountNumber)
	}
	return &SearchResult{Account: resp.Account, Profile: resp.Profile}, nil
}

// LinkAccount attaches an existing account to a customer profile
// (employee only).
func (c *Client) LinkAccount(ctx context.Context, accountNumber, username string) error {
	body := struct {
		AccountNumber string `json:"accountNumber"`
		Username      string `json:"username"`
	}{accountNumber, username}
	return c.do(ctx, http.MethodPost, "/api/accounts/link", body, &opResponse{})
}
