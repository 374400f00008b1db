// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"

	"github.com/tellerdesk/teller-tui/internal/model"
)

// loginRequest is the body for employee and customer logins.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// atmLoginRequest is the body for ATM logins.
type atmLoginRequest struct {
	AccountNumber string `json:"accountNumber"`
	PIN           string `json:"pin"`
}

// loginResponse is the envelope all three login endpoints return.
type loginResponse struct {
	Success   bool           `json:"success"`
	SessionID string         `json:"sessionId"`
	Role      model.Role     `json:"role"`
	Profile   *model.Profile `json:"profile"`
	Account   *model.Account `json:"account"`
	Error     string         `json:"error"`
}

// session converts a successful login response into a session record.
func (r *loginResponse) session() model.Session {
	return model.Session{
		SessionID: r.SessionID,
		Role:      r.Role,
		Profile:   r.Profile,
		Account:   r.Account,
	}
}

// EmployeeLogin authenticates an employee and installs the returned
// session token on the client.
func (c *Client) EmployeeLogin(ctx context.Context, username, password string) (model.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/employee-login",
		loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return model.Session{}, err
	}

	sess := resp.session()
	c.SetToken(sess.SessionID)
	return sess, nil
}

// CustomerLogin authenticates a customer. The response carries the
// customer's profile alongside the session token.
func (c *Client) CustomerLogin(ctx context.Context, username, password string) (model.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/customer-login",
		loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return model.Session{}, err
	}

	sess := resp.session()
	c.SetToken(sess.SessionID)
	return sess, nil
}

// ATMLogin authenticates an account number and PIN pair. The response
// carries the single account the session is bound to.
func (c *Client) ATMLogin(ctx context.Context, accountNumber, pin string) (model.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/atm-login",
		atmLoginRequest{AccountNumber: accountNumber, PIN: pin}, &resp)
	if err != nil {
		return model.Session{}, err
	}

	// A terminal session is bound to one account and carries no
	// profile, whatever the server sends back.
	sess := resp.session().WithProfile(nil)
	c.SetToken(sess.SessionID)
	return sess, nil
}

// Logout invalidates the session server-side and drops the local token.
// The token is cleared even when the server call fails: a logout must
// always leave the client logged out.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.ClearToken()
	return err
}
