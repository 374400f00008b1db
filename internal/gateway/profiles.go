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

// CreateProfileRequest holds the fields for registering a new customer
// profile. Used both by customer sign-up and by employees opening
// profiles on a customer's behalf.
type CreateProfileRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}

// UpdateProfileRequest holds the fields for an employee profile edit.
// Empty fields are omitted and left unchanged server-side.
type UpdateProfileRequest struct {
	Username    string `json:"username"`
	Name        string `json:"name,omitempty"`
	Password    string `json:"password,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	CreditScore string `json:"creditScore,omitempty"`
}

// CreateProfile registers a new customer profile.
func (c *Client) CreateProfile(ctx context.Context, req CreateProfileRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profiles/create", req, &opResponse{})
}

// UpdateProfile edits an existing profile (employee only).
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profiles/update", req, &opResponse{})
}

// SearchProfile looks up a profile by username (employee only). A
// missing profile is reported as ErrNotFound.
func (c *Client) SearchProfile(ctx context.Context, username string) (*model.Profile, error) {
	var resp struct {
		Found   bool           `json:"found"`
		Profile *model.Profile `json:"profile"`
		Error   string         `json:"error"`
	}
	path := "/api/profiles/search?username=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Found || resp.Profile == nil {
		return nil, fmt.Errorf("%w: profile %s", ErrNotFound, username)
	}
	return resp.Profile, nil
}
