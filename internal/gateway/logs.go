// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"
)

// GetLogs returns the ledger's audit log lines, newest last, exactly
// as the server renders them.
func (c *Client) GetLogs(ctx context.Context) ([]string, error) {
	var resp struct {
		Logs []string `json:"logs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/logs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}
