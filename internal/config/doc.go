// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// teller client.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation. The config file lives at
// ~/.teller/config.toml; built-in defaults apply when it is absent.
package config
