// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate holds the pure input predicates that gate every
// money-moving request. A failing predicate short-circuits orchestration
// locally; no network call is ever made for invalid input.
package validate
