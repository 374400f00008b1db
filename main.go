// teller TUI - terminal client for the ledger banking service.
//
// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tellerdesk/teller-tui/internal/config"
	"github.com/tellerdesk/teller-tui/internal/gateway"
	"github.com/tellerdesk/teller-tui/internal/session"
	"github.com/tellerdesk/teller-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "version") {
		fmt.Printf("teller %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// The TUI owns the terminal, so request logging goes to a file
	// when TELLER_DEBUG is set and nowhere otherwise.
	if os.Getenv("TELLER_DEBUG") != "" {
		f, err := tea.LogToFile("teller-debug.log", "teller")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The adaptive palette keys off the detected background; the theme
	// setting pins it for terminals that misreport.
	lipgloss.SetHasDarkBackground(cfg.UI.Theme == "dark")

	client := gateway.NewClient(cfg.Server.BaseURL).
		WithTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)

	sessionPath, err := session.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store := session.NewStore(sessionPath)

	// Resume a persisted session when one is present and intact. A
	// corrupt or unrecognized record was already discarded by Load.
	resumed, ok, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading session: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		resumed = nil
	}

	app := ui.NewApp(client, store, resumed)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running teller: %v\n", err)
		os.Exit(1)
	}
	if app, ok := final.(ui.App); ok {
		if ferr := app.FatalErr(); ferr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
			os.Exit(1)
		}
	}
}
