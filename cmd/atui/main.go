package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ocasazza/atui/pkg/atlassian"
	"github.com/ocasazza/atui/pkg/command"
	"github.com/ocasazza/atui/pkg/config"
	"github.com/ocasazza/atui/pkg/discovery"
	"github.com/ocasazza/atui/pkg/ui"
	"github.com/ocasazza/atui/pkg/version"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dryRun := flag.Bool("dry-run", false, "Make every dispatched command a dry run")
	historyDB := flag.String("history-db", "", "SQLite file for persisted command history")
	binary := flag.String("binary", "", "Path to the actl binary (default from config)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: atui [options]")
		fmt.Println("\nA TUI for browsing Atlassian spaces and managing page labels in bulk.")
		fmt.Println("\nRequired environment: ATLASSIAN_URL, ATLASSIAN_USERNAME, ATLASSIAN_API_TOKEN")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("atui %s\n", version.Version)
		os.Exit(0)
	}

	// Configuration resolves entirely before the core starts: the UI only
	// ever sees an already-built client.
	conn, err := config.ConnectionFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	client, err := atlassian.NewClient(conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		appCfg = config.DefaultConfig()
	}
	if *binary != "" {
		appCfg.CommandBinary = *binary
	}
	if *dryRun {
		appCfg.DryRun = true
	}
	if *historyDB != "" {
		appCfg.HistoryDB = *historyDB
	}

	// Discover products and spaces. A product that fails to list stays in
	// the tree as unavailable; only a total failure aborts.
	domain, err := discovery.NewLoader(client).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering %s: %v\n", conn.BaseURL, err)
		os.Exit(1)
	}

	history := command.NewHistory()
	if appCfg.HistoryDB != "" {
		h, err := command.OpenHistory(appCfg.HistoryDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (history will not persist)\n", err)
		} else {
			history = h
		}
	}
	defer history.Close()

	executor := command.NewExecutor(appCfg.CommandBinary, history)
	m := ui.NewModel(domain, executor, history, appCfg.DryRun)

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running atui: %v\n", err)
		os.Exit(1)
	}
}

// runTUIProgram runs the Bubble Tea program with the alternate screen and
// our own signal handling, so the terminal is restored on every exit
// path including SIGINT/SIGTERM.
func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
