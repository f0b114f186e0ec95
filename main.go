package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/config"
)

const debugLogFile = "folio-debug.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	program := tea.NewProgram(newStartupModel(path),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}
	if sm, ok := final.(startupModel); ok && sm.err != nil {
		return sm.err
	}
	return nil
}

// setupLogging loads .env and, when FOLIO_DEBUG is set, sends the standard
// logger to debugLogFile. The TUI owns the terminal, so logs are discarded
// otherwise. The returned file is nil when logging is off.
func setupLogging() (io.Closer, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	if os.Getenv(config.EnvDebug) == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(debugLogFile, "folio")
	if err != nil {
		return nil, err
	}
	return f, nil
}
