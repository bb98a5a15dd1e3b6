package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/config"
	"github.com/its-camilo/AgenticNodes/internal/logging"
	"github.com/its-camilo/AgenticNodes/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to client config YAML")
	verbose := flag.Bool("verbose", false, "enable debug logging to the log file")
	flag.Parse()

	// Positional config path wins, matching `agenticnodes-tui client.yaml`.
	path := *configPath
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cfg, err := config.NewParser().LoadFromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI; logs go to a file or nowhere.
	logger, err := logging.NewTUI(cfg.LogFile, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	model := tui.NewModel(cfg, api.NewClient(cfg.ServerURL, logger), logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
