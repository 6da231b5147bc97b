package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"glint/internal/action"
	"glint/internal/appindex"
	"glint/internal/clipboard"
	"glint/internal/config"
	"glint/internal/domain"
	"glint/internal/eventbus"
	"glint/internal/history"
	"glint/internal/session"
	"glint/internal/ui"
)

func main() {
	// Parse command line arguments
	var startInClipboard bool
	var extraDir string
	flag.BoolVar(&startInClipboard, "clipboard", false, "Open in clipboard history mode")
	flag.StringVar(&extraDir, "apps-dir", "", "Additional directory to scan for applications")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("glint.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if extraDir != "" {
		cfg.AppDirs = append(cfg.AppDirs, extraDir)
	}

	// Assemble the core: bounded history, executor, session
	hist := history.NewStore(cfg.HistoryCapacity)
	executor := action.NewOSExecutor()
	sess := session.New(hist, executor, cfg.UnfilteredLimit)
	if startInClipboard {
		sess.SetMode(domain.ModeClipboard)
	}

	// Start the application index scan
	provider := appindex.NewProvider(bus)
	if err := provider.StartScan(ctx, cfg.AppDirs); err != nil {
		log.Printf("Initial app scan failed to start: %v", err)
	}

	// Start clipboard polling off the UI goroutine; changes reach the
	// session as messages through the event channel below.
	poller := clipboard.NewPoller(bus, time.Duration(cfg.PollIntervalMS)*time.Millisecond)
	go poller.Run(ctx, nil)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)

	// Forward events to the event channel
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventAppIndexUpdated, forwardEvent)
	bus.Subscribe(eventbus.EventClipboardChanged, forwardEvent)
	bus.Subscribe(eventbus.EventIndexScanStarted, forwardEvent)
	bus.Subscribe(eventbus.EventIndexScanCompleted, forwardEvent)

	// Create the UI model and Bubble Tea program
	uiModel := ui.NewModel(sess, bus, cfg, eventChan)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Quit the overlay when the outer context is cancelled
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	log.Printf("Starting glint overlay")
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	provider.StopScan()
}
