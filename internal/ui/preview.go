package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// previewPagerMsg contains the result of a preview pager command
type previewPagerMsg struct {
	err error
}

// pauseRenderingMsg / resumeRenderingMsg bracket an external pager taking
// over the terminal.
type pauseRenderingMsg struct{}
type resumeRenderingMsg struct{}

// PreviewOps shows the full text of a clipboard entry in the ov pager.
// The result list truncates multi-line entries to their first line, so
// this is the only way to inspect a long entry before pasting it.
type PreviewOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPreviewOps creates a new preview operations instance
func NewPreviewOps() *PreviewOps {
	return &PreviewOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PreviewOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager displays content using the ov pager
func (p *PreviewOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	// Create oviewer root from the entry text
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
