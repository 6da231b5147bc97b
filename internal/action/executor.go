package action

import (
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Executor performs the side effects of a committed selection. All calls
// are fire-and-forget: failures are logged, never returned.
type Executor interface {
	Launch(path string)
	Reveal(path string)
	SetClipboard(text string)
	SimulatePaste()
}

// OSExecutor shells out to the platform's openers and key-injection tool.
type OSExecutor struct{}

func NewOSExecutor() *OSExecutor {
	return &OSExecutor{}
}

// Launch starts the application at path via the platform opener.
func (e *OSExecutor) Launch(path string) {
	var cmd *exec.Cmd
	switch {
	case runtime.GOOS == "darwin":
		cmd = exec.Command("open", path)
	case strings.HasSuffix(path, ".desktop"):
		// xdg-open would open the entry in an editor; gio launches it.
		cmd = exec.Command("gio", "launch", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	e.start(cmd, "launch", path)
}

// Reveal shows the application's location in the file manager.
func (e *OSExecutor) Reveal(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	default:
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	}
	e.start(cmd, "reveal", path)
}

// SetClipboard writes text to the system clipboard.
func (e *OSExecutor) SetClipboard(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("Failed to write clipboard: %v", err)
	}
}

// SimulatePaste injects the platform paste keystroke into the frontmost
// application.
func (e *OSExecutor) SimulatePaste() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("osascript", "-e",
			`tell application "System Events" to keystroke "v" using command down`)
	default:
		cmd = exec.Command("xdotool", "key", "--clearmodifiers", "ctrl+v")
	}
	e.start(cmd, "paste keystroke", "")
}

func (e *OSExecutor) start(cmd *exec.Cmd, what, target string) {
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to %s %s: %v", what, target, err)
		return
	}
	// Reap the child without blocking the caller.
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("%s %s exited with error: %v", what, target, err)
		}
	}()
}
