package appindex

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"glint/internal/domain"
	"glint/internal/eventbus"
)

// Provider scans the filesystem for installed applications and publishes
// full replacement snapshots on the event bus. Consumers treat every
// snapshot as "replace corpus, recompute".
type Provider interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// provider is the concrete implementation
type provider struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewProvider creates a provider and subscribes it to rescan requests.
func NewProvider(bus eventbus.EventBus) Provider {
	p := &provider{bus: bus}

	bus.Subscribe(eventbus.EventIndexScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.IndexScanRequestedEvent); ok {
			go p.StartScan(context.Background(), event.Roots)
		}
	})

	return p
}

// StartScan walks the given roots in the background. Each completed scan
// publishes one AppIndexUpdatedEvent carrying the whole corpus.
func (p *provider) StartScan(ctx context.Context, roots []string) error {
	p.mu.Lock()
	if p.isScanning {
		p.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	p.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	p.cancelFunc = cancel
	p.mu.Unlock()

	p.bus.Publish(eventbus.IndexScanStartedEvent{Roots: roots})

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		var apps []domain.AppCandidate
		defer func() {
			p.mu.Lock()
			p.isScanning = false
			p.cancelFunc = nil
			p.mu.Unlock()

			// Published on every exit, cancelled scans included, so the
			// UI's scanning indicator always clears and a rescan can
			// start.
			p.bus.Publish(eventbus.IndexScanCompletedEvent{AppsFound: len(apps)})
		}()

		for _, root := range roots {
			select {
			case <-scanCtx.Done():
				return
			default:
				apps = append(apps, p.scanDirectory(scanCtx, root)...)
			}
		}

		log.Printf("App index scan completed: %d applications", len(apps))
		p.bus.Publish(eventbus.AppIndexUpdatedEvent{Apps: apps})
	}()

	return nil
}

// StopScan cancels any ongoing scan and waits for it to wind down.
func (p *provider) StopScan() {
	p.mu.Lock()
	if p.cancelFunc != nil {
		p.cancelFunc()
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// scanDirectory collects application candidates under root. Linux desktop
// entries and macOS .app bundles are both recognized, so a single config
// works across platforms.
func (p *provider) scanDirectory(ctx context.Context, root string) []domain.AppCandidate {
	var apps []domain.AppCandidate
	maxDepth := 3

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // skip unreadable entries
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && strings.Count(rel, string(filepath.Separator)) >= maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() && strings.HasSuffix(d.Name(), ".app") {
			apps = append(apps, domain.AppCandidate{
				Name:    strings.TrimSuffix(d.Name(), ".app"),
				Path:    path,
				IconRef: path,
			})
			return filepath.SkipDir // don't descend into bundles
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), ".desktop") {
			if app, ok := parseDesktopEntry(path); ok {
				apps = append(apps, app)
			}
		}

		return nil
	})

	if err != nil && err != context.Canceled {
		log.Printf("Error scanning %s: %v", root, err)
	}

	return apps
}

// parseDesktopEntry reads the [Desktop Entry] section of a freedesktop
// .desktop file. Entries that are hidden, not applications, or missing a
// name or executable are skipped rather than reported as errors.
func parseDesktopEntry(path string) (domain.AppCandidate, bool) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Could not read desktop entry %s: %v", path, err)
		return domain.AppCandidate{}, false
	}
	defer f.Close()

	var name, execLine, icon string
	inEntry := false
	entryType := ""
	hidden := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			if name == "" {
				name = strings.TrimSpace(value)
			}
		case "Exec":
			execLine = strings.TrimSpace(value)
		case "Icon":
			icon = strings.TrimSpace(value)
		case "Type":
			entryType = strings.TrimSpace(value)
		case "NoDisplay", "Hidden":
			if strings.EqualFold(strings.TrimSpace(value), "true") {
				hidden = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Error parsing desktop entry %s: %v", path, err)
		return domain.AppCandidate{}, false
	}

	if hidden || (entryType != "" && entryType != "Application") {
		return domain.AppCandidate{}, false
	}
	if name == "" || stripFieldCodes(execLine) == "" {
		// Required fields missing: skip the entry.
		return domain.AppCandidate{}, false
	}

	return domain.AppCandidate{Name: name, Path: path, IconRef: icon}, true
}

// stripFieldCodes removes %f/%u style placeholders from an Exec line.
func stripFieldCodes(execLine string) string {
	fields := strings.Fields(execLine)
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "%") {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
