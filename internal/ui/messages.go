package ui

import "glint/internal/eventbus"

// eventMsg wraps a bus event for the update loop. Routing async events
// through Bubble Tea messages keeps every session mutation on the single
// update goroutine.
type eventMsg struct {
	event eventbus.DomainEvent
}
