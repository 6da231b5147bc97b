package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowInPagerRequiresProgram(t *testing.T) {
	p := NewPreviewOps()

	err := p.ShowInPager("some clipboard text")
	assert.Error(t, err)
}

func TestPreviewKeyIsBound(t *testing.T) {
	k := defaultKeyMap()

	assert.Contains(t, k.Preview.Keys(), "ctrl+f")

	found := false
	for _, row := range k.FullHelp() {
		for _, b := range row {
			for _, key := range b.Keys() {
				if key == "ctrl+f" {
					found = true
				}
			}
		}
	}
	assert.True(t, found, "preview binding missing from help")
}
