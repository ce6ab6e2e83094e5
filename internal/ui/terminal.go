// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"io"
	"sync"
)

// TerminalIndicator is a loading indicator for the command line. Show
// prints a progress line; Hide prints a completion line if the indicator
// was visible.
type TerminalIndicator struct {
	W       io.Writer
	Message string

	mu      sync.Mutex
	visible bool
}

// NewTerminalIndicator returns an indicator writing to w.
func NewTerminalIndicator(w io.Writer) *TerminalIndicator {
	return &TerminalIndicator{W: w, Message: "Searching..."}
}

func (t *TerminalIndicator) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible {
		return
	}
	t.visible = true
	fmt.Fprintln(t.W, t.Message)
}

func (t *TerminalIndicator) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.visible {
		return
	}
	t.visible = false
	fmt.Fprintln(t.W, "Done.")
}

// Visible reports whether the indicator is showing.
func (t *TerminalIndicator) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}
