package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
type KeyMap struct {
	Escape key.Binding

	// Navigation mode
	Insert      key.Binding
	Left, Right key.Binding
	Up, Down    key.Binding
	Command     key.Binding

	// Insert and Command modes
	Newline   key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the vi-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Escape: key.NewBinding(key.WithKeys("esc")),

		Insert:  key.NewBinding(key.WithKeys("i")),
		Left:    key.NewBinding(key.WithKeys("h", "left")),
		Right:   key.NewBinding(key.WithKeys("l", "right")),
		Up:      key.NewBinding(key.WithKeys("k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down")),
		Command: key.NewBinding(key.WithKeys(":")),

		Newline:   key.NewBinding(key.WithKeys("enter")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	}
}
