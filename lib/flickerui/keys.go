// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flickerui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the flicker viewer. Printable
// keys not bound here go to the TAN entry field, so bindings avoid
// digits and letters.
type KeyMap struct {
	DelayUp   key.Binding // Slow down: longer delay between frames.
	DelayDown key.Binding // Speed up.
	Wider     key.Binding // Wider bars.
	Narrower  key.Binding

	Restart key.Binding // Start the code over from its first frame.
	Submit  key.Binding // Confirm the entered TAN.
	Cancel  key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	DelayUp: key.NewBinding(
		key.WithKeys("+", "up"),
		key.WithHelp("+/↑", "slower"),
	),
	DelayDown: key.NewBinding(
		key.WithKeys("-", "down"),
		key.WithHelp("-/↓", "faster"),
	),
	Wider: key.NewBinding(
		key.WithKeys("]", "right"),
		key.WithHelp("]/→", "wider"),
	),
	Narrower: key.NewBinding(
		key.WithKeys("[", "left"),
		key.WithHelp("[/←", "narrower"),
	),
	Restart: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "restart"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm TAN"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
