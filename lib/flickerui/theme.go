// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flickerui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the flicker viewer. The bar colors are
// pure white and black: the generator's photo sensors need full
// contrast, so they are not tinted to match the terminal theme.
type Theme struct {
	Lit        lipgloss.Color
	Unlit      lipgloss.Color
	Marker     lipgloss.Color
	NormalText lipgloss.Color
	HelpText   lipgloss.Color
	ValueText  lipgloss.Color
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	Lit:        lipgloss.Color("#ffffff"),
	Unlit:      lipgloss.Color("#000000"),
	Marker:     lipgloss.Color("#e61a1a"),
	NormalText: lipgloss.Color("252"),
	HelpText:   lipgloss.Color("241"),
	ValueText:  lipgloss.Color("214"),
}

// styles are the lipgloss styles derived from a theme for one
// renderer.
type styles struct {
	lit    lipgloss.Style
	unlit  lipgloss.Style
	marker lipgloss.Style
	text   lipgloss.Style
	help   lipgloss.Style
	value  lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer, theme Theme) styles {
	return styles{
		lit:    renderer.NewStyle().Foreground(theme.Lit).Background(theme.Lit),
		unlit:  renderer.NewStyle().Background(theme.Unlit),
		marker: renderer.NewStyle().Foreground(theme.Marker).Background(theme.Unlit),
		text:   renderer.NewStyle().Foreground(theme.NormalText),
		help:   renderer.NewStyle().Foreground(theme.HelpText),
		value:  renderer.NewStyle().Foreground(theme.ValueText).Bold(true),
	}
}
